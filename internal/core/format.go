package core

import (
	"fmt"
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/domain"
)

// BuildNotification turns a container start or die event into a notification.
// It returns false for every other event.
func BuildNotification(ev domain.ContainerEvent, now time.Time) (domain.Notification, bool) {
	if !ev.IsQualifying() {
		return domain.Notification{}, false
	}

	color := domain.ColorFailure
	if ev.Action == domain.ActionStart {
		color = domain.ColorSuccess
	}
	shortID := ev.ShortID()

	return domain.Notification{
		Title:       "Container " + domain.Capitalize(ev.Action.Past()),
		Description: fmt.Sprintf("Container %s (%s) has %s.", ev.Name, shortID, ev.Action.Past()),
		Color:       color,
		Fields: []domain.Field{
			{Name: "Container Name", Value: ev.Name, Inline: true},
			{Name: "Container ID", Value: shortID, Inline: true},
			{Name: "Status", Value: ev.Action.Title(), Inline: true},
		},
		Timestamp: now.UTC(),
	}, true
}

// BuildAnnouncement returns the notification sent once when monitoring begins.
func BuildAnnouncement(now time.Time) domain.Notification {
	return domain.Notification{
		Title:       "Docker Event Monitor",
		Description: "Docker event monitor has started.",
		Color:       domain.ColorSuccess,
		Fields:      []domain.Field{},
		Timestamp:   now.UTC(),
	}
}
