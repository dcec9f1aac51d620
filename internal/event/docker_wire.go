package event

import (
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/domain"
	"github.com/docker/docker/api/types/events"
)

func fromEventsMessage(msg events.Message) (domain.ContainerEvent, error) {
	id := msg.Actor.ID
	if id == "" {
		id = msg.ID // older daemons only fill the top-level id
	}
	ev := domain.ContainerEvent{
		Type:       domain.EventType(msg.Type),
		Action:     domain.Action(msg.Action),
		ID:         id,
		Name:       msg.Actor.Attributes["name"],
		Time:       eventTime(msg),
		Attributes: msg.Actor.Attributes,
	}
	if !ev.IsQualifying() {
		return domain.ContainerEvent{}, NewUnsupportedEventTypeError(string(msg.Type), string(msg.Action))
	}
	if ev.ID == "" {
		return domain.ContainerEvent{}, &MalformedEventError{Missing: "id"}
	}
	if ev.Name == "" {
		return domain.ContainerEvent{}, &MalformedEventError{ID: ev.ID, Missing: "name attribute"}
	}
	return ev, nil
}

func eventTime(msg events.Message) time.Time {
	if msg.TimeNano != 0 {
		return time.Unix(0, msg.TimeNano)
	}
	return time.Unix(msg.Time, 0)
}
