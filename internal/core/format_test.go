package core

import (
	"testing"
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

func TestBuildNotification_Start(t *testing.T) {
	ev := domain.ContainerEvent{Type: "container", Action: "start", ID: "abcdef0123456789", Name: "web1"}

	n, ok := BuildNotification(ev, fixedNow)
	require.True(t, ok)

	assert.Equal(t, "Container Started", n.Title)
	assert.Equal(t, "Container web1 (abcdef012345) has started.", n.Description)
	assert.Equal(t, domain.ColorSuccess, n.Color)
	assert.Equal(t, []domain.Field{
		{Name: "Container Name", Value: "web1", Inline: true},
		{Name: "Container ID", Value: "abcdef012345", Inline: true},
		{Name: "Status", Value: "Start", Inline: true},
	}, n.Fields)
	assert.Equal(t, time.UTC, n.Timestamp.Location())
	assert.True(t, fixedNow.Equal(n.Timestamp))
}

func TestBuildNotification_Die(t *testing.T) {
	ev := domain.ContainerEvent{Type: "container", Action: "die", ID: "112233445566", Name: "db1"}

	n, ok := BuildNotification(ev, fixedNow)
	require.True(t, ok)

	assert.Equal(t, "Container Died", n.Title)
	assert.Equal(t, "Container db1 (112233445566) has died.", n.Description)
	assert.Equal(t, domain.ColorFailure, n.Color)
	require.Len(t, n.Fields, 3)
	assert.Equal(t, "Die", n.Fields[2].Value)
}

func TestBuildNotification_IgnoresOtherEvents(t *testing.T) {
	for _, ev := range []domain.ContainerEvent{
		{Type: "network", Action: "connect", ID: "n1", Name: "bridge"},
		{Type: "container", Action: "stop", ID: "abc", Name: "web1"},
		{Type: "container", Action: "create", ID: "abc", Name: "web1"},
		{Type: "image", Action: "start", ID: "abc", Name: "web1"},
	} {
		_, ok := BuildNotification(ev, fixedNow)
		assert.False(t, ok, "%s/%s", ev.Type, ev.Action)
	}
}

func TestBuildNotification_SameEventSameRecord(t *testing.T) {
	ev := domain.ContainerEvent{Type: "container", Action: "start", ID: "abcdef012345", Name: "web1"}

	a, _ := BuildNotification(ev, fixedNow)
	b, _ := BuildNotification(ev, fixedNow.Add(time.Minute))

	b.Timestamp = a.Timestamp
	assert.Equal(t, a, b)
}

func TestBuildAnnouncement(t *testing.T) {
	n := BuildAnnouncement(fixedNow)

	assert.Equal(t, "Docker Event Monitor", n.Title)
	assert.Equal(t, "Docker event monitor has started.", n.Description)
	assert.Equal(t, domain.ColorSuccess, n.Color)
	assert.NotNil(t, n.Fields)
	assert.Empty(t, n.Fields)
}
