package domain

import "time"

type EventType string

const (
	EventTypeContainer EventType = "container"
)

type Action string

const (
	ActionStart Action = "start"
	ActionDie   Action = "die"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionStart, ActionDie:
		return true
	}
	return false
}

// Title returns the action with its first letter upper-cased ("start" -> "Start").
func (a Action) Title() string {
	return Capitalize(string(a))
}

// Capitalize upper-cases the first ASCII letter of s.
func Capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}

// Past returns the past-tense verb used in notification texts.
func (a Action) Past() string {
	switch a {
	case ActionStart:
		return "started"
	case ActionDie:
		return "died"
	}
	return string(a)
}

const shortIDLength = 12

// ContainerEvent is a single lifecycle event read from the runtime's event stream.
type ContainerEvent struct {
	Type       EventType
	Action     Action
	ID         string
	Name       string
	Time       time.Time
	Attributes map[string]string
}

// ShortID returns the 12 character display form of the container id.
func (e ContainerEvent) ShortID() string {
	if len(e.ID) <= shortIDLength {
		return e.ID
	}
	return e.ID[:shortIDLength]
}

// IsQualifying reports whether the event is a container start or die.
func (e ContainerEvent) IsQualifying() bool {
	return e.Type == EventTypeContainer && e.Action.IsValid()
}
