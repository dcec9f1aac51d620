package domain

import "time"

const (
	ColorSuccess = 65280    // 0x00FF00
	ColorFailure = 16711680 // 0xFF0000
)

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Notification is one chat embed. It is built once and never mutated.
type Notification struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	Timestamp   time.Time
}
