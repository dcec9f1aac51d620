package notify

import (
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/domain"
)

type wireField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type wireEmbed struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Color       int         `json:"color"`
	Fields      []wireField `json:"fields"`
	Timestamp   string      `json:"timestamp"`
}

type wirePayload struct {
	Content string      `json:"content"`
	Embeds  []wireEmbed `json:"embeds"`
}

func toWireEmbed(n domain.Notification) wireEmbed {
	fields := make([]wireField, 0, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, wireField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return wireEmbed{
		Title:       n.Title,
		Description: n.Description,
		Color:       n.Color,
		Fields:      fields,
		Timestamp:   n.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func toWirePayload(content string, n domain.Notification) wirePayload {
	return wirePayload{Content: content, Embeds: []wireEmbed{toWireEmbed(n)}}
}
