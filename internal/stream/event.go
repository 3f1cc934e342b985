package stream

import (
	"github.com/rs/zerolog"
)

type EventType string

const (
	OutputEvent  EventType = "output"
	CommandEvent EventType = "command"
	EditEvent    EventType = "edit"
)

const (
	CommandStart = "start"
	CommandEnd   = "end"
)

// Event is pushed to every client in the room named by its session id.
type Event struct {
	SessionID string    `json:"session_id"`
	Type      EventType `json:"type"`

	Output  string `json:"output,omitempty"`
	Command string `json:"command,omitempty"`

	// Set on edits broadcast between the clients of a session.
	Language string `json:"language,omitempty"`
	Code     string `json:"code,omitempty"`
	SenderID string `json:"sender_id,omitempty"`
}

func (e Event) MarshalZerologObject(z *zerolog.Event) {
	z.Str("session", e.SessionID).
		Str("type", string(e.Type)).
		Str("command", e.Command)
}

func Output(sessionID, output string) Event {
	return Event{SessionID: sessionID, Type: OutputEvent, Output: output}
}

func Command(sessionID, command string) Event {
	return Event{SessionID: sessionID, Type: CommandEvent, Command: command}
}

type Publisher interface {
	Publish(event Event) error
}

// Discard drops every event, used when nobody is listening.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) error { return nil }
