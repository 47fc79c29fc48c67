// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// EmailRequestedEvent is published when the auth flow wants a mail
// delivered asynchronously. It carries the fully rendered message so the
// consumer needs no access to the primary database.
type EmailRequestedEvent struct {
	EventID     string `json:"event_id"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTML        string `json:"html"`
	RequestedAt string `json:"requested_at"`
}
