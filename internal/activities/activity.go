// Package activities talks to the remote activities API.
//
// The API exposes a JSON object keyed by activity name plus two mutation
// endpoints (signup and unregister). This package owns the wire contract:
// DTOs, order-preserving decoding and typed API failures.
package activities

// Activity is one schedulable offering with capacity and a participant roster.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns remaining capacity. Over-admitted activities report a
// negative value.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Collection holds activities in the order the API listed them.
type Collection []Activity

// Result is the success payload of a mutation.
type Result struct {
	Message string `json:"message"`
}
