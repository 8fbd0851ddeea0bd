package entity

import "time"

// Event describes one command that updated the response.
type Event struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Response  string    `json:"response"`
	Outcome   Outcome   `json:"outcome"`
	TurnCount int       `json:"turn_count"`
	CreatedAt time.Time `json:"created_at"`
}
