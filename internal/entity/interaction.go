package entity

import "time"

type Interaction struct {
	ID               string    `db:"id"`
	SessionID        string    `db:"session_id"`
	CustomerID       string    `db:"customer_id"`
	Query            string    `db:"query"`
	Intent           string    `db:"intent"`
	ResponseType     string    `db:"response_type"`
	Confidence       float64   `db:"confidence"`
	ProcessingTimeMs int64     `db:"processing_time_ms"`
	CreatedAt        time.Time `db:"created_at"`
}

type Feedback struct {
	ID            string    `db:"id"`
	InteractionID string    `db:"interaction_id"`
	Rating        int       `db:"rating"`
	Comments      string    `db:"comments"`
	CreatedAt     time.Time `db:"created_at"`
}
