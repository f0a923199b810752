package entity

import "time"

type LocalEvent struct {
	Name      string    `db:"name"`
	EventDate time.Time `db:"event_date"`
}
