package models

import "time"

// SavedClassroom is a named layout, optionally with the arrangement applied to it.
// Name is the unique key; saving under an existing name overwrites the record.
type SavedClassroom struct {
	Name        string `json:"name" yaml:"name"`
	Layout      []Desk `json:"layout" yaml:"layout"`
	Arrangement []Desk `json:"arrangement" yaml:"arrangement"`
}

// AppState is the single key/value row backing the postgres classroom store.
type AppState struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
