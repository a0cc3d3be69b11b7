package dto

import "github.com/noah-isme/classroom-seating-api/internal/models"

// SeatingRequest carries the teacher's free-text instruction.
type SeatingRequest struct {
	Instruction string `json:"instruction" validate:"max=4000"`
}

// SeatingResponse returns the applied arrangement.
type SeatingResponse struct {
	Desks []models.Desk `json:"desks"`
	// Text renders each desk as bracketed seat lists on the layout grid.
	Text string `json:"text"`
}

// SeatingStatusResponse tells clients whether a new request would be accepted.
type SeatingStatusResponse struct {
	Generating     bool `json:"generating"`
	HasArrangement bool `json:"hasArrangement"`
}

// RosterRequest replaces the roster.
type RosterRequest struct {
	Names []string `json:"names" validate:"dive,max=200"`
}

// RosterImportRequest carries plain text, one name per line.
type RosterImportRequest struct {
	Text string `json:"text" validate:"required"`
}

// RosterResponse describes the roster against the current layout.
type RosterResponse struct {
	Names          []string `json:"names"`
	Count          int      `json:"count"`
	AvailableSeats int      `json:"availableSeats"`
}
