package models

// Seating mirrors the layout matrix: rows × columns × seats. A nil cell means no
// desk at that grid position; seat values are names or nil for an empty seat.
type Seating [][]SeatingCell

// SeatingCell is the seat list for one grid position.
type SeatingCell []SeatValue

// SeatValue holds whatever the AI placed at a seat. Only non-empty strings are
// treated as names.
type SeatValue = any

// SeatingMode distinguishes a fresh arrangement from a targeted change.
type SeatingMode string

const (
	SeatingModeGenerate SeatingMode = "generate"
	SeatingModeModify   SeatingMode = "modify"
)
