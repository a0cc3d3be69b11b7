package layout

import (
	"strings"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

// Placeholders used when an arrangement is rendered as text.
const (
	EmptySeatToken   = "prázdné"
	BlockedSeatToken = "blokováno"
)

// ApplySeating writes each seating cell onto the desk the position map assigns to
// it. Seat lists are fitted to the desk's seat count by position, so an empty
// slot stays where it is. Only non-empty strings count as names. Desks without a
// cell in the result end up with an empty student list. The input is not modified.
func ApplySeating(desks []models.Desk, seating models.Seating, positions PositionMap) []models.Desk {
	out := models.CloneDesks(desks)
	if out == nil {
		out = []models.Desk{}
	}
	index := make(map[string]int, len(out))
	for i := range out {
		out[i].Students = []string{}
		index[out[i].ID] = i
	}

	for r, row := range seating {
		for c, cell := range row {
			if cell == nil {
				continue
			}
			id, ok := positions.Lookup(r, c)
			if !ok {
				continue
			}
			i, ok := index[id]
			if !ok {
				continue
			}
			out[i].Students = seatNames(cell, out[i].SeatCount())
		}
	}
	return out
}

// ClearArrangement drops every student from the desks.
func ClearArrangement(desks []models.Desk) []models.Desk {
	out := models.CloneDesks(desks)
	for i := range out {
		out[i].Students = []string{}
	}
	return out
}

// ArrangementMatrix renders the current arrangement on the projection's grid as
// bracketed seat lists, e.g. "[Petr, prázdné]". Cells without a desk stay "--".
func ArrangementMatrix(p Projection, arrangement []models.Desk) string {
	byID := make(map[string]models.Desk, len(arrangement))
	for _, desk := range arrangement {
		byID[desk.ID] = desk
	}

	lines := make([]string, len(p.Matrix))
	for r, row := range p.Matrix {
		cells := make([]string, len(row))
		for c := range row {
			id, ok := p.Positions.Lookup(r, c)
			if !ok {
				cells[c] = EmptyCell
				continue
			}
			desk, ok := byID[id]
			if !ok {
				cells[c] = EmptyCell
				continue
			}
			cells[c] = "[" + strings.Join(seatTokens(desk), ", ") + "]"
		}
		lines[r] = strings.Join(cells, ", ")
	}
	return strings.Join(lines, "\n")
}

// Occupants lists every named student in the arrangement.
func Occupants(arrangement []models.Desk) []string {
	names := make([]string, 0)
	for _, desk := range arrangement {
		for _, name := range desk.Students {
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

func seatTokens(desk models.Desk) []string {
	tokens := make([]string, desk.SeatCount())
	for i := range tokens {
		switch {
		case i < len(desk.Students) && desk.Students[i] != "":
			tokens[i] = desk.Students[i]
		case desk.IsOccupiable(i):
			tokens[i] = EmptySeatToken
		default:
			tokens[i] = BlockedSeatToken
		}
	}
	return tokens
}

func seatNames(cell models.SeatingCell, seats int) []string {
	names := make([]string, seats)
	for i := 0; i < seats && i < len(cell); i++ {
		if name, ok := cell[i].(string); ok {
			names[i] = strings.TrimSpace(name)
		}
	}
	return names
}
