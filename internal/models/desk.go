package models

import (
	"sort"
	"strings"
)

// Rotation values a desk may take.
const (
	RotationNone    = 0
	RotationQuarter = 90
)

// Desk is a freely positioned rectangle on the classroom grid. Coordinates and
// sizes are integer grid units; larger Y is closer to the board.
type Desk struct {
	ID               string   `json:"id" yaml:"id"`
	TypeCode         string   `json:"typeCode" yaml:"typeCode"`
	X                int      `json:"x" yaml:"x"`
	Y                int      `json:"y" yaml:"y"`
	Width            int      `json:"width" yaml:"width"`
	Height           int      `json:"height" yaml:"height"`
	Rotation         int      `json:"rotation" yaml:"rotation"`
	UserBlockedSeats []int    `json:"userBlockedSeats" yaml:"userBlockedSeats"`
	Students         []string `json:"students" yaml:"students"`
}

// SeatCount is the number of seat positions encoded by the type code.
func (d Desk) SeatCount() int {
	return len(d.TypeCode)
}

// IsStructurallyBlocked reports whether the type code itself disables the seat.
func (d Desk) IsStructurallyBlocked(index int) bool {
	return IsStructurallyBlocked(d.TypeCode, index)
}

// IsUserBlocked reports whether the seat was disabled manually.
func (d Desk) IsUserBlocked(index int) bool {
	for _, blocked := range d.UserBlockedSeats {
		if blocked == index {
			return true
		}
	}
	return false
}

// IsOccupiable reports whether a student may sit at the seat.
func (d Desk) IsOccupiable(index int) bool {
	if index < 0 || index >= d.SeatCount() {
		return false
	}
	return !d.IsStructurallyBlocked(index) && !d.IsUserBlocked(index)
}

// OccupiableSeats lists the seat indices open for students.
func (d Desk) OccupiableSeats() []int {
	seats := make([]int, 0, d.SeatCount())
	for i := 0; i < d.SeatCount(); i++ {
		if d.IsOccupiable(i) {
			seats = append(seats, i)
		}
	}
	return seats
}

// CenterX returns the horizontal centre of the desk rectangle.
func (d Desk) CenterX() float64 {
	return float64(d.X) + float64(d.Width)/2
}

// CenterY returns the vertical centre of the desk rectangle.
func (d Desk) CenterY() float64 {
	return float64(d.Y) + float64(d.Height)/2
}

// Overlaps uses half-open intervals on both axes, so desks that only touch do not collide.
func (d Desk) Overlaps(other Desk) bool {
	return d.X < other.X+other.Width && other.X < d.X+d.Width &&
		d.Y < other.Y+other.Height && other.Y < d.Y+d.Height
}

// Clone returns a deep copy of the desk.
func (d Desk) Clone() Desk {
	out := d
	if d.UserBlockedSeats != nil {
		out.UserBlockedSeats = append([]int(nil), d.UserBlockedSeats...)
	}
	if d.Students != nil {
		out.Students = append([]string(nil), d.Students...)
	}
	return out
}

// NormalizeBlockedSeats drops out-of-range and duplicate indices and sorts the rest.
func (d *Desk) NormalizeBlockedSeats() {
	if len(d.UserBlockedSeats) == 0 {
		d.UserBlockedSeats = []int{}
		return
	}
	seen := make(map[int]struct{}, len(d.UserBlockedSeats))
	kept := make([]int, 0, len(d.UserBlockedSeats))
	for _, idx := range d.UserBlockedSeats {
		if idx < 0 || idx >= d.SeatCount() {
			continue
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		kept = append(kept, idx)
	}
	sort.Ints(kept)
	d.UserBlockedSeats = kept
}

// CloneDesks deep copies a desk slice; nil stays nil.
func CloneDesks(desks []Desk) []Desk {
	if desks == nil {
		return nil
	}
	out := make([]Desk, len(desks))
	for i, d := range desks {
		out[i] = d.Clone()
	}
	return out
}

// IsStructurallyBlocked applies the type code convention: when the code contains
// at least one '1', every '0' position is blocked; an all-zero code is fully open.
func IsStructurallyBlocked(typeCode string, index int) bool {
	if index < 0 || index >= len(typeCode) {
		return true
	}
	if !strings.ContainsRune(typeCode, '1') {
		return false
	}
	return typeCode[index] == '0'
}

// OccupiableSeatCount counts open seats for a type code ignoring user blocks.
func OccupiableSeatCount(typeCode string) int {
	if strings.ContainsRune(typeCode, '1') {
		return strings.Count(typeCode, "1")
	}
	return strings.Count(typeCode, "0")
}

// ValidTypeCode reports whether the code is a non-empty string over {0,1}.
func ValidTypeCode(typeCode string) bool {
	if typeCode == "" {
		return false
	}
	for _, r := range typeCode {
		if r != '0' && r != '1' {
			return false
		}
	}
	return true
}
