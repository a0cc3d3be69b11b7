package layout

import (
	"github.com/google/uuid"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

// Board is the editable desk set. Every mutation that would make two desks
// overlap, leave the grid or reference an unknown desk is refused without
// touching state; callers learn about it only through the boolean result.
type Board struct {
	desks []models.Desk
	newID func() string
}

// NewBoard builds a board from existing desks. Overlapping desks are kept as given.
func NewBoard(desks []models.Desk) *Board {
	b := &Board{newID: uuid.NewString}
	b.Replace(desks)
	return b
}

// Replace swaps the whole desk set, normalising each desk. A desk whose id is
// already taken gets a fresh one so every desk stays addressable.
func (b *Board) Replace(desks []models.Desk) {
	b.desks = make([]models.Desk, 0, len(desks))
	seen := make(map[string]struct{}, len(desks))
	for _, desk := range desks {
		desk = b.normalize(desk)
		if _, dup := seen[desk.ID]; dup {
			desk.ID = b.newID()
		}
		seen[desk.ID] = struct{}{}
		b.desks = append(b.desks, desk)
	}
}

// Desks returns a copy of the desk set.
func (b *Board) Desks() []models.Desk {
	return models.CloneDesks(b.desks)
}

// Len is the number of desks.
func (b *Board) Len() int {
	return len(b.desks)
}

// Find returns a copy of the desk with the given id.
func (b *Board) Find(id string) (models.Desk, bool) {
	if i := b.index(id); i >= 0 {
		return b.desks[i].Clone(), true
	}
	return models.Desk{}, false
}

// Add drops a palette desk with its top-left corner at (x, y).
func (b *Board) Add(typeCode string, x, y int) (models.Desk, bool) {
	tpl, _ := models.TemplateFor(typeCode)
	return b.Place(models.Desk{
		TypeCode: typeCode,
		X:        x,
		Y:        y,
		Width:    tpl.Width,
		Height:   tpl.Height,
	})
}

// Place inserts a fully described desk. A missing id is generated.
func (b *Board) Place(desk models.Desk) (models.Desk, bool) {
	desk = b.normalize(desk)
	if b.index(desk.ID) >= 0 || !b.fits(desk, "") {
		return models.Desk{}, false
	}
	b.desks = append(b.desks, desk)
	return desk.Clone(), true
}

// Move relocates a desk's top-left corner.
func (b *Board) Move(id string, x, y int) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	candidate := b.desks[i]
	candidate.X, candidate.Y = x, y
	if !b.fits(candidate, id) {
		return false
	}
	b.desks[i] = candidate
	return true
}

// Rotate swaps width and height and toggles the rotation between 0 and 90.
func (b *Board) Rotate(id string) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	candidate := b.desks[i]
	candidate.Width, candidate.Height = candidate.Height, candidate.Width
	if candidate.Rotation == models.RotationQuarter {
		candidate.Rotation = models.RotationNone
	} else {
		candidate.Rotation = models.RotationQuarter
	}
	if !b.fits(candidate, id) {
		return false
	}
	b.desks[i] = candidate
	return true
}

// ToggleSeat flips the user-blocked state of a seat.
func (b *Board) ToggleSeat(id string, seat int) bool {
	i := b.index(id)
	if i < 0 || seat < 0 || seat >= b.desks[i].SeatCount() {
		return false
	}
	desk := b.desks[i]
	blocked := make([]int, 0, len(desk.UserBlockedSeats)+1)
	found := false
	for _, idx := range desk.UserBlockedSeats {
		if idx == seat {
			found = true
			continue
		}
		blocked = append(blocked, idx)
	}
	if !found {
		blocked = append(blocked, seat)
	}
	desk.UserBlockedSeats = blocked
	desk.NormalizeBlockedSeats()
	b.desks[i] = desk
	return true
}

// Remove deletes a desk.
func (b *Board) Remove(id string) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	b.desks = append(b.desks[:i], b.desks[i+1:]...)
	return true
}

// Ordered returns desks front to back, left to right.
func (b *Board) Ordered() []models.Desk {
	return FrontToBack(b.desks)
}

// Project converts the current desk set into its matrix form.
func (b *Board) Project() Projection {
	return Project(b.desks)
}

// AvailableSeats counts seats that are neither structurally nor user blocked.
func (b *Board) AvailableSeats() int {
	return AvailableSeats(b.desks)
}

// AvailableSeats counts occupiable seats across desks.
func AvailableSeats(desks []models.Desk) int {
	total := 0
	for _, desk := range desks {
		total += len(desk.OccupiableSeats())
	}
	return total
}

func (b *Board) fits(candidate models.Desk, ignoreID string) bool {
	if candidate.X < 0 || candidate.Y < 0 {
		return false
	}
	for _, other := range b.desks {
		if other.ID == ignoreID {
			continue
		}
		if candidate.Overlaps(other) {
			return false
		}
	}
	return true
}

func (b *Board) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range b.desks {
		if b.desks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) normalize(desk models.Desk) models.Desk {
	desk = desk.Clone()
	if desk.ID == "" {
		desk.ID = b.newID()
	}
	if desk.Width <= 0 || desk.Height <= 0 {
		tpl, _ := models.TemplateFor(desk.TypeCode)
		desk.Width, desk.Height = tpl.Width, tpl.Height
		if desk.Rotation == models.RotationQuarter {
			desk.Width, desk.Height = desk.Height, desk.Width
		}
	}
	if desk.Rotation != models.RotationQuarter {
		desk.Rotation = models.RotationNone
	}
	desk.NormalizeBlockedSeats()
	desk.Students = []string{}
	return desk
}
