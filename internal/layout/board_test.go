package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

func TestBoardAddRejectsOverlap(t *testing.T) {
	board := NewBoard(nil)

	first, ok := board.Add("11", 0, 0)
	require.True(t, ok)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 4, first.Width)

	before := board.Desks()
	_, ok = board.Add("11", 0, 0)
	assert.False(t, ok)
	assert.Equal(t, before, board.Desks())

	_, ok = board.Add("1", 4, 0)
	assert.True(t, ok, "touching desks do not collide")
	assert.Equal(t, 2, board.Len())
}

func TestBoardAddRejectsNegativeCoordinates(t *testing.T) {
	board := NewBoard(nil)
	_, ok := board.Add("1", -1, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, board.Len())
}

func TestBoardMoveCollision(t *testing.T) {
	board := NewBoard(nil)
	a, _ := board.Add("11", 0, 0)
	b, _ := board.Add("11", 10, 0)

	assert.False(t, board.Move(b.ID, 0, 0))
	moved, _ := board.Find(b.ID)
	assert.Equal(t, 10, moved.X)

	assert.True(t, board.Move(b.ID, 4, 0))
	moved, _ = board.Find(b.ID)
	assert.Equal(t, 4, moved.X)

	assert.True(t, board.Move(a.ID, 0, 6))
	assert.False(t, board.Move("missing", 1, 1))
}

func TestBoardRotate(t *testing.T) {
	board := NewBoard(nil)
	d, _ := board.Add("11", 0, 0)

	require.True(t, board.Rotate(d.ID))
	rotated, _ := board.Find(d.ID)
	assert.Equal(t, 2, rotated.Width)
	assert.Equal(t, 4, rotated.Height)
	assert.Equal(t, models.RotationQuarter, rotated.Rotation)

	require.True(t, board.Rotate(d.ID))
	back, _ := board.Find(d.ID)
	assert.Equal(t, 4, back.Width)
	assert.Equal(t, models.RotationNone, back.Rotation)
}

func TestBoardRotateRefusedWhenItWouldCollide(t *testing.T) {
	board := NewBoard(nil)
	d, _ := board.Add("11", 0, 0)
	_, ok := board.Add("1", 0, 2)
	require.True(t, ok)

	assert.False(t, board.Rotate(d.ID))
	unchanged, _ := board.Find(d.ID)
	assert.Equal(t, models.RotationNone, unchanged.Rotation)
}

func TestBoardToggleSeat(t *testing.T) {
	board := NewBoard(nil)
	d, _ := board.Add("111", 0, 0)

	require.True(t, board.ToggleSeat(d.ID, 2))
	require.True(t, board.ToggleSeat(d.ID, 0))
	got, _ := board.Find(d.ID)
	assert.Equal(t, []int{0, 2}, got.UserBlockedSeats)
	assert.Equal(t, []int{1}, got.OccupiableSeats())

	require.True(t, board.ToggleSeat(d.ID, 2))
	got, _ = board.Find(d.ID)
	assert.Equal(t, []int{0}, got.UserBlockedSeats)

	assert.False(t, board.ToggleSeat(d.ID, 3))
	assert.False(t, board.ToggleSeat(d.ID, -1))
}

func TestBoardRemoveAndOrdered(t *testing.T) {
	board := NewBoard(nil)
	back, _ := board.Add("11", 0, 0)
	frontRight, _ := board.Add("1", 10, 8)
	frontLeft, _ := board.Add("1", 0, 8)

	ordered := board.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, frontLeft.ID, ordered[0].ID)
	assert.Equal(t, frontRight.ID, ordered[1].ID)
	assert.Equal(t, back.ID, ordered[2].ID)

	assert.True(t, board.Remove(frontRight.ID))
	assert.False(t, board.Remove(frontRight.ID))
	assert.Equal(t, 2, board.Len())
}

func TestNewBoardNormalizesDesks(t *testing.T) {
	board := NewBoard([]models.Desk{
		{TypeCode: "101", X: 0, Y: 0, UserBlockedSeats: []int{9, 1}, Students: []string{"x"}},
		{ID: "rot", TypeCode: "11", Rotation: models.RotationQuarter, X: 10},
	})

	desks := board.Desks()
	require.Len(t, desks, 2)
	assert.NotEmpty(t, desks[0].ID)
	assert.Equal(t, 6, desks[0].Width)
	assert.Equal(t, []int{1}, desks[0].UserBlockedSeats)
	assert.Empty(t, desks[0].Students)
	assert.Equal(t, 2, desks[1].Width)
	assert.Equal(t, 4, desks[1].Height)
	assert.Equal(t, 4, board.AvailableSeats())
}

func TestBoardReplaceRenamesDuplicateIDs(t *testing.T) {
	board := NewBoard([]models.Desk{
		{ID: "x", TypeCode: "11", X: 0, Y: 0},
		{ID: "x", TypeCode: "11", X: 10, Y: 0},
	})

	desks := board.Desks()
	require.Len(t, desks, 2)
	assert.Equal(t, "x", desks[0].ID)
	assert.NotEqual(t, "x", desks[1].ID)
	assert.NotEmpty(t, desks[1].ID)

	projection := board.Project()
	assert.Len(t, projection.Numbers, 2)
	assert.Equal(t, " L1, L2", projection.NumberedText)
}
