package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-seating-api/internal/models"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
)

type stubSeating struct {
	result []models.Desk
	err    error
	last   SeatingRequest
	during func()
	busy   bool
}

func (s *stubSeating) Busy() bool {
	return s.busy
}

func (s *stubSeating) Generate(ctx context.Context, req SeatingRequest) ([]models.Desk, error) {
	return s.respond(req)
}

func (s *stubSeating) Modify(ctx context.Context, req SeatingRequest) ([]models.Desk, error) {
	return s.respond(req)
}

func (s *stubSeating) respond(req SeatingRequest) ([]models.Desk, error) {
	s.last = req
	if s.during != nil {
		s.during()
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	out := models.CloneDesks(req.Desks)
	for i := range out {
		out[i].Students = make([]string, out[i].SeatCount())
	}
	if len(out) > 0 && len(req.Roster) > 0 {
		out[0].Students[0] = req.Roster[0]
	}
	return out, nil
}

func TestWorkspaceAddDeskRefusesCollision(t *testing.T) {
	ws := NewWorkspaceService(&stubSeating{}, nil, WorkspaceServiceConfig{})

	first, err := ws.AddDesk("11", 0, 0)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, 4, first.Desk.Width)

	second, err := ws.AddDesk("1", 1, 1)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Len(t, ws.Desks(), 1)

	_, err = ws.AddDesk("12", 10, 10)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestWorkspaceMoveUnknownDesk(t *testing.T) {
	ws := NewWorkspaceService(&stubSeating{}, nil, WorkspaceServiceConfig{})

	_, err := ws.MoveDesk("missing", 1, 1)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.ErrorIs(t, ws.RemoveDesk("missing"), appErrors.ErrNotFound)
}

func TestWorkspaceGenerateStoresArrangementAndLayoutChangeClearsIt(t *testing.T) {
	seating := &stubSeating{}
	ws := NewWorkspaceService(seating, nil, WorkspaceServiceConfig{})
	added, err := ws.AddDesk("11", 0, 0)
	require.NoError(t, err)
	_, err = ws.SetRoster([]string{" Eva ", ""})
	require.NoError(t, err)

	result, err := ws.Generate(context.Background(), "vepředu")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, []string{"Eva", ""}, result[0].Students)
	assert.Equal(t, []string{"Eva"}, seating.last.Roster)
	assert.Equal(t, "vepředu", seating.last.Instruction)

	text, ok := ws.ArrangementText()
	require.True(t, ok)
	assert.Equal(t, "[Eva, prázdné]", text)

	change, err := ws.ToggleSeat(added.Desk.ID, 1)
	require.NoError(t, err)
	assert.True(t, change.Applied)
	_, ok = ws.Arrangement()
	assert.False(t, ok)
}

func TestWorkspaceModifyPassesCurrentArrangement(t *testing.T) {
	seating := &stubSeating{}
	ws := NewWorkspaceService(seating, nil, WorkspaceServiceConfig{})
	_, err := ws.AddDesk("11", 0, 0)
	require.NoError(t, err)
	_, err = ws.SetRoster([]string{"Eva"})
	require.NoError(t, err)
	_, err = ws.Generate(context.Background(), "")
	require.NoError(t, err)

	_, err = ws.Modify(context.Background(), "posuň Evu")
	require.NoError(t, err)
	require.Len(t, seating.last.Current, 1)
	assert.Equal(t, "Eva", seating.last.Current[0].Students[0])
}

func TestWorkspaceDiscardsResultWhenLayoutChangedDuringCall(t *testing.T) {
	seating := &stubSeating{}
	ws := NewWorkspaceService(seating, nil, WorkspaceServiceConfig{})
	_, err := ws.AddDesk("11", 0, 0)
	require.NoError(t, err)
	_, err = ws.SetRoster([]string{"Eva"})
	require.NoError(t, err)
	seating.during = func() {
		_, _ = ws.AddDesk("1", 20, 20)
	}

	_, err = ws.Generate(context.Background(), "")

	assert.ErrorIs(t, err, appErrors.ErrConflict)
	_, ok := ws.Arrangement()
	assert.False(t, ok)
}

func TestWorkspaceDiscardsResultWhenClearedDuringCall(t *testing.T) {
	seating := &stubSeating{}
	ws := NewWorkspaceService(seating, nil, WorkspaceServiceConfig{})
	_, err := ws.AddDesk("11", 0, 0)
	require.NoError(t, err)
	_, err = ws.SetRoster([]string{"Eva"})
	require.NoError(t, err)
	seating.during = ws.ClearArrangement

	_, err = ws.Generate(context.Background(), "")

	assert.ErrorIs(t, err, appErrors.ErrConflict)
	_, ok := ws.Arrangement()
	assert.False(t, ok)
}

func TestWorkspaceSeatingErrorKeepsState(t *testing.T) {
	seating := &stubSeating{err: appErrors.ErrAICommunication}
	ws := NewWorkspaceService(seating, nil, WorkspaceServiceConfig{})
	_, err := ws.AddDesk("11", 0, 0)
	require.NoError(t, err)

	_, err = ws.Generate(context.Background(), "")

	assert.ErrorIs(t, err, appErrors.ErrAICommunication)
	assert.Len(t, ws.Desks(), 1)
}

func TestWorkspaceRosterLimit(t *testing.T) {
	ws := NewWorkspaceService(&stubSeating{}, nil, WorkspaceServiceConfig{MaxRosterNames: 2})

	_, err := ws.ImportRoster("a\nb\nc")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	roster, err := ws.ImportRoster("a\r\n\r\nb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, roster)
	assert.Equal(t, []string{"a", "b"}, ws.Roster())
}

func TestWorkspaceReplaceLayoutRejectsOverlap(t *testing.T) {
	ws := NewWorkspaceService(&stubSeating{}, nil, WorkspaceServiceConfig{})

	_, err := ws.ReplaceLayout([]models.Desk{
		{ID: "a", TypeCode: "11", X: 0, Y: 0},
		{ID: "b", TypeCode: "11", X: 2, Y: 0},
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, ws.Desks())

	desks, err := ws.ReplaceLayout([]models.Desk{
		{ID: "a", TypeCode: "11", X: 0, Y: 0},
		{ID: "b", TypeCode: "11", X: 5, Y: 0},
	})
	require.NoError(t, err)
	assert.Len(t, desks, 2)
	assert.Equal(t, 4, ws.AvailableSeats())
}

func TestWorkspaceImportMatrix(t *testing.T) {
	ws := NewWorkspaceService(&stubSeating{}, nil, WorkspaceServiceConfig{})

	projection := ws.ImportMatrix("11,--,11\n1,1,1")

	assert.Equal(t, "11,--,11\n1,1,1", projection.Text)
	assert.Len(t, ws.Desks(), 5)
}

func TestWorkspaceLoadClassroom(t *testing.T) {
	ws := NewWorkspaceService(&stubSeating{}, nil, WorkspaceServiceConfig{})
	desk := models.Desk{ID: "d1", TypeCode: "11", Width: 4, Height: 2}
	seated := desk
	seated.Students = []string{"Eva", "Jan"}

	ws.LoadClassroom(models.SavedClassroom{
		Name:        "7.A",
		Layout:      []models.Desk{desk},
		Arrangement: []models.Desk{seated},
	})

	snapshot := ws.Snapshot()
	assert.Equal(t, "7.A", snapshot.Classroom)
	require.Len(t, snapshot.Arrangement, 1)
	assert.Equal(t, []string{"Eva", "Jan"}, snapshot.Arrangement[0].Students)
	assert.Empty(t, snapshot.Layout[0].Students)

	ws.LoadClassroom(models.SavedClassroom{
		Name:        "7.B",
		Layout:      []models.Desk{desk},
		Arrangement: []models.Desk{{ID: "other", TypeCode: "1"}},
	})
	_, ok := ws.Arrangement()
	assert.False(t, ok)
}

func TestWorkspaceGeneratingFollowsEngine(t *testing.T) {
	seating := &stubSeating{}
	ws := NewWorkspaceService(seating, nil, WorkspaceServiceConfig{})
	assert.False(t, ws.Generating())
	seating.busy = true
	assert.True(t, ws.Generating())
}

func TestWorkspaceLoadClassroomWithDuplicateDeskIDs(t *testing.T) {
	ws := NewWorkspaceService(&stubSeating{}, nil, WorkspaceServiceConfig{})
	left := models.Desk{ID: "x", TypeCode: "11", X: 0, Y: 0, Width: 4, Height: 2}
	right := models.Desk{ID: "x", TypeCode: "11", X: 10, Y: 0, Width: 4, Height: 2}
	seatedLeft, seatedRight := left, right
	seatedLeft.Students = []string{"A", "B"}
	seatedRight.Students = []string{"C", "D"}

	ws.LoadClassroom(models.SavedClassroom{
		Name:        "dup",
		Layout:      []models.Desk{left, right},
		Arrangement: []models.Desk{seatedLeft, seatedRight},
	})

	desks := ws.Desks()
	require.Len(t, desks, 2)
	assert.NotEqual(t, desks[0].ID, desks[1].ID)

	projection := ws.Projection()
	assert.Len(t, projection.Numbers, 2)
	assert.Equal(t, " L1, L2", projection.NumberedText)

	_, ok := ws.Arrangement()
	assert.False(t, ok, "an arrangement naming the same desk twice cannot be reattached")
}
