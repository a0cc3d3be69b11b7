package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
)

const defaultMaxRosterNames = 200

type seatingEngine interface {
	Generate(ctx context.Context, req SeatingRequest) ([]models.Desk, error)
	Modify(ctx context.Context, req SeatingRequest) ([]models.Desk, error)
	Busy() bool
}

// WorkspaceServiceConfig tunes runtime behaviour.
type WorkspaceServiceConfig struct {
	MaxRosterNames int
}

// DeskChange reports the outcome of an editor operation. A refused placement
// leaves the layout untouched and is not an error.
type DeskChange struct {
	Desk    models.Desk
	Applied bool
}

// WorkspaceSnapshot is a copy of the whole editable state.
type WorkspaceSnapshot struct {
	Layout      []models.Desk
	Arrangement []models.Desk
	Roster      []string
	Classroom   string
}

// WorkspaceService owns the desk layout, the roster and the applied
// arrangement. Any applied layout change discards the arrangement.
type WorkspaceService struct {
	mu          sync.Mutex
	board       *layout.Board
	roster      []string
	arrangement []models.Desk
	classroom   string
	revision    uint64

	seating  seatingEngine
	logger   *zap.Logger
	maxNames int
}

// NewWorkspaceService constructs an empty workspace.
func NewWorkspaceService(seating seatingEngine, logger *zap.Logger, cfg WorkspaceServiceConfig) *WorkspaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRosterNames <= 0 {
		cfg.MaxRosterNames = defaultMaxRosterNames
	}
	return &WorkspaceService{
		board:    layout.NewBoard(nil),
		roster:   []string{},
		seating:  seating,
		logger:   logger,
		maxNames: cfg.MaxRosterNames,
	}
}

// Desks returns the layout in front-to-back, left-to-right order.
func (s *WorkspaceService) Desks() []models.Desk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Ordered()
}

// Projection returns the matrix view of the current layout.
func (s *WorkspaceService) Projection() layout.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Project()
}

// AvailableSeats counts occupiable seats in the layout.
func (s *WorkspaceService) AvailableSeats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.AvailableSeats()
}

// ReplaceLayout swaps in a whole new desk set. Overlapping input is rejected.
func (s *WorkspaceService) ReplaceLayout(desks []models.Desk) ([]models.Desk, error) {
	candidate := layout.NewBoard(nil)
	for _, desk := range desks {
		if _, ok := candidate.Place(desk); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("desk %q overlaps another desk, leaves the grid or repeats an id", desk.ID))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = candidate
	s.layoutChanged()
	return s.board.Ordered(), nil
}

// ImportMatrix replaces the layout with desks parsed from matrix text.
func (s *WorkspaceService) ImportMatrix(text string) layout.Projection {
	desks := layout.Parse(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.Replace(desks)
	s.layoutChanged()
	return s.board.Project()
}

// AddDesk drops a palette desk at (x, y).
func (s *WorkspaceService) AddDesk(typeCode string, x, y int) (DeskChange, error) {
	if !models.ValidTypeCode(typeCode) {
		return DeskChange{}, appErrors.Clone(appErrors.ErrValidation, "typeCode must consist of 0 and 1 characters")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	desk, ok := s.board.Add(typeCode, x, y)
	if ok {
		s.layoutChanged()
	}
	return DeskChange{Desk: desk, Applied: ok}, nil
}

// MoveDesk relocates a desk's top-left corner.
func (s *WorkspaceService) MoveDesk(id string, x, y int) (DeskChange, error) {
	return s.mutate(id, func(b *layout.Board) bool { return b.Move(id, x, y) })
}

// RotateDesk turns a desk by a quarter.
func (s *WorkspaceService) RotateDesk(id string) (DeskChange, error) {
	return s.mutate(id, func(b *layout.Board) bool { return b.Rotate(id) })
}

// ToggleSeat flips the user-blocked state of a seat.
func (s *WorkspaceService) ToggleSeat(id string, seat int) (DeskChange, error) {
	return s.mutate(id, func(b *layout.Board) bool { return b.ToggleSeat(id, seat) })
}

// RemoveDesk deletes a desk.
func (s *WorkspaceService) RemoveDesk(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.board.Remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "desk not found")
	}
	s.layoutChanged()
	return nil
}

func (s *WorkspaceService) mutate(id string, apply func(*layout.Board) bool) (DeskChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.board.Find(id); !ok {
		return DeskChange{}, appErrors.Clone(appErrors.ErrNotFound, "desk not found")
	}
	applied := apply(s.board)
	if applied {
		s.layoutChanged()
	}
	desk, _ := s.board.Find(id)
	return DeskChange{Desk: desk, Applied: applied}, nil
}

// layoutChanged must be called with mu held.
func (s *WorkspaceService) layoutChanged() {
	s.arrangement = nil
	s.revision++
}

// SetRoster replaces the roster with trimmed, non-blank names.
func (s *WorkspaceService) SetRoster(names []string) ([]string, error) {
	roster := cleanRoster(names)
	if len(roster) > s.maxNames {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("roster exceeds %d names", s.maxNames))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = roster
	return append([]string(nil), roster...), nil
}

// ImportRoster replaces the roster from plain text, one name per line.
func (s *WorkspaceService) ImportRoster(text string) ([]string, error) {
	return s.SetRoster(ParseRoster(text))
}

// Roster returns a copy of the roster.
func (s *WorkspaceService) Roster() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.roster...)
}

// Arrangement returns the applied arrangement, if any.
func (s *WorkspaceService) Arrangement() ([]models.Desk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.arrangement == nil {
		return nil, false
	}
	return layout.FrontToBack(s.arrangement), true
}

// ArrangementText renders the applied arrangement as bracketed seat lists.
func (s *WorkspaceService) ArrangementText() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.arrangement == nil {
		return "", false
	}
	return layout.ArrangementMatrix(s.board.Project(), s.arrangement), true
}

// ClearArrangement drops the applied arrangement.
// A request still in flight is discarded when it returns.
func (s *WorkspaceService) ClearArrangement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrangement = nil
	s.revision++
}

// Generate asks for a fresh arrangement of the whole roster.
func (s *WorkspaceService) Generate(ctx context.Context, instruction string) ([]models.Desk, error) {
	return s.arrange(ctx, models.SeatingModeGenerate, instruction)
}

// Modify asks for a targeted change to the applied arrangement.
func (s *WorkspaceService) Modify(ctx context.Context, instruction string) ([]models.Desk, error) {
	return s.arrange(ctx, models.SeatingModeModify, instruction)
}

// arrange releases the lock during the AI call. The result is discarded when
// the layout changed in the meantime.
func (s *WorkspaceService) arrange(ctx context.Context, mode models.SeatingMode, instruction string) ([]models.Desk, error) {
	s.mu.Lock()
	req := SeatingRequest{
		Desks:       s.board.Desks(),
		Roster:      append([]string(nil), s.roster...),
		Instruction: instruction,
		Current:     models.CloneDesks(s.arrangement),
	}
	revision := s.revision
	s.mu.Unlock()

	var (
		result []models.Desk
		err    error
	)
	if mode == models.SeatingModeModify {
		result, err = s.seating.Modify(ctx, req)
	} else {
		result, err = s.seating.Generate(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision != revision {
		s.logger.Warn("workspace changed during seating request, result discarded", zap.String("mode", string(mode)))
		return nil, appErrors.Clone(appErrors.ErrConflict, "layout or arrangement changed while the seating was being generated")
	}
	s.arrangement = result
	return layout.FrontToBack(result), nil
}

// Generating reports whether an AI call is outstanding.
func (s *WorkspaceService) Generating() bool {
	if s.seating == nil {
		return false
	}
	return s.seating.Busy()
}

// Snapshot copies the workspace state.
func (s *WorkspaceService) Snapshot() WorkspaceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WorkspaceSnapshot{
		Layout:      s.board.Desks(),
		Arrangement: models.CloneDesks(s.arrangement),
		Roster:      append([]string{}, s.roster...),
		Classroom:   s.classroom,
	}
}

// LoadClassroom replaces layout and arrangement with a saved classroom. The
// arrangement is kept only when it describes the same desks as the layout.
func (s *WorkspaceService) LoadClassroom(saved models.SavedClassroom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.Replace(saved.Layout)
	s.layoutChanged()
	s.classroom = saved.Name
	if matchesLayout(s.board.Desks(), saved.Arrangement) {
		s.arrangement = models.CloneDesks(saved.Arrangement)
	}
}

// MarkSaved records the name the workspace was saved under.
func (s *WorkspaceService) MarkSaved(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classroom = name
}

func matchesLayout(desks, arrangement []models.Desk) bool {
	if len(arrangement) == 0 || len(arrangement) != len(desks) {
		return false
	}
	ids := make(map[string]struct{}, len(desks))
	for _, desk := range desks {
		ids[desk.ID] = struct{}{}
	}
	for _, desk := range arrangement {
		if _, ok := ids[desk.ID]; !ok {
			return false
		}
		delete(ids, desk.ID)
	}
	return true
}
