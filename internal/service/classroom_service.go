package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-seating-api/internal/models"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
)

type classroomStore interface {
	Load(ctx context.Context) ([]models.SavedClassroom, error)
	Replace(ctx context.Context, classrooms []models.SavedClassroom) error
}

type storeMetrics interface {
	RecordStoreOperation(backend, op, outcome string)
}

// ClassroomServiceConfig tunes runtime behaviour.
type ClassroomServiceConfig struct {
	Backend string
}

type classroomName struct {
	Name string `validate:"required,max=100"`
}

// ClassroomService manages named saved classrooms on top of a single-key store.
// Every change reads the whole array, edits it and writes it back.
type ClassroomService struct {
	mu        sync.Mutex
	store     classroomStore
	metrics   storeMetrics
	validator *validator.Validate
	logger    *zap.Logger
	backend   string
}

// NewClassroomService constructs a ClassroomService.
func NewClassroomService(store classroomStore, metrics storeMetrics, validate *validator.Validate, logger *zap.Logger, cfg ClassroomServiceConfig) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{
		store:     store,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		backend:   cfg.Backend,
	}
}

// List returns every saved classroom.
func (s *ClassroomService) List(ctx context.Context) ([]models.SavedClassroom, error) {
	return s.load(ctx)
}

// Get returns one classroom by name.
func (s *ClassroomService) Get(ctx context.Context, name string) (*models.SavedClassroom, error) {
	classrooms, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for i := range classrooms {
		if classrooms[i].Name == name {
			return &classrooms[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
}

// Save stores the classroom, overwriting any record with the same name. The
// returned flag reports whether an existing record was replaced.
func (s *ClassroomService) Save(ctx context.Context, classroom models.SavedClassroom) (bool, error) {
	classroom.Name = strings.TrimSpace(classroom.Name)
	if err := s.validator.Struct(classroomName{Name: classroom.Name}); err != nil {
		return false, appErrors.Clone(appErrors.ErrValidation, "classroom name is required and must be at most 100 characters")
	}
	classroom.Layout = models.CloneDesks(classroom.Layout)
	if classroom.Layout == nil {
		classroom.Layout = []models.Desk{}
	}
	classroom.Arrangement = models.CloneDesks(classroom.Arrangement)

	s.mu.Lock()
	defer s.mu.Unlock()

	classrooms, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	replaced := false
	for i := range classrooms {
		if classrooms[i].Name == classroom.Name {
			classrooms[i] = classroom
			replaced = true
			break
		}
	}
	if !replaced {
		classrooms = append(classrooms, classroom)
	}
	if err := s.replace(ctx, "save", classrooms); err != nil {
		return false, err
	}
	s.logger.Info("classroom saved", zap.String("name", classroom.Name), zap.Bool("replaced", replaced))
	return replaced, nil
}

// Delete removes a classroom by name.
func (s *ClassroomService) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	classrooms, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.SavedClassroom, 0, len(classrooms))
	for _, classroom := range classrooms {
		if classroom.Name != name {
			kept = append(kept, classroom)
		}
	}
	if len(kept) == len(classrooms) {
		return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	return s.replace(ctx, "delete", kept)
}

// Export returns the stored array as an indented JSON document.
func (s *ClassroomService) Export(ctx context.Context) ([]byte, error) {
	classrooms, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(classrooms, "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode classrooms")
	}
	return payload, nil
}

// Import validates an exported document and replaces the stored array with it.
// The document must be a JSON array whose first element, if any, has name and
// layout fields.
func (s *ClassroomService) Import(ctx context.Context, data []byte) (int, error) {
	classrooms, err := ParseClassroomImport(data)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.replace(ctx, "import", classrooms); err != nil {
		return 0, err
	}
	s.logger.Info("classrooms imported", zap.Int("count", len(classrooms)))
	return len(classrooms), nil
}

// ParseClassroomImport checks the shape of an exported classroom document.
func ParseClassroomImport(data []byte) ([]models.SavedClassroom, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidImport.Code, appErrors.ErrInvalidImport.Status, "import file must contain a JSON array of classrooms")
	}
	if raw == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidImport, "import file must contain a JSON array of classrooms")
	}
	if len(raw) > 0 {
		for _, field := range []string{"name", "layout"} {
			if _, ok := raw[0][field]; !ok {
				return nil, appErrors.Clone(appErrors.ErrInvalidImport, fmt.Sprintf("import file classrooms must have a %q field", field))
			}
		}
	}
	var classrooms []models.SavedClassroom
	if err := json.Unmarshal(data, &classrooms); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidImport.Code, appErrors.ErrInvalidImport.Status, "import file has malformed classrooms")
	}
	if classrooms == nil {
		classrooms = []models.SavedClassroom{}
	}
	return classrooms, nil
}

func (s *ClassroomService) load(ctx context.Context) ([]models.SavedClassroom, error) {
	classrooms, err := s.store.Load(ctx)
	if err != nil {
		s.record("load", "error")
		s.logger.Error("failed to load classrooms", zap.String("backend", s.backend), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read saved classrooms")
	}
	s.record("load", "success")
	return classrooms, nil
}

func (s *ClassroomService) replace(ctx context.Context, op string, classrooms []models.SavedClassroom) error {
	if err := s.store.Replace(ctx, classrooms); err != nil {
		s.record(op, "error")
		s.logger.Error("failed to write classrooms", zap.String("backend", s.backend), zap.String("op", op), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to write saved classrooms")
	}
	s.record(op, "success")
	return nil
}

func (s *ClassroomService) record(op, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(s.backend, op, outcome)
	}
}
