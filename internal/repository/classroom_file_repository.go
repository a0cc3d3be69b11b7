package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/pkg/storage"
)

// FileClassroomRepository keeps the classroom array in one JSON file.
type FileClassroomRepository struct {
	storage  *storage.LocalStorage
	filename string
}

// NewFileClassroomRepository constructs the repository; key becomes "<key>.json".
func NewFileClassroomRepository(store *storage.LocalStorage, key string) *FileClassroomRepository {
	if key == "" {
		key = DefaultClassroomKey
	}
	return &FileClassroomRepository{storage: store, filename: key + ".json"}
}

// Load returns every saved classroom. A missing file means none.
func (r *FileClassroomRepository) Load(ctx context.Context) ([]models.SavedClassroom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := r.storage.Read(r.filename)
	if errors.Is(err, storage.ErrNotExist) {
		return []models.SavedClassroom{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load classrooms: %w", err)
	}
	return decodeClassrooms(raw)
}

// Replace overwrites the whole array.
func (r *FileClassroomRepository) Replace(ctx context.Context, classrooms []models.SavedClassroom) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := encodeClassrooms(classrooms)
	if err != nil {
		return err
	}
	if err := r.storage.Save(r.filename, payload); err != nil {
		return fmt.Errorf("replace classrooms: %w", err)
	}
	return nil
}
