package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

// PostgresClassroomRepository keeps the classroom array in one app_state row.
type PostgresClassroomRepository struct {
	db  *sqlx.DB
	key string
}

// NewPostgresClassroomRepository constructs the repository.
func NewPostgresClassroomRepository(db *sqlx.DB, key string) *PostgresClassroomRepository {
	if key == "" {
		key = DefaultClassroomKey
	}
	return &PostgresClassroomRepository{db: db, key: key}
}

// EnsureSchema creates the app_state table when it does not exist yet.
func (r *PostgresClassroomRepository) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS app_state (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure app_state table: %w", err)
	}
	return nil
}

// Load returns every saved classroom. A missing row means none.
func (r *PostgresClassroomRepository) Load(ctx context.Context) ([]models.SavedClassroom, error) {
	const query = `SELECT key, value, updated_at FROM app_state WHERE key = $1`
	var state models.AppState
	if err := r.db.GetContext(ctx, &state, query, r.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.SavedClassroom{}, nil
		}
		return nil, fmt.Errorf("load classrooms: %w", err)
	}
	return decodeClassrooms([]byte(state.Value))
}

// Replace upserts the whole array.
func (r *PostgresClassroomRepository) Replace(ctx context.Context, classrooms []models.SavedClassroom) error {
	payload, err := encodeClassrooms(classrooms)
	if err != nil {
		return err
	}
	const query = `INSERT INTO app_state (key, value, updated_at)
VALUES (:key, :value, :updated_at)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	state := models.AppState{Key: r.key, Value: string(payload), UpdatedAt: time.Now().UTC()}
	if _, err := r.db.NamedExecContext(ctx, query, state); err != nil {
		return fmt.Errorf("replace classrooms: %w", err)
	}
	return nil
}
