package repository

import (
	"encoding/json"
	"fmt"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

// DefaultClassroomKey names the single slot every backend stores the classroom array under.
const DefaultClassroomKey = "savedClassrooms"

func encodeClassrooms(classrooms []models.SavedClassroom) ([]byte, error) {
	if classrooms == nil {
		classrooms = []models.SavedClassroom{}
	}
	payload, err := json.Marshal(classrooms)
	if err != nil {
		return nil, fmt.Errorf("marshal classrooms: %w", err)
	}
	return payload, nil
}

// decodeClassrooms treats empty input as no classrooms.
func decodeClassrooms(raw []byte) ([]models.SavedClassroom, error) {
	if len(raw) == 0 {
		return []models.SavedClassroom{}, nil
	}
	var classrooms []models.SavedClassroom
	if err := json.Unmarshal(raw, &classrooms); err != nil {
		return nil, fmt.Errorf("unmarshal classrooms: %w", err)
	}
	if classrooms == nil {
		classrooms = []models.SavedClassroom{}
	}
	return classrooms, nil
}
