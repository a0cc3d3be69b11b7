package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

// SeatingEnvelope is the object the model is asked to return.
type SeatingEnvelope struct {
	Seating json.RawMessage `json:"seating"`
	Error   *string         `json:"error"`
}

// SeatingSchema is the response schema sent with seating requests: a rows ×
// columns matrix whose cells are seat lists or null, plus an optional error.
func SeatingSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"seating": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "ARRAY",
					"items": map[string]any{
						"type":     "ARRAY",
						"nullable": true,
						"items": map[string]any{
							"type":     "STRING",
							"nullable": true,
						},
					},
				},
			},
			"error": map[string]any{
				"type":     "STRING",
				"nullable": true,
			},
		},
	}
}

// DecodeSeating parses a model reply into a seating matrix of the given shape.
// A non-empty error field becomes a *DeclinedError carrying the text verbatim.
func DecodeSeating(text string, rows, cols int) (models.Seating, error) {
	envelope, err := ExtractJSON[SeatingEnvelope](text, nil)
	if err != nil {
		return nil, err
	}

	if envelope.Error != nil && strings.TrimSpace(*envelope.Error) != "" {
		return nil, &DeclinedError{Reason: *envelope.Error}
	}

	raw := strings.TrimSpace(string(envelope.Seating))
	if raw == "" || raw == "null" {
		return nil, fmt.Errorf("%w: seating field missing", ErrInvalidResponse)
	}

	var seating models.Seating
	if err := json.Unmarshal(envelope.Seating, &seating); err != nil {
		return nil, fmt.Errorf("%w: seating is not a matrix of seat lists: %v", ErrInvalidResponse, err)
	}
	if err := checkShape(seating, rows, cols); err != nil {
		return nil, err
	}
	return seating, nil
}

func checkShape(seating models.Seating, rows, cols int) error {
	if len(seating) != rows {
		return fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidResponse, rows, len(seating))
	}
	for r, row := range seating {
		if row == nil {
			return fmt.Errorf("%w: row %d is null", ErrInvalidResponse, r)
		}
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidResponse, r, len(row), cols)
		}
	}
	return nil
}
