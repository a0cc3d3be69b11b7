package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
)

func promptDesks() []models.Desk {
	return []models.Desk{
		{ID: "back", TypeCode: "11", X: 0, Y: 0, Width: 4, Height: 2, UserBlockedSeats: []int{1}},
		{ID: "front", TypeCode: "111", X: 0, Y: 8, Width: 6, Height: 2, UserBlockedSeats: []int{2, 0}},
	}
}

func TestBlockedSeatSentencesOrderedByDeskAndSeat(t *testing.T) {
	desks := promptDesks()
	projection := layout.Project(desks)

	sentences := BlockedSeatSentences(desks, projection.Numbers)

	assert.Equal(t, []string{
		"V lavici č. 1 je místo č. 1 (zleva) blokováno a nelze jej obsadit.",
		"V lavici č. 1 je místo č. 3 (zleva) blokováno a nelze jej obsadit.",
		"V lavici č. 2 je místo č. 2 (zleva) blokováno a nelze jej obsadit.",
	}, sentences)
}

func TestPromptBuilderGeneration(t *testing.T) {
	desks := promptDesks()
	projection := layout.Project(desks)

	req := NewPromptBuilder().Generation(PromptInput{
		Projection:  projection,
		Desks:       desks,
		Roster:      []string{"Eva", "Jan"},
		Instruction: "  Eva sedí vepředu.  ",
	})

	assert.Equal(t, "generate", req.Label)
	assert.NotEmpty(t, req.SystemPrompt)
	require.NotNil(t, req.ResponseSchema)
	assert.Contains(t, req.Prompt, "11\n111")
	assert.Contains(t, req.Prompt, " L2\n L1")
	assert.Contains(t, req.Prompt, "Seznam žáků (2):\n- Eva\n- Jan")
	assert.Contains(t, req.Prompt, "Eva sedí vepředu.\nV lavici č. 1")
	assert.NotContains(t, req.Prompt, "Současný zasedací pořádek")
}

func TestPromptBuilderGenerationWithoutConstraints(t *testing.T) {
	desks := []models.Desk{{ID: "d", TypeCode: "1", Width: 2, Height: 2}}

	req := NewPromptBuilder().Generation(PromptInput{
		Projection: layout.Project(desks),
		Desks:      desks,
		Roster:     []string{"Eva"},
	})

	assert.True(t, strings.HasSuffix(req.Prompt, noInstruction))
}

func TestPromptBuilderModificationIncludesArrangement(t *testing.T) {
	desks := promptDesks()
	projection := layout.Project(desks)
	current := models.CloneDesks(desks)
	current[0].Students = []string{"Petr", ""}
	current[1].Students = []string{"", "Anna", ""}

	req := NewPromptBuilder().Modification(PromptInput{
		Projection:  projection,
		Desks:       desks,
		Roster:      []string{"Petr", "Anna"},
		Instruction: "Vyměň Petra a Annu.",
		Current:     current,
	})

	assert.Equal(t, "modify", req.Label)
	assert.Contains(t, req.Prompt, "[Petr, blokováno]\n[blokováno, Anna, blokováno]")
	assert.Contains(t, req.Prompt, "Vyměň Petra a Annu.")
}
