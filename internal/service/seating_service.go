package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/pkg/ai"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
)

// Seating outcomes reported to metrics.
const (
	SeatingOutcomeSuccess     = "success"
	SeatingOutcomeRejected    = "rejected"
	SeatingOutcomeBusy        = "busy"
	SeatingOutcomeDeclined    = "declined"
	SeatingOutcomeInvalid     = "invalid_response"
	SeatingOutcomeTransport   = "communication_error"
	SeatingOutcomeUnavailable = "disabled"
)

type seatingMetrics interface {
	RecordSeatingOutcome(mode, outcome string)
}

// SeatingRequest is the workspace state a seating call works on.
type SeatingRequest struct {
	Desks       []models.Desk
	Roster      []string
	Instruction string
	// Current is the applied arrangement; required for modification.
	Current []models.Desk
}

// SeatingService validates requests locally, asks the AI for a seating and
// applies it onto the desks. At most one AI call is in flight at a time.
type SeatingService struct {
	client  ai.Client
	prompts *PromptBuilder
	metrics seatingMetrics
	logger  *zap.Logger
	busy    atomic.Bool
}

// NewSeatingService constructs a SeatingService. A nil client disables AI seating.
func NewSeatingService(client ai.Client, prompts *PromptBuilder, metrics seatingMetrics, logger *zap.Logger) *SeatingService {
	if prompts == nil {
		prompts = NewPromptBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeatingService{client: client, prompts: prompts, metrics: metrics, logger: logger}
}

// Busy reports whether an AI call is outstanding.
func (s *SeatingService) Busy() bool {
	return s.busy.Load()
}

// Generate assigns the whole roster to available seats.
func (s *SeatingService) Generate(ctx context.Context, req SeatingRequest) ([]models.Desk, error) {
	return s.run(ctx, models.SeatingModeGenerate, req)
}

// Modify applies the requested change to the current arrangement.
func (s *SeatingService) Modify(ctx context.Context, req SeatingRequest) ([]models.Desk, error) {
	return s.run(ctx, models.SeatingModeModify, req)
}

func (s *SeatingService) run(ctx context.Context, mode models.SeatingMode, req SeatingRequest) ([]models.Desk, error) {
	if err := validateSeatingRequest(mode, req); err != nil {
		s.record(mode, SeatingOutcomeRejected)
		return nil, err
	}
	if s.client == nil {
		s.record(mode, SeatingOutcomeUnavailable)
		return nil, appErrors.ErrAIDisabled
	}
	if !s.busy.CompareAndSwap(false, true) {
		s.record(mode, SeatingOutcomeBusy)
		return nil, appErrors.ErrGenerationInProgress
	}
	defer s.busy.Store(false)

	projection := layout.Project(req.Desks)
	input := PromptInput{
		Projection:  projection,
		Desks:       req.Desks,
		Roster:      req.Roster,
		Instruction: req.Instruction,
		Current:     req.Current,
	}
	aiRequest := s.prompts.Generation(input)
	if mode == models.SeatingModeModify {
		aiRequest = s.prompts.Modification(input)
	}

	resp, err := s.client.Generate(ctx, aiRequest)
	if err != nil {
		return nil, s.fail(mode, err)
	}
	seating, err := ai.DecodeSeating(resp.Text, projection.Rows(), projection.Cols())
	if err != nil {
		return nil, s.fail(mode, err)
	}

	s.record(mode, SeatingOutcomeSuccess)
	s.logger.Info("seating applied",
		zap.String("mode", string(mode)),
		zap.Int("desks", len(req.Desks)),
		zap.Int("students", len(req.Roster)),
	)
	return layout.ApplySeating(req.Desks, seating, projection.Positions), nil
}

func (s *SeatingService) fail(mode models.SeatingMode, err error) error {
	var declined *ai.DeclinedError
	switch {
	case errors.As(err, &declined):
		s.record(mode, SeatingOutcomeDeclined)
		s.logger.Info("ai declined seating", zap.String("mode", string(mode)), zap.String("reason", declined.Reason))
		return appErrors.Clone(appErrors.ErrAIDeclined, declined.Reason)
	case errors.Is(err, ai.ErrInvalidResponse):
		s.record(mode, SeatingOutcomeInvalid)
		s.logger.Warn("invalid ai response", zap.String("mode", string(mode)), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrAIInvalidResponse.Code, appErrors.ErrAIInvalidResponse.Status, appErrors.ErrAIInvalidResponse.Message)
	default:
		s.record(mode, SeatingOutcomeTransport)
		s.logger.Warn("ai communication failed", zap.String("mode", string(mode)), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrAICommunication.Code, appErrors.ErrAICommunication.Status, appErrors.ErrAICommunication.Message)
	}
}

func (s *SeatingService) record(mode models.SeatingMode, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSeatingOutcome(string(mode), outcome)
	}
}

func validateSeatingRequest(mode models.SeatingMode, req SeatingRequest) error {
	if len(req.Desks) == 0 {
		return appErrors.ErrEmptyLayout
	}
	if len(req.Roster) == 0 {
		return appErrors.ErrEmptyRoster
	}
	if available := layout.AvailableSeats(req.Desks); len(req.Roster) > available {
		return appErrors.Clone(appErrors.ErrInsufficientSeats,
			fmt.Sprintf("not enough available seats: %d students, %d seats", len(req.Roster), available))
	}
	if mode == models.SeatingModeModify && len(req.Current) == 0 {
		return appErrors.ErrNoArrangement
	}
	return nil
}
