package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/classroom-seating-api/internal/dto"
	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/internal/service"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
	"github.com/noah-isme/classroom-seating-api/pkg/response"
)

type seatingWorkspace interface {
	Generate(ctx context.Context, instruction string) ([]models.Desk, error)
	Modify(ctx context.Context, instruction string) ([]models.Desk, error)
	Arrangement() ([]models.Desk, bool)
	ArrangementText() (string, bool)
	ClearArrangement()
	Generating() bool
	Snapshot() service.WorkspaceSnapshot
}

type chartBuilder interface {
	PDF(in service.ChartInput) ([]byte, error)
	CSV(in service.ChartInput) ([]byte, error)
}

// SeatingHandler exposes AI seating and the printable chart.
type SeatingHandler struct {
	workspace seatingWorkspace
	charts    chartBuilder
	validate  *validator.Validate
}

// NewSeatingHandler constructs the handler.
func NewSeatingHandler(workspace *service.WorkspaceService, charts *service.ChartService, validate *validator.Validate) *SeatingHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &SeatingHandler{workspace: workspace, charts: charts, validate: validate}
}

// Generate godoc
// @Summary Generate a seating arrangement for the whole roster
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.SeatingRequest true "Free-text constraints"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /seating/generate [post]
func (h *SeatingHandler) Generate(c *gin.Context) {
	h.arrange(c, h.workspace.Generate)
}

// Modify godoc
// @Summary Apply a targeted change to the current arrangement
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.SeatingRequest true "Requested change"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /seating/modify [post]
func (h *SeatingHandler) Modify(c *gin.Context) {
	h.arrange(c, h.workspace.Modify)
}

func (h *SeatingHandler) arrange(c *gin.Context, run func(context.Context, string) ([]models.Desk, error)) {
	var req dto.SeatingRequest
	if !bindJSON(c, h.validate, &req, "invalid seating payload") {
		return
	}
	if _, err := run(c.Request.Context(), req.Instruction); err != nil {
		response.Error(c, err)
		return
	}
	h.Get(c)
}

// Get godoc
// @Summary Get the current arrangement
// @Tags Seating
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /seating [get]
func (h *SeatingHandler) Get(c *gin.Context) {
	desks, ok := h.workspace.Arrangement()
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "there is no seating arrangement"))
		return
	}
	text, _ := h.workspace.ArrangementText()
	response.OK(c, dto.SeatingResponse{Desks: desks, Text: text})
}

// Status godoc
// @Summary Report whether an AI call is running
// @Tags Seating
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /seating/status [get]
func (h *SeatingHandler) Status(c *gin.Context) {
	_, has := h.workspace.Arrangement()
	response.OK(c, dto.SeatingStatusResponse{Generating: h.workspace.Generating(), HasArrangement: has})
}

// Clear godoc
// @Summary Discard the current arrangement
// @Tags Seating
// @Success 204
// @Router /seating [delete]
func (h *SeatingHandler) Clear(c *gin.Context) {
	h.workspace.ClearArrangement()
	response.NoContent(c)
}

// ChartPDF godoc
// @Summary Download the seating chart as PDF
// @Tags Seating
// @Produce application/pdf
// @Success 200 {file} file
// @Router /seating/chart.pdf [get]
func (h *SeatingHandler) ChartPDF(c *gin.Context) {
	payload, err := h.charts.PDF(h.chartInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "zasedaci-poradek.pdf", "application/pdf", payload)
}

// ChartCSV godoc
// @Summary Download the seat list as CSV
// @Tags Seating
// @Produce text/csv
// @Success 200 {file} file
// @Router /seating/chart.csv [get]
func (h *SeatingHandler) ChartCSV(c *gin.Context) {
	payload, err := h.charts.CSV(h.chartInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "zasedaci-poradek.csv", "text/csv; charset=utf-8", payload)
}

func (h *SeatingHandler) chartInput() service.ChartInput {
	snapshot := h.workspace.Snapshot()
	return service.ChartInput{Classroom: snapshot.Classroom, Arrangement: snapshot.Arrangement}
}
