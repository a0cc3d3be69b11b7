package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/classroom-seating-api/internal/dto"
	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/internal/service"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
	"github.com/noah-isme/classroom-seating-api/pkg/response"
)

type layoutWorkspace interface {
	Desks() []models.Desk
	Projection() layout.Projection
	AvailableSeats() int
	ReplaceLayout(desks []models.Desk) ([]models.Desk, error)
	ImportMatrix(text string) layout.Projection
	AddDesk(typeCode string, x, y int) (service.DeskChange, error)
	MoveDesk(id string, x, y int) (service.DeskChange, error)
	RotateDesk(id string) (service.DeskChange, error)
	ToggleSeat(id string, seat int) (service.DeskChange, error)
	RemoveDesk(id string) error
}

// LayoutHandler exposes the desk editor and the matrix converter.
type LayoutHandler struct {
	workspace layoutWorkspace
	validate  *validator.Validate
}

// NewLayoutHandler constructs the handler.
func NewLayoutHandler(workspace *service.WorkspaceService, validate *validator.Validate) *LayoutHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &LayoutHandler{workspace: workspace, validate: validate}
}

// Palette godoc
// @Summary List desk kinds offered by the editor
// @Tags Layout
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /palette [get]
func (h *LayoutHandler) Palette(c *gin.Context) {
	response.OK(c, models.Palette)
}

// Get godoc
// @Summary Get the current layout with its matrix view
// @Tags Layout
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /layout [get]
func (h *LayoutHandler) Get(c *gin.Context) {
	response.OK(c, h.layoutResponse())
}

// Replace godoc
// @Summary Replace the whole desk layout
// @Tags Layout
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceLayoutRequest true "Desks"
// @Success 200 {object} response.Envelope
// @Router /layout [put]
func (h *LayoutHandler) Replace(c *gin.Context) {
	var req dto.ReplaceLayoutRequest
	if !bindJSON(c, h.validate, &req, "invalid layout payload") {
		return
	}
	desks := make([]models.Desk, len(req.Desks))
	for i, payload := range req.Desks {
		desks[i] = payload.Model()
	}
	if _, err := h.workspace.ReplaceLayout(desks); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.layoutResponse())
}

// AddDesk godoc
// @Summary Add a palette desk
// @Tags Layout
// @Accept json
// @Produce json
// @Param payload body dto.AddDeskRequest true "Desk kind and position"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope "placement refused, applied=false"
// @Router /layout/desks [post]
func (h *LayoutHandler) AddDesk(c *gin.Context) {
	var req dto.AddDeskRequest
	if !bindJSON(c, h.validate, &req, "invalid desk payload") {
		return
	}
	change, err := h.workspace.AddDesk(req.TypeCode, req.X, req.Y)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if change.Applied {
		status = http.StatusCreated
	}
	response.JSON(c, status, dto.DeskChangeResponse{Desk: change.Desk, Applied: change.Applied})
}

// MoveDesk godoc
// @Summary Move a desk
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Desk ID"
// @Param payload body dto.MoveDeskRequest true "New top-left corner"
// @Success 200 {object} response.Envelope
// @Router /layout/desks/{id}/position [patch]
func (h *LayoutHandler) MoveDesk(c *gin.Context) {
	var req dto.MoveDeskRequest
	if !bindJSON(c, h.validate, &req, "invalid position payload") {
		return
	}
	h.writeChange(c)(h.workspace.MoveDesk(c.Param("id"), *req.X, *req.Y))
}

// RotateDesk godoc
// @Summary Rotate a desk by a quarter turn
// @Tags Layout
// @Produce json
// @Param id path string true "Desk ID"
// @Success 200 {object} response.Envelope
// @Router /layout/desks/{id}/rotate [post]
func (h *LayoutHandler) RotateDesk(c *gin.Context) {
	h.writeChange(c)(h.workspace.RotateDesk(c.Param("id")))
}

// ToggleSeat godoc
// @Summary Toggle whether a seat is blocked
// @Tags Layout
// @Produce json
// @Param id path string true "Desk ID"
// @Param index path int true "Seat index from the left, starting at 0"
// @Success 200 {object} response.Envelope
// @Router /layout/desks/{id}/seats/{index}/toggle [post]
func (h *LayoutHandler) ToggleSeat(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "seat index must be a non-negative integer"))
		return
	}
	h.writeChange(c)(h.workspace.ToggleSeat(c.Param("id"), index))
}

// RemoveDesk godoc
// @Summary Remove a desk
// @Tags Layout
// @Param id path string true "Desk ID"
// @Success 204
// @Router /layout/desks/{id} [delete]
func (h *LayoutHandler) RemoveDesk(c *gin.Context) {
	if err := h.workspace.RemoveDesk(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Matrix godoc
// @Summary Get the matrix view of the layout
// @Tags Layout
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /layout/matrix [get]
func (h *LayoutHandler) Matrix(c *gin.Context) {
	response.OK(c, matrixResponse(h.workspace.Projection()))
}

// ImportMatrix godoc
// @Summary Replace the layout with desks parsed from matrix text
// @Tags Layout
// @Accept json
// @Produce json
// @Param payload body dto.ImportMatrixRequest true "Matrix text"
// @Success 200 {object} response.Envelope
// @Router /layout/matrix [post]
func (h *LayoutHandler) ImportMatrix(c *gin.Context) {
	var req dto.ImportMatrixRequest
	if !bindJSON(c, h.validate, &req, "invalid matrix payload") {
		return
	}
	h.workspace.ImportMatrix(req.Text)
	response.OK(c, h.layoutResponse())
}

func (h *LayoutHandler) writeChange(c *gin.Context) func(service.DeskChange, error) {
	return func(change service.DeskChange, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, dto.DeskChangeResponse{Desk: change.Desk, Applied: change.Applied})
	}
}

func (h *LayoutHandler) layoutResponse() dto.LayoutResponse {
	return dto.LayoutResponse{
		Desks:          h.workspace.Desks(),
		AvailableSeats: h.workspace.AvailableSeats(),
		Matrix:         matrixResponse(h.workspace.Projection()),
	}
}

func matrixResponse(p layout.Projection) dto.MatrixResponse {
	return dto.MatrixResponse{
		Rows:         p.Rows(),
		Cols:         p.Cols(),
		Matrix:       p.Matrix,
		Text:         p.Text,
		Numbered:     p.Numbered,
		NumberedText: p.NumberedText,
		Positions:    p.Positions.Keys(),
		Numbers:      p.Numbers,
	}
}
