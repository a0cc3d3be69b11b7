package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/classroom-seating-api/internal/dto"
	"github.com/noah-isme/classroom-seating-api/internal/service"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
	"github.com/noah-isme/classroom-seating-api/pkg/response"
)

type rosterWorkspace interface {
	SetRoster(names []string) ([]string, error)
	ImportRoster(text string) ([]string, error)
	Roster() []string
	AvailableSeats() int
}

// RosterHandler manages the student roster.
type RosterHandler struct {
	workspace rosterWorkspace
	validate  *validator.Validate
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(workspace *service.WorkspaceService, validate *validator.Validate) *RosterHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &RosterHandler{workspace: workspace, validate: validate}
}

// Get godoc
// @Summary Get the roster
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster [get]
func (h *RosterHandler) Get(c *gin.Context) {
	response.OK(c, h.rosterResponse(h.workspace.Roster()))
}

// Replace godoc
// @Summary Replace the roster
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.RosterRequest true "Names"
// @Success 200 {object} response.Envelope
// @Router /roster [put]
func (h *RosterHandler) Replace(c *gin.Context) {
	var req dto.RosterRequest
	if !bindJSON(c, h.validate, &req, "invalid roster payload") {
		return
	}
	names, err := h.workspace.SetRoster(req.Names)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.rosterResponse(names))
}

// Import godoc
// @Summary Import the roster from a plain-text file, one name per line
// @Tags Roster
// @Accept multipart/form-data
// @Accept plain
// @Produce json
// @Param file formData file false "Roster file"
// @Success 200 {object} response.Envelope
// @Router /roster/import [post]
func (h *RosterHandler) Import(c *gin.Context) {
	var text string
	if strings.HasPrefix(c.GetHeader("Content-Type"), "application/json") {
		var req dto.RosterImportRequest
		if !bindJSON(c, h.validate, &req, "invalid roster import payload") {
			return
		}
		text = req.Text
	} else {
		data, err := readUpload(c)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "roster file could not be read"))
			return
		}
		text = string(data)
	}
	names, err := h.workspace.ImportRoster(text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.rosterResponse(names))
}

func (h *RosterHandler) rosterResponse(names []string) dto.RosterResponse {
	if names == nil {
		names = []string{}
	}
	return dto.RosterResponse{
		Names:          names,
		Count:          len(names),
		AvailableSeats: h.workspace.AvailableSeats(),
	}
}
