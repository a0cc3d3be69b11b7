package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/classroom-seating-api/internal/dto"
	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/internal/service"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
	"github.com/noah-isme/classroom-seating-api/pkg/response"
)

type classroomManager interface {
	List(ctx context.Context) ([]models.SavedClassroom, error)
	Get(ctx context.Context, name string) (*models.SavedClassroom, error)
	Save(ctx context.Context, classroom models.SavedClassroom) (bool, error)
	Delete(ctx context.Context, name string) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (int, error)
}

type classroomWorkspace interface {
	Snapshot() service.WorkspaceSnapshot
	LoadClassroom(saved models.SavedClassroom)
	MarkSaved(name string)
}

// ClassroomHandler saves and restores named classrooms.
type ClassroomHandler struct {
	classrooms classroomManager
	workspace  classroomWorkspace
	validate   *validator.Validate
}

// NewClassroomHandler constructs the handler.
func NewClassroomHandler(classrooms *service.ClassroomService, workspace *service.WorkspaceService, validate *validator.Validate) *ClassroomHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &ClassroomHandler{classrooms: classrooms, workspace: workspace, validate: validate}
}

// List godoc
// @Summary List saved classrooms
// @Tags Classrooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	classrooms, err := h.classrooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	summaries := make([]dto.ClassroomSummary, 0, len(classrooms))
	for _, classroom := range classrooms {
		summaries = append(summaries, dto.ClassroomSummary{
			Name:           classroom.Name,
			Desks:          len(classroom.Layout),
			HasArrangement: len(classroom.Arrangement) > 0,
			Students:       len(layout.Occupants(classroom.Arrangement)),
		})
	}
	response.JSON(c, http.StatusOK, summaries, map[string]interface{}{"total": len(summaries)})
}

// Save godoc
// @Summary Save the current layout and arrangement under a name
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body dto.SaveClassroomRequest true "Classroom name"
// @Success 200 {object} response.Envelope "existing classroom overwritten"
// @Success 201 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Save(c *gin.Context) {
	var req dto.SaveClassroomRequest
	if !bindJSON(c, h.validate, &req, "invalid classroom payload") {
		return
	}
	snapshot := h.workspace.Snapshot()
	replaced, err := h.classrooms.Save(c.Request.Context(), models.SavedClassroom{
		Name:        req.Name,
		Layout:      snapshot.Layout,
		Arrangement: snapshot.Arrangement,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.workspace.MarkSaved(req.Name)
	status := http.StatusCreated
	if replaced {
		status = http.StatusOK
	}
	response.JSON(c, status, dto.SaveClassroomResponse{Name: req.Name, Replaced: replaced})
}

// Get godoc
// @Summary Get a saved classroom
// @Tags Classrooms
// @Produce json
// @Param name path string true "Classroom name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{name} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	classroom, err := h.classrooms.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classroom)
}

// Load godoc
// @Summary Load a saved classroom into the workspace
// @Tags Classrooms
// @Produce json
// @Param name path string true "Classroom name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{name}/load [post]
func (h *ClassroomHandler) Load(c *gin.Context) {
	classroom, err := h.classrooms.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.workspace.LoadClassroom(*classroom)
	snapshot := h.workspace.Snapshot()
	response.OK(c, models.SavedClassroom{
		Name:        snapshot.Classroom,
		Layout:      snapshot.Layout,
		Arrangement: snapshot.Arrangement,
	})
}

// Delete godoc
// @Summary Delete a saved classroom
// @Tags Classrooms
// @Param name path string true "Classroom name"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{name} [delete]
func (h *ClassroomHandler) Delete(c *gin.Context) {
	if err := h.classrooms.Delete(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download every saved classroom as JSON
// @Tags Classrooms
// @Produce json
// @Success 200 {file} file
// @Router /classrooms/export [get]
func (h *ClassroomHandler) Export(c *gin.Context) {
	payload, err := h.classrooms.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "ulozene-tridy.json", "application/json", payload)
}

// Import godoc
// @Summary Replace saved classrooms with an exported JSON document
// @Tags Classrooms
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param file formData file false "Exported classrooms"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classrooms/import [post]
func (h *ClassroomHandler) Import(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidImport.Code, appErrors.ErrInvalidImport.Status, "import file could not be read"))
		return
	}
	count, err := h.classrooms.Import(c.Request.Context(), data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ImportClassroomsResponse{Imported: count})
}
