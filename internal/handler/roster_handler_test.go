package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-seating-api/internal/dto"
	"github.com/noah-isme/classroom-seating-api/internal/service"
)

func newRosterRouter(cfg service.WorkspaceServiceConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &RosterHandler{workspace: service.NewWorkspaceService(nil, nil, cfg), validate: validator.New()}
	router := gin.New()
	router.GET("/roster", h.Get)
	router.PUT("/roster", h.Replace)
	router.POST("/roster/import", h.Import)
	return router
}

func TestRosterHandlerReplaceTrimsNames(t *testing.T) {
	router := newRosterRouter(service.WorkspaceServiceConfig{})

	w := doJSON(router, http.MethodPut, "/roster", `{"names":[" Anna ","","Petr"]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[dto.RosterResponse](t, w)
	assert.Equal(t, []string{"Anna", "Petr"}, body.Data.Names)
	assert.Equal(t, 2, body.Data.Count)

	w = doJSON(router, http.MethodGet, "/roster", ``)
	assert.Equal(t, []string{"Anna", "Petr"}, decode[dto.RosterResponse](t, w).Data.Names)
}

func TestRosterHandlerImportSources(t *testing.T) {
	t.Run("json text", func(t *testing.T) {
		router := newRosterRouter(service.WorkspaceServiceConfig{})
		w := doJSON(router, http.MethodPost, "/roster/import", `{"text":"Anna\r\n\r\nPetr\n"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Anna", "Petr"}, decode[dto.RosterResponse](t, w).Data.Names)
	})

	t.Run("raw body", func(t *testing.T) {
		router := newRosterRouter(service.WorkspaceServiceConfig{})
		req, _ := http.NewRequest(http.MethodPost, "/roster/import", bytes.NewBufferString("\ufeffJana\nKarel"))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Jana", "Karel"}, decode[dto.RosterResponse](t, w).Data.Names)
	})

	t.Run("multipart file", func(t *testing.T) {
		router := newRosterRouter(service.WorkspaceServiceConfig{})
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", "zaci.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("Eva\nOto\n"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req, _ := http.NewRequest(http.MethodPost, "/roster/import", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, []string{"Eva", "Oto"}, decode[dto.RosterResponse](t, w).Data.Names)
	})

	t.Run("multipart without file", func(t *testing.T) {
		router := newRosterRouter(service.WorkspaceServiceConfig{})
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("other", "x"))
		require.NoError(t, writer.Close())

		req, _ := http.NewRequest(http.MethodPost, "/roster/import", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRosterHandlerRejectsOversizedRoster(t *testing.T) {
	router := newRosterRouter(service.WorkspaceServiceConfig{MaxRosterNames: 1})

	w := doJSON(router, http.MethodPut, "/roster", `{"names":["A","B"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandlerRejectsOversizedUpload(t *testing.T) {
	router := newRosterRouter(service.WorkspaceServiceConfig{MaxRosterNames: maxUploadBytes})
	body := bytes.Repeat([]byte("Jan\n"), maxUploadBytes/4+1)

	req, _ := http.NewRequest(http.MethodPost, "/roster/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/roster", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.RosterResponse](t, w).Data.Names)
}
