package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	requests []observed
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.requests = append(r.requests, observed{method, path, status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.DELETE("/layout/desks/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/layout/desks/abc", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, path, nil))
	}

	require.Len(t, observer.requests, 2)
	assert.Equal(t, observed{http.MethodDelete, "/layout/desks/:id", http.StatusNoContent}, observer.requests[0])
	assert.Equal(t, observed{http.MethodDelete, unmatchedRoute, http.StatusNotFound}, observer.requests[1])
}
