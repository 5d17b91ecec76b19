package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/todos/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	counter := requestsTotal.WithLabelValues(http.MethodGet, "/api/todos/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/api/todos/1", "/api/todos/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestObserveTaskTransition(t *testing.T) {
	completed := taskTransitions.WithLabelValues("completed")
	reopened := taskTransitions.WithLabelValues("reopened")
	beforeCompleted, beforeReopened := testutil.ToFloat64(completed), testutil.ToFloat64(reopened)

	ObserveTaskTransition(true)
	ObserveTaskTransition(false)
	ObserveTaskTransition(false)

	assert.Equal(t, beforeCompleted+1, testutil.ToFloat64(completed))
	assert.Equal(t, beforeReopened+2, testutil.ToFloat64(reopened))
}

func TestHandler_ServesExposition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ObserveTaskTransition(true)

	router := gin.New()
	router.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "todo_task_transitions_total")
}
