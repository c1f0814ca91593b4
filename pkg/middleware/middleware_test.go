package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skeleton/pkg/logging"
	"skeleton/pkg/support"
)

type entry struct {
	level     string
	msg       string
	requestID string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *recordingLogger) add(ctx context.Context, level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry{level: level, msg: msg, requestID: logging.GetRequestID(ctx)})
}

func (l *recordingLogger) InfowCtx(ctx context.Context, msg string, _ ...interface{}) {
	l.add(ctx, "info", msg)
}

func (l *recordingLogger) ErrorwCtx(ctx context.Context, msg string, _ ...interface{}) {
	l.add(ctx, "error", msg)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDIsGeneratedAndPropagated(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		seen = logging.GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	assert.Len(t, seen, 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestWebEnvironmentMiddleware(t *testing.T) {
	var env string
	r := gin.New()
	r.Use(WebEnvironmentMiddleware())
	r.GET("/", func(c *gin.Context) {
		env = support.Environment(c.Request.Context())
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, support.EnvironmentWeb, env)
}

func TestLoggerLevelFollowsStatus(t *testing.T) {
	log := &recordingLogger{}
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	require.Len(t, log.entries, 2)
	assert.Equal(t, "info", log.entries[0].level)
	assert.Equal(t, "req-1", log.entries[0].requestID)
	assert.Equal(t, "error", log.entries[1].level)
}

func TestRecoveryMiddleware(t *testing.T) {
	log := &recordingLogger{}
	r := gin.New()
	r.Use(RecoveryMiddleware(log))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	require.Len(t, log.entries, 1)
	assert.Equal(t, "Panic recovered", log.entries[0].msg)
}
