package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func loggerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/valet/pending", ok)
	r.GET("/healthz", ok)
	r.GET("/api/v1/parcels", ok)
	return r
}

func TestLoggerSkipsPollingPaths(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := loggerRouter()
	for _, path := range []string{"/valet/pending", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Empty(t, buf.String())
}

func TestLoggerLogsUploadTraffic(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := loggerRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "GET /api/v1/parcels 200")
	assert.Contains(t, buf.String(), "middleware.Logger:")
}
