package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/handler"
	"github.com/blacks1k-sc/ParcelVision/internal/queue/memory"
)

func valetRouter(queue *memory.Queue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewValetHandler(queue)
	r.GET("/valet/pending", h.Pending)
	r.POST("/valet/complete", h.Complete)
	r.GET("/valet/queue-status", h.QueueStatus)
	r.POST("/valet/clear-queue", h.ClearQueue)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestPendingEmptyQueue(t *testing.T) {
	r := valetRouter(memory.NewQueue())

	w, body := doJSON(t, r, http.MethodGet, "/valet/pending", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "empty", body["status"])
	assert.Empty(t, body["units"])
}

func TestPendingReturnsQueuedUnits(t *testing.T) {
	queue := memory.NewQueue()
	queue.Enqueue(domain.PendingUnit{Unit: "604", Name: "Jane Doe", Supplier: "UPS", ParcelType: "BROWN BOX", Timestamp: "01/15/2026 14:30:00"})
	r := valetRouter(queue)

	w, body := doJSON(t, r, http.MethodGet, "/valet/pending", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, float64(1), body["count"])

	units := body["units"].([]interface{})
	first := units[0].(map[string]interface{})
	assert.Equal(t, "604", first["unit"])
	assert.Equal(t, "01/15/2026 14:30:00", first["timestamp"])
	// EnqueuedAt is internal bookkeeping, not part of the wire contract.
	assert.NotContains(t, first, "EnqueuedAt")
}

func TestCompleteRemovesUnit(t *testing.T) {
	queue := memory.NewQueue()
	queue.Enqueue(domain.PendingUnit{Unit: "604"})
	queue.Enqueue(domain.PendingUnit{Unit: "101"})
	r := valetRouter(queue)

	w, body := doJSON(t, r, http.MethodPost, "/valet/complete", `{"unit":"604","success":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(1), body["remaining"])
	assert.Equal(t, 1, queue.Size())
}

func TestCompleteFailureKeepsQueue(t *testing.T) {
	queue := memory.NewQueue()
	queue.Enqueue(domain.PendingUnit{Unit: "604"})
	r := valetRouter(queue)

	w, body := doJSON(t, r, http.MethodPost, "/valet/complete", `{"unit":"604","success":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, 1, queue.Size())
}

func TestQueueStatus(t *testing.T) {
	queue := memory.NewQueue()
	queue.Enqueue(domain.PendingUnit{Unit: "604"})
	queue.Enqueue(domain.PendingUnit{Unit: "101"})
	r := valetRouter(queue)

	w, body := doJSON(t, r, http.MethodGet, "/valet/queue-status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["queue_size"])
	assert.Equal(t, []interface{}{"604", "101"}, body["pending_units"])
}

func TestClearQueue(t *testing.T) {
	queue := memory.NewQueue()
	queue.Enqueue(domain.PendingUnit{Unit: "604"})
	r := valetRouter(queue)

	w, body := doJSON(t, r, http.MethodPost, "/valet/clear-queue", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, 0, queue.Size())
	assert.Contains(t, body["message"], "Cleared 1 units")
}
