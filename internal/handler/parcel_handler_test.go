package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/handler"
	"github.com/blacks1k-sc/ParcelVision/internal/service"
)

// stubParcelService returns canned results for handler tests.
type stubParcelService struct {
	result  *service.ParcelUploadResult
	err     error
	entries []domain.LedgerEntry
}

func (s *stubParcelService) ProcessUpload(ctx context.Context, input service.ParcelUploadInput) (*service.ParcelUploadResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubParcelService) ListEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	return s.entries, nil
}

func parcelRouter(svc service.ParcelService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewParcelHandler(svc)
	r.POST("/api/v1/parcels/upload", h.Upload)
	r.GET("/api/v1/parcels", h.List)
	r.GET("/api/v1/parcels/export", h.Export)
	return r
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadSuccess(t *testing.T) {
	svc := &stubParcelService{result: &service.ParcelUploadResult{
		Record:      domain.ParcelRecord{Unit: "604", Name: "Jane Doe", Supplier: "UPS", ParcelType: "BROWN BOX"},
		ValetStatus: domain.ValetStatusQueued,
		Timestamp:   "01/15/2026 14:30:00",
		ImageKey:    "2026-01-15_14-30-00_604_Jane_Doe_UPS_BROWN_BOX.png",
	}}
	r := parcelRouter(svc)

	body, contentType := multipartUpload(t, "file", "label.png", []byte("fake image"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parcels/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "queued", data["valet_status"])
	record := data["record"].(map[string]interface{})
	assert.Equal(t, "604", record["unit"])
}

func TestUploadMissingFile(t *testing.T) {
	r := parcelRouter(&stubParcelService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parcels/upload", strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadDomainErrorMapping(t *testing.T) {
	r := parcelRouter(&stubParcelService{err: domain.ErrUnsupportedFileType})

	body, contentType := multipartUpload(t, "file", "label.bmp", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parcels/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestListEntries(t *testing.T) {
	svc := &stubParcelService{entries: []domain.LedgerEntry{
		{Timestamp: "01/15/2026 14:30:00", Unit: "604", Name: "Jane Doe", Supplier: "UPS", ParcelType: "BROWN BOX"},
	}}
	r := parcelRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])
}

func TestExportStreamsCSV(t *testing.T) {
	svc := &stubParcelService{entries: []domain.LedgerEntry{
		{Timestamp: "01/15/2026 14:30:00", Unit: "604", Name: "Jane Doe", Supplier: "UPS", ParcelType: "BROWN BOX"},
	}}
	r := parcelRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "parcel_ledger_")

	body := w.Body.Bytes()
	// UTF-8 BOM prefix for spreadsheet imports.
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(body), "604,Jane Doe,UPS,BROWN BOX")
}
