package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blacks1k-sc/ParcelVision/internal/export"
	"github.com/blacks1k-sc/ParcelVision/internal/service"
)

// ParcelHandler handles label photo uploads and ledger queries.
type ParcelHandler struct {
	parcelService service.ParcelService
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(parcelService service.ParcelService) *ParcelHandler {
	return &ParcelHandler{parcelService: parcelService}
}

// Upload handles POST /api/v1/parcels/upload
func (h *ParcelHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "no file provided in 'file' form field")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.parcelService.ProcessUpload(c.Request.Context(), service.ParcelUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// List handles GET /api/v1/parcels
func (h *ParcelHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.parcelService.ListEntries(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"entries": entries, "count": len(entries)})
}

// Export handles GET /api/v1/parcels/export
// Streams the full ledger as a CSV download.
func (h *ParcelHandler) Export(c *gin.Context) {
	entries, err := h.parcelService.ListEntries(c.Request.Context(), 0)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("parcel_ledger")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteEntries(entries); err != nil {
		return
	}
	w.Flush()
}
