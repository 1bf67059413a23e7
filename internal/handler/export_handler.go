package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type rosterExporter interface {
	Roster(ctx context.Context, teacherEmail, classID, format string) (*service.ExportFile, error)
}

// ExportHandler streams roster downloads.
type ExportHandler struct {
	service rosterExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc rosterExporter) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Roster godoc
// @Summary Download class roster
// @Tags Classes
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param email path string true "Teacher email"
// @Param id path string true "Class ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /my-classes/{email}/roster/{id} [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	file, err := h.service.Roster(c.Request.Context(), c.Param("email"), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
