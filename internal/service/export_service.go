package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
	"github.com/noah-isme/studyhive-api/pkg/export"
)

type rosterClassRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
}

type rosterEnrollmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Enrollment, error)
}

// Roster export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders class rosters for their teacher.
type ExportService struct {
	classes     rosterClassRepository
	enrollments rosterEnrollmentRepository
	exporters   map[string]export.Exporter
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService. Nil exporters fall back to the defaults.
func NewExportService(classes rosterClassRepository, enrollments rosterEnrollmentRepository, logger *zap.Logger, csv, pdf export.Exporter) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		classes:     classes,
		enrollments: enrollments,
		exporters:   map[string]export.Exporter{FormatCSV: csv, FormatPDF: pdf},
		logger:      logger,
		now:         time.Now,
	}
}

var rosterHeaders = []string{"Name", "Email", "Price", "Transaction", "Enrolled At"}

// Roster renders the enrollments of one of teacherEmail's classes.
func (s *ExportService) Roster(ctx context.Context, teacherEmail, classID, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	oid, err := parseID(classID, "class")
	if err != nil {
		return nil, err
	}
	class, err := s.classes.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError(err, "class not found", "failed to load class")
	}
	if !strings.EqualFold(class.TeacherEmail, teacherEmail) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "class belongs to another teacher")
	}

	enrollments, err := s.enrollments.ListByClass(ctx, oid.Hex())
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("%s roster", class.Title),
		Headers: rosterHeaders,
		Rows:    make([]map[string]string, 0, len(enrollments)),
	}
	for _, e := range enrollments {
		enrolledAt := ""
		if !e.CreatedAt.IsZero() {
			enrolledAt = e.CreatedAt.UTC().Format(time.RFC3339)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Name":        e.Name,
			"Email":       e.Email,
			"Price":       strconv.FormatFloat(e.Price, 'f', 2, 64),
			"Transaction": e.TransactionID,
			"Enrolled At": enrolledAt,
		})
	}

	content, err := exporter.Render(dataset)
	if err != nil {
		return nil, internalError(err, "failed to render roster")
	}
	s.logger.Debug("roster exported", zap.String("class_id", oid.Hex()), zap.String("format", format), zap.Int("rows", len(dataset.Rows)))

	return &ExportFile{
		Filename:    fmt.Sprintf("roster-%s-%s.%s", oid.Hex(), s.now().UTC().Format("20060102"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}
