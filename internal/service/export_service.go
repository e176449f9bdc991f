package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ituplan/planner-api/internal/dto"
	"github.com/ituplan/planner-api/internal/models"
	"github.com/ituplan/planner-api/internal/timetable"
	appErrors "github.com/ituplan/planner-api/pkg/errors"
	"github.com/ituplan/planner-api/pkg/export"
)

type planFetcher interface {
	SectionsByCRNs(ctx context.Context, termID string, crns []string) ([]models.Course, error)
}

type exportTermReader interface {
	FindByID(ctx context.Context, id string) (*models.Term, error)
}

// ExportResult carries the rendered bytes with their HTTP metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders chosen sections as downloadable CSV or PDF tables,
// one row per weekly session.
type ExportService struct {
	plans   planFetcher
	terms   exportTermReader
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	enabled bool
	logger  *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(plans planFetcher, terms exportTermReader, enabled bool, logger *zap.Logger) *ExportService {
	return &ExportService{
		plans:   plans,
		terms:   terms,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		enabled: enabled,
		logger:  logger,
	}
}

var planHeaders = []string{"CRN", "Code", "Title", "Instructor", "Day", "Start", "End", "Building", "Room"}

// ExportPlan renders the named sections in the requested format. The format
// defaults to CSV.
func (s *ExportService) ExportPlan(ctx context.Context, query dto.ExportPlanQuery) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "plan export is disabled")
	}

	crns := splitCSV(query.CRNs)
	if len(crns) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one crn is required")
	}

	sections, err := s.plans.SectionsByCRNs(ctx, query.TermID, crns)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no sections found for the requested crns")
	}

	data := export.Dataset{Headers: planHeaders, Rows: planRows(sections)}

	switch strings.ToLower(query.Format) {
	case "", "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, fmt.Errorf("render csv: %w", err)
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("plan-%s.csv", query.TermID),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		subtitle := fmt.Sprintf("%d sections", len(sections))
		if term, err := s.terms.FindByID(ctx, query.TermID); err == nil {
			subtitle = fmt.Sprintf("%s, %d sections", term.Name, len(sections))
		}
		content, err := s.pdf.Render(data, "Weekly Plan", subtitle)
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("plan-%s.pdf", query.TermID),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", query.Format))
	}
}

// planRows flattens sections into one row per weekly session. Sections with
// no parseable meetings still get a row so the export lists every CRN.
func planRows(sections []models.Course) []map[string]string {
	rows := make([]map[string]string, 0, len(sections))
	for _, section := range sections {
		sessions := timetable.Sessions(section)
		if len(sessions) == 0 {
			rows = append(rows, planRow(section, "", "", ""))
			continue
		}
		for _, session := range sessions {
			rows = append(rows, planRow(section,
				session.Day.String(),
				formatMinutes(session.Start),
				formatMinutes(session.End)))
		}
	}
	return rows
}

func planRow(section models.Course, day, start, end string) map[string]string {
	return map[string]string{
		"CRN":        section.CRN,
		"Code":       section.Code,
		"Title":      section.Title,
		"Instructor": section.Instructor,
		"Day":        day,
		"Start":      start,
		"End":        end,
		"Building":   section.Building,
		"Room":       section.Rooms,
	}
}

// formatMinutes renders minutes-from-midnight as HH:MM, folding sessions
// that wrap past midnight back onto the clock.
func formatMinutes(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
