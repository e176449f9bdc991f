package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ituplan/planner-api/internal/dto"
	"github.com/ituplan/planner-api/internal/models"
	"github.com/ituplan/planner-api/internal/timetable"
	"github.com/ituplan/planner-api/pkg/config"
	appErrors "github.com/ituplan/planner-api/pkg/errors"
)

type plannerTermReader interface {
	FindByID(ctx context.Context, id string) (*models.Term, error)
}

type plannerSectionReader interface {
	ListByCodes(ctx context.Context, termID string, codes []string) ([]models.Course, error)
	ListByCRNs(ctx context.Context, termID string, crns []string) ([]models.Course, error)
}

// PlannerService turns plan requests into timetable engine runs.
type PlannerService struct {
	terms    plannerTermReader
	sections plannerSectionReader
	metrics  *MetricsService
	cfg      config.PlannerConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPlannerService constructs a planner service.
func NewPlannerService(terms plannerTermReader, sections plannerSectionReader, metrics *MetricsService, cfg config.PlannerConfig, logger *zap.Logger) *PlannerService {
	return &PlannerService{
		terms:    terms,
		sections: sections,
		metrics:  metrics,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *PlannerService) caps() timetable.Caps {
	caps := timetable.Caps{
		MaxMustSolutions: s.cfg.MaxMustSolutions,
		MaxMustBases:     s.cfg.MaxMustBases,
		MaxGroupVariants: s.cfg.MaxGroupVariants,
		MaxSchedules:     s.cfg.MaxSchedules,
	}
	if s.cfg.SolveTimeout > 0 {
		caps.Deadline = time.Now().Add(s.cfg.SolveTimeout)
	}
	return caps
}

// GeneratePlan builds ranked conflict-free schedules for the request. Codes
// with no sections in the term yield unsatisfiable slots rather than errors;
// the engine degrades around them.
func (s *PlannerService) GeneratePlan(ctx context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if len(req.MustCodes) == 0 && len(req.SelectiveGroups) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one must course or selective group is required")
	}
	if code := repeatedCode(req); code != "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("course %s is requested more than once", code))
	}

	prefs, err := parseConstraints(req.Constraints)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTerm(ctx, req.TermID); err != nil {
		return nil, err
	}

	engineReq := timetable.Request{Prefs: prefs}

	mustSections, err := s.loadSections(ctx, req.TermID, req.MustCodes)
	if err != nil {
		return nil, err
	}
	for _, code := range req.MustCodes {
		engineReq.Must = append(engineReq.Must, mustSections[code])
	}

	for _, group := range req.SelectiveGroups {
		groupSections, err := s.loadSections(ctx, req.TermID, group.Codes)
		if err != nil {
			return nil, err
		}
		options := make([][]models.Course, 0, len(group.Codes))
		for _, code := range group.Codes {
			options = append(options, groupSections[code])
		}
		engineReq.Groups = append(engineReq.Groups, timetable.SelectiveGroup{
			ID:       group.ID,
			Name:     group.Name,
			Required: group.Required,
			Options:  options,
		})
	}

	start := time.Now()
	ranked, stats := timetable.Generate(engineReq, s.caps())
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObservePlanGeneration(elapsed, stats.Returned)
	}
	if s.logger != nil {
		s.logger.Info("plan generated",
			zap.String("term_id", req.TermID),
			zap.Int("must_codes", len(req.MustCodes)),
			zap.Int("groups", len(req.SelectiveGroups)),
			zap.Int("must_bases", stats.MustBases),
			zap.Int("returned", stats.Returned),
			zap.Duration("elapsed", elapsed))
	}

	resp := &dto.GeneratePlanResponse{
		TermID:    req.TermID,
		Schedules: make([]dto.PlanProposal, 0, len(ranked)),
		Stats: dto.PlanStats{
			MustBases:  stats.MustBases,
			Candidates: stats.Candidates,
			Returned:   stats.Returned,
		},
	}
	for _, schedule := range ranked {
		proposal := dto.PlanProposal{
			Sections:     make([]dto.PlanSection, 0, len(schedule.Sections)),
			MatchPercent: schedule.MatchPercent,
		}
		for _, section := range schedule.Sections {
			proposal.Sections = append(proposal.Sections, dto.NewPlanSection(section))
		}
		resp.Schedules = append(resp.Schedules, proposal)
	}
	return resp, nil
}

// CheckConflicts reports every overlapping pair among the named sections.
func (s *PlannerService) CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := s.ensureTerm(ctx, req.TermID); err != nil {
		return nil, err
	}

	sections, err := s.sections.ListByCRNs(ctx, req.TermID, req.CRNs)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	found := make(map[string]bool, len(sections))
	for _, section := range sections {
		found[section.CRN] = true
	}
	var unknown []string
	for _, crn := range req.CRNs {
		if !found[crn] {
			unknown = append(unknown, crn)
		}
	}

	resp := &dto.ConflictCheckResponse{
		TermID:      req.TermID,
		Conflicts:   make([]dto.ConflictPair, 0),
		UnknownCRNs: unknown,
	}
	for i := range sections {
		for j := i + 1; j < len(sections); j++ {
			if timetable.Conflicts(sections[i], sections[j]) {
				resp.Conflicts = append(resp.Conflicts, dto.ConflictPair{
					CRNA: sections[i].CRN,
					CRNB: sections[j].CRN,
				})
			}
		}
	}
	resp.ConflictFree = len(resp.Conflicts) == 0
	return resp, nil
}

// SectionsByCRNs loads the named sections after checking the term. Shared
// with the export flow.
func (s *PlannerService) SectionsByCRNs(ctx context.Context, termID string, crns []string) ([]models.Course, error) {
	if err := s.ensureTerm(ctx, termID); err != nil {
		return nil, err
	}
	sections, err := s.sections.ListByCRNs(ctx, termID, crns)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	return sections, nil
}

func (s *PlannerService) ensureTerm(ctx context.Context, termID string) error {
	if _, err := s.terms.FindByID(ctx, termID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("term %s not found", termID))
		}
		return fmt.Errorf("load term: %w", err)
	}
	return nil
}

// loadSections fetches every section of the requested codes and groups them
// by code. Codes absent from the term map to nil slices.
func (s *PlannerService) loadSections(ctx context.Context, termID string, codes []string) (map[string][]models.Course, error) {
	byCode := make(map[string][]models.Course, len(codes))
	if len(codes) == 0 {
		return byCode, nil
	}

	sections, err := s.sections.ListByCodes(ctx, termID, codes)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	for _, section := range sections {
		byCode[section.Code] = append(byCode[section.Code], section)
	}
	return byCode, nil
}

// repeatedCode returns the first course code appearing more than once across
// the must list and the selective groups. A code occupies one slot, so a
// repeat would place two sections of the same course into one schedule.
func repeatedCode(req dto.GeneratePlanRequest) string {
	seen := make(map[string]bool, len(req.MustCodes))
	for _, code := range req.MustCodes {
		if seen[code] {
			return code
		}
		seen[code] = true
	}
	for _, group := range req.SelectiveGroups {
		for _, code := range group.Codes {
			if seen[code] {
				return code
			}
			seen[code] = true
		}
	}
	return ""
}

func parseConstraints(constraints dto.PlanConstraints) (timetable.Preferences, error) {
	prefs := timetable.Preferences{NoMorning: constraints.NoMorning}
	for _, raw := range constraints.FreeDays {
		day, ok := timetable.ParseDay(raw)
		if !ok {
			return timetable.Preferences{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day name %q", raw))
		}
		prefs.FreeDays = append(prefs.FreeDays, day)
	}
	return prefs, nil
}
