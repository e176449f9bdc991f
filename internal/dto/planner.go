package dto

import "github.com/ituplan/planner-api/internal/models"

// SelectiveGroupRequest asks the planner to place up to Required courses out
// of the listed course codes.
type SelectiveGroupRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Required int      `json:"required" validate:"required,min=1,max=10"`
	Codes    []string `json:"codes" validate:"required,min=1,unique,dive,min=1"`
}

// PlanConstraints are soft preferences; violating them lowers the score but
// never removes a schedule.
type PlanConstraints struct {
	FreeDays  []string `json:"freeDays" validate:"omitempty,dive,min=1"`
	NoMorning bool     `json:"noMorning"`
}

// GeneratePlanRequest instructs the planner to build ranked weekly schedules
// for the term.
type GeneratePlanRequest struct {
	TermID          string                  `json:"termId" validate:"required"`
	MustCodes       []string                `json:"mustCodes" validate:"omitempty,unique,dive,min=1"`
	SelectiveGroups []SelectiveGroupRequest `json:"selectiveGroups" validate:"omitempty,dive"`
	Constraints     PlanConstraints         `json:"constraints"`
}

// PlanSection is one section placed into a generated schedule.
type PlanSection struct {
	CRN        string `json:"crn"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	Instructor string `json:"instructor"`
	Days       string `json:"days"`
	Times      string `json:"times"`
	Building   string `json:"building"`
	Rooms      string `json:"rooms"`
}

// PlanProposal is one conflict-free candidate schedule with its match score.
type PlanProposal struct {
	Sections     []PlanSection `json:"sections"`
	MatchPercent float64       `json:"matchPercent"`
}

// PlanStats summarises the generation run.
type PlanStats struct {
	MustBases  int `json:"mustBases"`
	Candidates int `json:"candidates"`
	Returned   int `json:"returned"`
}

// GeneratePlanResponse returns ranked schedules best-first.
type GeneratePlanResponse struct {
	TermID    string         `json:"termId"`
	Schedules []PlanProposal `json:"schedules"`
	Stats     PlanStats      `json:"stats"`
}

// ConflictCheckRequest asks whether the listed sections can coexist.
type ConflictCheckRequest struct {
	TermID string   `json:"termId" validate:"required"`
	CRNs   []string `json:"crns" validate:"required,min=2,dive,min=1"`
}

// ConflictPair names two sections whose meetings overlap.
type ConflictPair struct {
	CRNA string `json:"crnA"`
	CRNB string `json:"crnB"`
}

// ConflictCheckResponse reports every overlapping pair. An empty Conflicts
// list means the sections fit together.
type ConflictCheckResponse struct {
	TermID       string         `json:"termId"`
	ConflictFree bool           `json:"conflictFree"`
	Conflicts    []ConflictPair `json:"conflicts"`
	UnknownCRNs  []string       `json:"unknownCrns,omitempty"`
}

// ExportPlanQuery selects the sections and format of a plan export.
type ExportPlanQuery struct {
	TermID string `form:"termId" json:"termId" validate:"required"`
	CRNs   string `form:"crns" json:"crns" validate:"required"`
	Format string `form:"format" json:"format" validate:"omitempty,oneof=csv pdf"`
}

// NewPlanSection maps a catalog section onto its response shape.
func NewPlanSection(course models.Course) PlanSection {
	return PlanSection{
		CRN:        course.CRN,
		Code:       course.Code,
		Title:      course.Title,
		Instructor: course.Instructor,
		Days:       course.Days,
		Times:      course.Times,
		Building:   course.Building,
		Rooms:      course.Rooms,
	}
}
