package models

import "time"

// Course is one schedulable section of a course offering within a term. The
// code identifies the course ("BLG 221E"); the CRN identifies this specific
// section. Days and Times carry the raw comma-separated strings from the
// source archive; capacity and enrolled stay raw strings because the archive
// data is irregular ("60", "60+5", "").
type Course struct {
	ID         string    `db:"id" json:"id"`
	TermID     string    `db:"term_id" json:"term_id"`
	Code       string    `db:"code" json:"code"`
	CRN        string    `db:"crn" json:"crn"`
	Title      string    `db:"title" json:"title"`
	Instructor string    `db:"instructor" json:"instructor"`
	Days       string    `db:"days" json:"days"`
	Times      string    `db:"times" json:"times"`
	Building   string    `db:"building" json:"building"`
	Rooms      string    `db:"rooms" json:"rooms"`
	Level      string    `db:"level" json:"level"`
	Capacity   string    `db:"capacity" json:"capacity"`
	Enrolled   string    `db:"enrolled" json:"enrolled"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter captures supported filters when browsing a term's catalog.
type CourseFilter struct {
	TermID      string
	Query       string
	SearchField string
	Code        string
	Level       string
	Subject     string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
