package models

import "time"

// Term is one archived registration period, e.g.
// "2025-2026_Güz_Dönemi_Ders_Programları".
type Term struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	CourseCount int       `db:"course_count" json:"course_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
