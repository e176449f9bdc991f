// Command seed imports a scraped term archive (JSON dump) into the course
// catalog tables. Re-running with the same dump is safe: terms are matched by
// name and sections upserted by CRN.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type dump struct {
	Term    string       `json:"term"`
	Courses []courseDump `json:"courses"`
}

type courseDump struct {
	CRN        string `json:"crn"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	Instructor string `json:"instructor"`
	Days       string `json:"days"`
	Times      string `json:"times"`
	Building   string `json:"building"`
	Rooms      string `json:"rooms"`
	Level      string `json:"level"`
	Capacity   string `json:"capacity"`
	Enrolled   string `json:"enrolled"`
}

func main() {
	var (
		dsn  = flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres connection string")
		file = flag.String("file", "", "path to a term archive JSON dump")
	)
	flag.Parse()

	if *dsn == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read dump: %v", err)
	}
	var archive dump
	if err := json.Unmarshal(raw, &archive); err != nil {
		log.Fatalf("parse dump: %v", err)
	}
	if archive.Term == "" {
		log.Fatal("dump has no term name")
	}

	db, err := sqlx.Connect("postgres", *dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	inserted, err := load(ctx, db, archive)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	fmt.Printf("seeded %q: %d sections\n", archive.Term, inserted)
}

func load(ctx context.Context, db *sqlx.DB, archive dump) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	termID, err := upsertTerm(ctx, tx, archive.Term)
	if err != nil {
		return 0, err
	}

	const upsert = `INSERT INTO courses (id, term_id, code, crn, title, instructor, days, times, building, rooms, level, capacity, enrolled, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
ON CONFLICT (term_id, crn) DO UPDATE SET
	code = EXCLUDED.code, title = EXCLUDED.title, instructor = EXCLUDED.instructor,
	days = EXCLUDED.days, times = EXCLUDED.times, building = EXCLUDED.building,
	rooms = EXCLUDED.rooms, level = EXCLUDED.level, capacity = EXCLUDED.capacity,
	enrolled = EXCLUDED.enrolled, updated_at = NOW()`

	count := 0
	for _, course := range archive.Courses {
		if course.CRN == "" || course.Code == "" {
			log.Printf("skipping section with missing crn or code: %+v", course)
			continue
		}
		if _, err := tx.ExecContext(ctx, upsert,
			uuid.NewString(), termID, course.Code, course.CRN, course.Title, course.Instructor,
			course.Days, course.Times, course.Building, course.Rooms, course.Level,
			course.Capacity, course.Enrolled); err != nil {
			return 0, fmt.Errorf("upsert section %s: %w", course.CRN, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return count, nil
}

func upsertTerm(ctx context.Context, tx *sqlx.Tx, name string) (string, error) {
	var id string
	err := tx.GetContext(ctx, &id, `SELECT id FROM terms WHERE name = $1`, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("lookup term %q: %w", name, err)
	}

	id = uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO terms (id, name, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())`,
		id, name); err != nil {
		return "", fmt.Errorf("insert term %q: %w", name, err)
	}
	return id, nil
}
