package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ituplan/planner-api/internal/models"
)

// TermRepository handles persistence for archived registration terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns every archived term with its section count. Ordering is left
// to the service layer, which sorts terms by academic recency.
func (r *TermRepository) List(ctx context.Context) ([]models.Term, error) {
	const query = `SELECT t.id, t.name, t.created_at, t.updated_at, COUNT(c.id) AS course_count
FROM terms t
LEFT JOIN courses c ON c.term_id = t.id
GROUP BY t.id, t.name, t.created_at, t.updated_at`

	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// FindByID loads a term by identifier.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.Term, error) {
	const query = `SELECT t.id, t.name, t.created_at, t.updated_at, COUNT(c.id) AS course_count
FROM terms t
LEFT JOIN courses c ON c.term_id = t.id
WHERE t.id = $1
GROUP BY t.id, t.name, t.created_at, t.updated_at`

	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}
