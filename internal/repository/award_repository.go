package repository

import (
	"context"
	"database/sql"

	"github.com/atelier/discography-api/internal/model"
)

// AwardRepo lists the awards referenced by albums and tracks.
type AwardRepo struct{ db *sql.DB }

func NewAwardRepo(db *sql.DB) *AwardRepo { return &AwardRepo{db: db} }

// List returns all awards ordered by name.
func (r *AwardRepo) List(ctx context.Context) ([]model.Award, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, created_at FROM awards ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	awards := make([]model.Award, 0)
	for rows.Next() {
		var a model.Award
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return awards, nil
}
