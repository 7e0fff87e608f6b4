package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type diplomaRepo struct {
	drv *entsql.Driver
}

func (r *diplomaRepo) Create(ctx context.Context, d DiplomaData) error {
	query, args := builder().
		Insert(diplomasTable).
		Columns("uid", "student_name", "total_stars", "avg_accuracy", "level_results", "completed_at").
		Values(d.ID, d.StudentName, d.TotalStars, d.AvgAccuracy, d.LevelResults, d.CompletedAt.UTC()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save diploma: %w", err)
	}
	return nil
}

func (r *diplomaRepo) List(ctx context.Context) ([]DiplomaData, error) {
	query, args := builder().
		Select("uid", "student_name", "total_stars", "avg_accuracy", "level_results", "completed_at").
		From(entsql.Table(diplomasTable)).
		OrderBy(entsql.Desc("completed_at"), entsql.Desc("id")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query diplomas: %w", err)
	}
	defer rows.Close()

	var out []DiplomaData
	for rows.Next() {
		var d DiplomaData
		if err := rows.Scan(&d.ID, &d.StudentName, &d.TotalStars, &d.AvgAccuracy, &d.LevelResults, &d.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan diploma: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
