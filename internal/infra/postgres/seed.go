package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"trivia-party/internal/domain"
)

type subjectRow struct {
	bun.BaseModel `bun:"table:subjects"`

	ID       string         `bun:"id,pk"`
	Position int            `bun:"position,notnull"`
	Data     domain.Subject `bun:"data,type:jsonb,notnull"`
}

// SeedSubjects upserts subjects keeping their slice order as catalog order.
func SeedSubjects(ctx context.Context, db *bun.DB, subjects []domain.Subject) error {
	if err := domain.ValidateSubjects(subjects); err != nil {
		return err
	}
	if len(subjects) == 0 {
		return nil
	}

	rows := make([]subjectRow, 0, len(subjects))
	for i, s := range subjects {
		rows = append(rows, subjectRow{ID: s.ID, Position: i, Data: s})
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("position = EXCLUDED.position").
		Set("data = EXCLUDED.data").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed subjects: %w", err)
	}
	return nil
}
