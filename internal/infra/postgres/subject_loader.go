package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-party/internal/domain"
)

// SubjectLoader loads subject JSONB from Postgres.
type SubjectLoader struct {
	pool *pgxpool.Pool
}

func NewSubjectLoader(pool *pgxpool.Pool) *SubjectLoader {
	return &SubjectLoader{pool: pool}
}

func (l *SubjectLoader) LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM subjects WHERE id=$1`, subjectID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subject{}, domain.ErrSubjectNotFound
	}
	if err != nil {
		return domain.Subject{}, fmt.Errorf("load subject: %w", err)
	}
	var subject domain.Subject
	if err := json.Unmarshal(raw, &subject); err != nil {
		return domain.Subject{}, fmt.Errorf("unmarshal subject: %w", err)
	}
	return subject, nil
}

// LoadSubjects returns the whole catalog ordered by position.
func (l *SubjectLoader) LoadSubjects(ctx context.Context) ([]domain.Subject, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM subjects ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		var subject domain.Subject
		if err := json.Unmarshal(raw, &subject); err != nil {
			return nil, fmt.Errorf("unmarshal subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}
