// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"quirkit/internal/domain/entity"
	"quirkit/internal/repository"
	"quirkit/internal/resilience/circuitbreaker"
)

// ComplimentRepo reads and writes the compliments table through a circuit
// breaker, so an unreachable database fails fast.
type ComplimentRepo struct {
	db *circuitbreaker.DBCircuitBreaker
}

func NewComplimentRepo(db *sql.DB) repository.ComplimentRepository {
	return &ComplimentRepo{db: circuitbreaker.NewDBCircuitBreaker(db)}
}

// NewComplimentRepoWithBreaker uses an existing breaker-wrapped connection.
func NewComplimentRepoWithBreaker(db *circuitbreaker.DBCircuitBreaker) repository.ComplimentRepository {
	return &ComplimentRepo{db: db}
}

func (repo *ComplimentRepo) Append(ctx context.Context, c entity.Compliment) error {
	var flagsJSON []byte
	if len(c.ModerationFlags) > 0 {
		var err error
		flagsJSON, err = json.Marshal(c.ModerationFlags)
		if err != nil {
			return fmt.Errorf("Append: marshal moderation_flags: %w", err)
		}
	}

	const query = `
INSERT INTO compliments (id, message, sender, created_at_ms, is_moderated, is_approved, moderation_flags)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.ExecContext(ctx, query,
		c.ID, c.Message, c.Sender, c.Timestamp,
		c.IsModerated, c.IsApproved, flagsJSON,
	)
	if err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	return nil
}

func (repo *ComplimentRepo) Filter(ctx context.Context, keep func(entity.Compliment) bool) ([]entity.Compliment, error) {
	const query = `
SELECT id, message, sender, created_at_ms, is_moderated, is_approved, moderation_flags
FROM compliments
ORDER BY created_at_ms DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("Filter: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]entity.Compliment, 0, 50)
	for rows.Next() {
		c, err := scanCompliment(rows)
		if err != nil {
			return nil, fmt.Errorf("Filter: %w", err)
		}
		if keep(c) {
			out = append(out, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Filter: %w", err)
	}
	return out, nil
}

func scanCompliment(rows *sql.Rows) (entity.Compliment, error) {
	var c entity.Compliment
	var flagsJSON []byte
	if err := rows.Scan(
		&c.ID, &c.Message, &c.Sender, &c.Timestamp,
		&c.IsModerated, &c.IsApproved, &flagsJSON,
	); err != nil {
		return entity.Compliment{}, err
	}
	if len(flagsJSON) > 0 {
		if err := json.Unmarshal(flagsJSON, &c.ModerationFlags); err != nil {
			return entity.Compliment{}, fmt.Errorf("unmarshal moderation_flags: %w", err)
		}
	}
	return c, nil
}
