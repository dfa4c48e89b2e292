package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"risk_service/internal/domain/model"
)

// HistoryRepository persists resolved selections for the history endpoint.
type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Connect opens the database and ensures the schema exists.
func Connect(connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS resolutions (
			id SERIAL PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT '',
			risk DOUBLE PRECISION NOT NULL,
			departamento TEXT NOT NULL DEFAULT '',
			provincia TEXT NOT NULL DEFAULT '',
			distrito TEXT NOT NULL DEFAULT '',
			fallback BOOLEAN NOT NULL DEFAULT FALSE,
			payload JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resolutions_created_at ON resolutions(created_at DESC)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveResolution inserts one resolved selection. The full resolution is
// kept as JSON alongside the queryable columns.
func (r *HistoryRepository) SaveResolution(ctx context.Context, res *model.Resolution) error {
	const query = `
		INSERT INTO resolutions (
			lat, lng, address, severity, risk,
			departamento, provincia, distrito, fallback, payload, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}

	p := res.Prediction
	_, err = r.db.ExecContext(ctx, query,
		p.Lat, p.Lng, p.Address, p.Severity, p.Risk,
		p.Departamento, p.Provincia, p.Distrito,
		res.State == model.StateLoadedFallback,
		payload, res.CreatedAt,
	)
	return err
}

// Recent returns the newest persisted resolutions.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	const query = `
		SELECT
			id, lat, lng, address, severity, risk,
			departamento, provincia, distrito, fallback, created_at
		FROM resolutions
		ORDER BY created_at DESC
		LIMIT $1`

	entries := []model.HistoryEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return entries, nil
}
