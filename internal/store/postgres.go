package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rigfit/rigfit/internal/analysis"
	"github.com/rigfit/rigfit/internal/catalog"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateCatalog(ctx context.Context, c *catalog.Catalog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO rigfit_catalogs (name)
		VALUES ($1)
		RETURNING catalog_id, created_at, updated_at`,
		c.Name,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert catalog: %w", err)
	}

	if err := insertCandidates(ctx, tx, c.ID, c.Candidates); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetCatalog(ctx context.Context, id uuid.UUID) (*catalog.Catalog, error) {
	c := &catalog.Catalog{}
	err := s.pool.QueryRow(ctx, `
		SELECT catalog_id, name, created_at, updated_at
		FROM rigfit_catalogs WHERE catalog_id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT model, cpu_score, gpu_score, ram_gb, storage_gb, price
		FROM rigfit_candidates WHERE catalog_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cand catalog.Candidate
		if err := rows.Scan(&cand.Model, &cand.CPUScore, &cand.GPUScore,
			&cand.RAMGB, &cand.StorageGB, &cand.Price); err != nil {
			return nil, err
		}
		c.Candidates = append(c.Candidates, cand)
	}
	return c, rows.Err()
}

func (s *PostgresStore) ListCatalogs(ctx context.Context) ([]CatalogSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.catalog_id, c.name, c.updated_at,
			COUNT(r.model), COALESCE(MIN(r.price), 0), COALESCE(MAX(r.price), 0)
		FROM rigfit_catalogs c
		LEFT JOIN rigfit_candidates r ON r.catalog_id = c.catalog_id
		GROUP BY c.catalog_id, c.name, c.updated_at
		ORDER BY c.updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CatalogSummary
	for rows.Next() {
		var cs CatalogSummary
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.UpdatedAt,
			&cs.CandidateCount, &cs.PriceMin, &cs.PriceMax); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

// ReplaceCandidates swaps a catalog's rows in one transaction and bumps
// updated_at, which invalidates any stored analysis of the old snapshot.
func (s *PostgresStore) ReplaceCandidates(ctx context.Context, id uuid.UUID, rows []catalog.Candidate) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE rigfit_catalogs SET updated_at = now() WHERE catalog_id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch catalog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("catalog %s not found", id)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM rigfit_candidates WHERE catalog_id = $1`, id); err != nil {
		return fmt.Errorf("delete candidates: %w", err)
	}
	if err := insertCandidates(ctx, tx, id, rows); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) DeleteCatalog(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM rigfit_catalogs WHERE catalog_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("catalog %s not found", id)
	}
	return nil
}

// SaveAnalysis upserts the latest analysis snapshot for a catalog, replacing
// the previous one atomically.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, sa *StoredAnalysis) error {
	resultJSON, err := json.Marshal(sa.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO rigfit_analyses (catalog_id, catalog_version, result)
		VALUES ($1, $2, $3)
		ON CONFLICT (catalog_id) DO UPDATE
		SET catalog_version = EXCLUDED.catalog_version,
			result = EXCLUDED.result,
			created_at = now()
		RETURNING created_at`,
		sa.CatalogID, sa.CatalogVersion, resultJSON,
	).Scan(&sa.CreatedAt)
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, catalogID uuid.UUID) (*StoredAnalysis, error) {
	sa := &StoredAnalysis{}
	var resultJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT catalog_id, catalog_version, result, created_at
		FROM rigfit_analyses WHERE catalog_id = $1`, catalogID,
	).Scan(&sa.CatalogID, &sa.CatalogVersion, &resultJSON, &sa.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sa.Result = &analysis.Result{}
	if err := json.Unmarshal(resultJSON, sa.Result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return sa, nil
}

func insertCandidates(ctx context.Context, tx pgx.Tx, id uuid.UUID, rows []catalog.Candidate) error {
	for i, r := range rows {
		if _, err := tx.Exec(ctx, `
			INSERT INTO rigfit_candidates (catalog_id, position, model,
				cpu_score, gpu_score, ram_gb, storage_gb, price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, i, r.Model, r.CPUScore, r.GPUScore, r.RAMGB, r.StorageGB, r.Price,
		); err != nil {
			return fmt.Errorf("insert candidate %s: %w", r.Model, err)
		}
	}
	return nil
}
