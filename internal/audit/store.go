// Package audit persists per-search telemetry: which query ran, which
// sources answered, which failed, and how long everything took. Listing
// payloads are deliberately never written; results stay request-scoped.
package audit

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "time"

    _ "github.com/jackc/pgx/v5/stdlib"

    "github.com/yourorg/aggregator-api/internal/events"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
    db, err := sql.Open("pgx", dsn)
    if err != nil { return nil, err }
    db.SetMaxOpenConns(10)
    db.SetMaxIdleConns(5)
    db.SetConnMaxLifetime(30 * time.Minute)
    return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
    stmts := []string{
        `CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
        `CREATE TABLE IF NOT EXISTS searches (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            source_selector TEXT NOT NULL,
            params          JSONB NOT NULL,
            total           INTEGER NOT NULL,
            sources_queried SMALLINT NOT NULL,
            sources_failed  SMALLINT NOT NULL,
            elapsed_ms      BIGINT NOT NULL,
            created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
        `CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_at DESC);`,
        `CREATE TABLE IF NOT EXISTS search_source_outcomes (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            search_id   UUID NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
            source      TEXT NOT NULL,
            listings    INTEGER NOT NULL,
            error       TEXT,
            elapsed_ms  BIGINT NOT NULL,
            created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
        `CREATE INDEX IF NOT EXISTS idx_outcomes_search ON search_source_outcomes(search_id);`,
        `CREATE INDEX IF NOT EXISTS idx_outcomes_source ON search_source_outcomes(source, created_at DESC);`,
    }
    for _, q := range stmts {
        if _, err := s.DB.ExecContext(ctx, q); err != nil { return err }
    }
    return nil
}

// Record writes one search row plus one outcome row per source, atomically.
func (s *Store) Record(ctx context.Context, evt events.SearchCompleted) error {
    if s.DB == nil { return errors.New("nil db") }
    params, err := json.Marshal(evt.Params)
    if err != nil { return err }

    failed := 0
    for _, so := range evt.Sources {
        if so.Error != "" { failed++ }
    }

    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil { return err }
    defer func() { if err != nil { _ = tx.Rollback() } }()

    var searchID string
    err = tx.QueryRowContext(ctx, `
        INSERT INTO searches (source_selector, params, total, sources_queried, sources_failed, elapsed_ms)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`,
        evt.Params.Source, string(params), evt.Total, len(evt.Sources), failed, evt.Elapsed.Milliseconds(),
    ).Scan(&searchID)
    if err != nil { return err }

    for _, so := range evt.Sources {
        var srcErr sql.NullString
        if so.Error != "" {
            srcErr = sql.NullString{String: so.Error, Valid: true}
        }
        if _, err = tx.ExecContext(ctx, `
            INSERT INTO search_source_outcomes (search_id, source, listings, error, elapsed_ms)
            VALUES ($1,$2,$3,$4,$5)`,
            searchID, so.SourceID, so.Listings, srcErr, so.Elapsed.Milliseconds(),
        ); err != nil { return err }
    }

    err = tx.Commit()
    return err
}
