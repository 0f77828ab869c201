// Package postgres implements the blog store on PostgreSQL with pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"blogly/app/models"
	"blogly/app/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements repositories.Store over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) View(ctx context.Context, fn func(tx repositories.Tx) error) error {
	return s.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (s *Store) Update(ctx context.Context, fn func(tx repositories.Tx) error) error {
	return s.run(ctx, pgx.TxOptions{}, fn)
}

func (s *Store) run(ctx context.Context, opts pgx.TxOptions, fn func(tx repositories.Tx) error) error {
	return pgx.BeginTxFunc(ctx, s.pool, opts, func(tx pgx.Tx) error {
		return fn(&pgTx{ctx: ctx, tx: tx})
	})
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// pgTx carries the request context for the lifetime of one transaction.
type pgTx struct {
	ctx context.Context
	tx  pgx.Tx
}

func (t *pgTx) Users() repositories.UserRepository       { return &UserRepository{t} }
func (t *pgTx) Posts() repositories.PostRepository       { return &PostRepository{t} }
func (t *pgTx) Tags() repositories.TagRepository         { return &TagRepository{t} }
func (t *pgTx) PostTags() repositories.PostTagRepository { return &PostTagRepository{t} }

// execOne runs a statement that must touch exactly one row.
func (t *pgTx) execOne(sql string, args ...any) error {
	tag, err := t.tx.Exec(t.ctx, sql, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", repositories.ErrDuplicate, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", repositories.ErrNotFound, pgErr.ConstraintName)
		case "23502", "22001": // not_null_violation, string_data_right_truncation
			return fmt.Errorf("%w: %s", models.ErrInvalid, pgErr.Message)
		}
	}
	return err
}
