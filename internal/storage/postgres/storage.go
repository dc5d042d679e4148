package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type accountRepository struct {
	storage *Storage
}

type listingRepository struct {
	storage *Storage
}

type negotiationRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type reviewRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Listings() repository.ListingRepository {
	return &listingRepository{storage: s}
}

func (s *Storage) Negotiations() repository.NegotiationRepository {
	return &negotiationRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Reviews() repository.ReviewRepository {
	return &reviewRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL CHECK (role IN ('farmer', 'buyer', 'admin')),
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS listings (
            id BIGSERIAL PRIMARY KEY,
            farmer_id BIGINT NOT NULL REFERENCES accounts(id),
            title TEXT NOT NULL,
            unit TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL CHECK (price > 0),
            available BIGINT NOT NULL CHECK (available >= 0),
            negotiable BOOLEAN NOT NULL DEFAULT FALSE,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS negotiation_sessions (
            id BIGSERIAL PRIMARY KEY,
            listing_id BIGINT NOT NULL REFERENCES listings(id),
            buyer_id BIGINT NOT NULL REFERENCES accounts(id),
            farmer_id BIGINT NOT NULL REFERENCES accounts(id),
            status TEXT NOT NULL,
            agreed_price NUMERIC(12,2) CHECK (agreed_price > 0),
            listing_price_at_accept NUMERIC(12,2),
            consumed_by_order BIGINT,
            version INTEGER NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (listing_id, buyer_id)
        )`,
		`CREATE TABLE IF NOT EXISTS negotiation_offers (
            id BIGSERIAL PRIMARY KEY,
            session_id BIGINT NOT NULL REFERENCES negotiation_sessions(id) ON DELETE CASCADE,
            author_id BIGINT NOT NULL,
            author_role TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL CHECK (price > 0),
            kind TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES accounts(id),
            farmer_id BIGINT NOT NULL REFERENCES accounts(id),
            total NUMERIC(14,2) NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            shipping_address TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            position INTEGER NOT NULL,
            listing_id BIGINT NOT NULL REFERENCES listings(id),
            quantity BIGINT NOT NULL CHECK (quantity > 0),
            unit_price NUMERIC(12,2) NOT NULL,
            negotiation_id BIGINT REFERENCES negotiation_sessions(id)
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL UNIQUE REFERENCES orders(id),
            listing_id BIGINT NOT NULL REFERENCES listings(id),
            reviewer_id BIGINT NOT NULL REFERENCES accounts(id),
            target_id BIGINT NOT NULL REFERENCES accounts(id),
            rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
            comment TEXT NOT NULL,
            reply TEXT,
            replied_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_farmer ON orders(farmer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines(order_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_offers_session ON negotiation_offers(session_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_target ON reviews(target_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

type txKey struct{}

// conn returns the transaction bound to ctx, or the pool.
func (s *Storage) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// WithinTransaction runs fn in a transaction. Repository calls made with the
// context handed to fn share it; nested calls join the outer transaction.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return s.withTx(ctx, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// atomically runs multi-statement repository work in the ambient
// transaction, or in a fresh one.
func (s *Storage) atomically(ctx context.Context, fn func(q querier) error) error {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(tx)
	}
	return s.withTx(ctx, func(tx pgx.Tx) error { return fn(tx) })
}

func (s *Storage) withTx(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	return d, nil
}

func parseNullDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := parseDecimal(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullDecimalArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
