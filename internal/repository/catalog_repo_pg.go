package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListCountries(ctx context.Context) ([]domain.Country, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	ListAirlines(ctx context.Context) ([]domain.Airline, error)
	ListSeatClasses(ctx context.Context) ([]domain.SeatClass, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PGCatalogRepository struct {
	db querier
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return list[domain.Airport](ctx, r.db, `SELECT id, name, code, country_id FROM airports ORDER BY id`)
}

func (r *PGCatalogRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return list[domain.Country](ctx, r.db, `SELECT id, name, code FROM countries ORDER BY id`)
}

func (r *PGCatalogRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return list[domain.Route](ctx, r.db, `SELECT id, depart_airport_id, arrive_airport_id FROM routes ORDER BY id`)
}

func (r *PGCatalogRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	return list[domain.Airline](ctx, r.db, `SELECT id, name FROM airlines ORDER BY id`)
}

func (r *PGCatalogRepository) ListSeatClasses(ctx context.Context) ([]domain.SeatClass, error) {
	return list[domain.SeatClass](ctx, r.db, `SELECT id, name FROM seat_classes ORDER BY id`)
}

// list scans rows by column position into T; the SELECT lists columns in
// field order.
func list[T any](ctx context.Context, db querier, sql string) ([]T, error) {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[T])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// Migrate creates the catalog tables when they do not exist.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	return migrate(ctx, db)
}

func migrate(ctx context.Context, db querier) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS countries (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		code VARCHAR(5) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS airports (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		code VARCHAR(5) NOT NULL UNIQUE,
		country_id INTEGER NOT NULL REFERENCES countries(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id SERIAL PRIMARY KEY,
		depart_airport_id INTEGER NOT NULL REFERENCES airports(id),
		arrive_airport_id INTEGER NOT NULL REFERENCES airports(id),
		CONSTRAINT unique_route UNIQUE (depart_airport_id, arrive_airport_id)
	)`,
	`CREATE TABLE IF NOT EXISTS airlines (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seat_classes (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	)`,
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
