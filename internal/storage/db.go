package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// Schema selects which application's tables a database holds.
type Schema string

const (
	ExpenseSchema Schema = "expenses"
	BookingSchema Schema = "booking"
)

var schemaTables = map[Schema][]string{
	ExpenseSchema: {"expenses"},
	BookingSchema: {"bookings", "events", "ticket_types", "venues"},
}

// DB wraps a bun connection to a single SQLite file.
type DB struct {
	bun *bun.DB
	log logrus.FieldLogger
}

// NewDB opens a database connection and runs the schema's migrations.
func NewDB(dsn string, schema Schema, log logrus.FieldLogger) (*DB, error) {
	if _, ok := schemaTables[schema]; !ok {
		return nil, fmt.Errorf("unknown schema %q", schema)
	}

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive and serializes
	// writers, which is what SQLite wants anyway.
	sqldb.SetMaxOpenConns(1)

	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, err
	}

	if err := migrate(sqldb, schema, log); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("migrate %s: %w", schema, err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.AddQueryHook(queryLogger{log: log})

	return &DB{bun: db, log: log}, nil
}

func migrate(sqldb *sql.DB, schema Schema, log logrus.FieldLogger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(log)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(sqldb, path.Join("migrations", string(schema)))
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.bun.Close()
}

// Reset deletes every row of the schema's tables and restarts their id sequences.
func (db *DB) Reset(ctx context.Context, schema Schema) error {
	tables, ok := schemaTables[schema]
	if !ok {
		return fmt.Errorf("unknown schema %q", schema)
	}
	return db.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range tables {
			if _, err := tx.NewDelete().TableExpr(table).Where("1 = 1").Exec(ctx); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if _, err := tx.NewDelete().TableExpr("sqlite_sequence").Where("name IN (?)", bun.In(tables)).Exec(ctx); err != nil {
			return fmt.Errorf("reset sequences: %w", err)
		}
		return nil
	})
}

// notFound translates a missing row into the entity's sentinel error.
func notFound(err error, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

func (db *DB) count(ctx context.Context, model any) (int, error) {
	return db.bun.NewSelect().Model(model).Count(ctx)
}

// queryLogger logs every statement at debug level.
type queryLogger struct {
	log logrus.FieldLogger
}

func (h queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h queryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	entry := h.log.WithFields(logrus.Fields{
		"op":       event.Operation(),
		"duration": time.Since(event.StartTime),
	})
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		entry.WithError(event.Err).Warn(event.Query)
		return
	}
	entry.Debug(event.Query)
}
