// Package db bundles the Postgres plumbing an application built on the
// toolkit usually needs: environment-driven connection config, pool
// construction, and classification of Postgres errors into kinds a
// handler can map to response codes.
package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	volkihttp "github.com/volki-dev/volki/pkg/http"
)

// Config holds Postgres connection parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// FromEnv builds a Config from DATABASE_* environment variables,
// falling back to the given defaults for any variable that is unset.
func FromEnv(fallback Config) Config {
	cfg := Config{
		Host:     os.Getenv("DATABASE_HOST"),
		User:     os.Getenv("DATABASE_USERNAME"),
		Password: os.Getenv("DATABASE_PASSWORD"),
		Database: os.Getenv("DATABASE_DATABASE"),
	}
	if p, err := strconv.Atoi(os.Getenv("DATABASE_PORT")); err == nil {
		cfg.Port = p
	}

	if cfg.Host == "" {
		cfg.Host = fallback.Host
	}
	if cfg.Port == 0 {
		cfg.Port = fallback.Port
	}
	if cfg.User == "" {
		cfg.User = fallback.User
	}
	if cfg.Password == "" {
		cfg.Password = fallback.Password
	}
	if cfg.Database == "" {
		cfg.Database = fallback.Database
	}
	return cfg
}

// ConnString renders the config as a postgres:// URL accepted by pgx.
func (c Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Connect opens a pgx pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return pool, nil
}

// ErrorKind classifies a Postgres error for response mapping.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNoRows
	KindUniqueViolation
	KindForeignKeyViolation
	KindNotNullViolation
	KindCheckViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoRows:
		return "no rows"
	case KindUniqueViolation:
		return "unique violation"
	case KindForeignKeyViolation:
		return "foreign key violation"
	case KindNotNullViolation:
		return "not null violation"
	case KindCheckViolation:
		return "check violation"
	}
	return "other"
}

// SQLSTATE codes for the constraint classes handlers care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
)

// Classify maps err to an ErrorKind. pgx.ErrNoRows becomes KindNoRows;
// constraint violations are recognized by SQLSTATE; everything else,
// including nil, is KindOther.
func Classify(err error) ErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNoRows
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindOther
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return KindUniqueViolation
	case codeForeignKeyViolation:
		return KindForeignKeyViolation
	case codeNotNullViolation:
		return KindNotNullViolation
	case codeCheckViolation:
		return KindCheckViolation
	}
	return KindOther
}

// Status maps an ErrorKind to the response status a handler should
// return for it. KindOther is a server fault.
func (k ErrorKind) Status() volkihttp.StatusCode {
	switch k {
	case KindNoRows:
		return volkihttp.StatusNotFound
	case KindUniqueViolation:
		return volkihttp.StatusConflict
	case KindForeignKeyViolation, KindNotNullViolation, KindCheckViolation:
		return volkihttp.StatusBadRequest
	}
	return volkihttp.StatusInternalServerError
}

// ConstraintName returns the violated constraint's name when err is a
// Postgres constraint violation, else "".
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
