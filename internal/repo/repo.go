package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNotFound   = errors.New("repo: not found")
	ErrUserExists = errors.New("repo: user already exists")
)

// Analysis is a stored calculation: the request and the result as JSON.
type Analysis struct {
	ID        int             `json:"id"`
	UserID    int             `json:"-"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	SaveAnalysis(ctx context.Context, a Analysis) (int, error)
	ListAnalyses(ctx context.Context, userID, limit int) ([]Analysis, error)
	GetAnalysis(ctx context.Context, userID, id int) (Analysis, error)
}

// Open connects to Postgres.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", withSSLMode(dsn))
	if err != nil {
		return nil, fmt.Errorf("repo: open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo: ping: %w", err)
	}
	return db, nil
}

// withSSLMode adds sslmode=require when the DSN sets no sslmode.
func withSSLMode(dsn string) string {
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return dsn + "&sslmode=require"
		}
		return dsn + "?sslmode=require"
	}
	return dsn + " sslmode=require"
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS analyses (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind       TEXT NOT NULL,
	input      JSONB NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analyses_user_created ON analyses (user_id, created_at DESC);
`

// Migrate creates the tables when they do not exist.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrUserExists
		}
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveAnalysis(ctx context.Context, a Analysis) (int, error) {
	var id int
	query := "INSERT INTO analyses (user_id, kind, input, result) VALUES ($1, $2, $3, $4) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.Kind, []byte(a.Input), []byte(a.Result)).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListAnalyses(ctx context.Context, userID, limit int) ([]Analysis, error) {
	query := `SELECT id, user_id, kind, input, result, created_at FROM analyses
		WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetAnalysis(ctx context.Context, userID, id int) (Analysis, error) {
	query := `SELECT id, user_id, kind, input, result, created_at FROM analyses
		WHERE user_id=$1 AND id=$2`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (Analysis, error) {
	var a Analysis
	var input, result []byte
	if err := s.Scan(&a.ID, &a.UserID, &a.Kind, &input, &result, &a.CreatedAt); err != nil {
		return Analysis{}, err
	}
	a.Input = input
	a.Result = result
	return a, nil
}
