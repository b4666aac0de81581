package vk

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store-level errors, adapted from the teacher's storage package error set.
var (
	ErrNotFound     = errors.New("vk entry not found")
	ErrConflict     = errors.New("vk hash conflict")
	ErrDBConnection = errors.New("database connection error")
)

// Config holds the Postgres connection parameters for the VK registry's
// optional persistent backing store.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
}

// DefaultConfig returns sane local-development defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "zkpcore",
		Password: "",
		Database: "zkpcore",
		SSLMode:  "disable",
		MaxConns: 10,
	}
}

// PostgresStore persists the VK registry so it survives process restarts.
// It is a peer of Registry, not a replacement: callers wire it in as the
// registry's source of truth and write through to both on Register.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool and verifies connectivity.
func NewPostgresStore(ctx context.Context, cfg *Config) (*PostgresStore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Register inserts (circuitID, version) -> vkHashHex, enforcing the same
// idempotent-or-conflict policy as Registry.Register.
func (s *PostgresStore) Register(ctx context.Context, circuitID string, version uint64, vkHashHex string) error {
	query := `
		INSERT INTO vk_registry (circuit_id, version, vk_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (circuit_id, version) DO NOTHING
	`
	tag, err := s.pool.Exec(ctx, query, circuitID, version, vkHashHex)
	if err != nil {
		return fmt.Errorf("failed to register vk entry: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	existing, err := s.Lookup(ctx, circuitID, version)
	if err != nil {
		return err
	}
	if existing != vkHashHex {
		return fmt.Errorf("%w: circuit %s version %d already has a different vk_hash", ErrConflict, circuitID, version)
	}
	return nil
}

// Overwrite unconditionally replaces the entry.
func (s *PostgresStore) Overwrite(ctx context.Context, circuitID string, version uint64, vkHashHex string) error {
	query := `
		INSERT INTO vk_registry (circuit_id, version, vk_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (circuit_id, version) DO UPDATE SET vk_hash = EXCLUDED.vk_hash
	`
	if _, err := s.pool.Exec(ctx, query, circuitID, version, vkHashHex); err != nil {
		return fmt.Errorf("failed to overwrite vk entry: %w", err)
	}
	return nil
}

// Lookup retrieves the vk_hash for (circuitID, version).
func (s *PostgresStore) Lookup(ctx context.Context, circuitID string, version uint64) (string, error) {
	query := `SELECT vk_hash FROM vk_registry WHERE circuit_id = $1 AND version = $2`

	var vkHash string
	err := s.pool.QueryRow(ctx, query, circuitID, version).Scan(&vkHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up vk entry: %w", err)
	}
	return vkHash, nil
}

// LoadAll loads the full registry contents into r, for warming an
// in-memory Registry at process start.
func (s *PostgresStore) LoadAll(ctx context.Context, r *Registry) error {
	rows, err := s.pool.Query(ctx, `SELECT circuit_id, version, vk_hash FROM vk_registry`)
	if err != nil {
		return fmt.Errorf("failed to load vk registry: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var circuitID, vkHash string
		var version uint64
		if err := rows.Scan(&circuitID, &version, &vkHash); err != nil {
			return fmt.Errorf("failed to scan vk entry: %w", err)
		}
		r.Overwrite(circuitID, version, vkHash)
	}
	return rows.Err()
}
