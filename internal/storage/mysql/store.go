package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"roomdesk/internal/domain"
)

const (
	catalogKey      = "catalog"
	reservationsKey = "reservations"
)

// Store implements domain.StateStore over MySQL.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the state table if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createStateTableSQL)
	return err
}

func (s *Store) LoadCatalog(ctx context.Context) ([]domain.Room, bool, error) {
	raw, ok, err := s.get(ctx, catalogKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var rooms []domain.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, false, fmt.Errorf("decode catalog: %w", err)
	}
	return rooms, true, nil
}

func (s *Store) SaveCatalog(ctx context.Context, rooms []domain.Room) error {
	return s.put(ctx, catalogKey, rooms)
}

func (s *Store) LoadReservations(ctx context.Context) (map[string]domain.Reservation, error) {
	raw, ok, err := s.get(ctx, reservationsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]domain.Reservation{}, nil
	}
	var all map[string]domain.Reservation
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	if all == nil {
		all = map[string]domain.Reservation{}
	}
	return all, nil
}

func (s *Store) SaveReservations(ctx context.Context, all map[string]domain.Reservation) error {
	return s.put(ctx, reservationsKey, all)
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, getStateSQL, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, upsertStateSQL, key, b)
	return err
}
