// Package file implements domain.StateStore over two JSON files in a data
// directory. It backs the console binary, which runs without a database.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"roomdesk/internal/domain"
)

const (
	catalogFile      = "rooms.json"
	reservationsFile = "reservations.json"
)

type Store struct{ dir string }

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadCatalog(ctx context.Context) ([]domain.Room, bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, catalogFile))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rooms []domain.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, false, fmt.Errorf("decode catalog: %w", err)
	}
	return rooms, true, nil
}

func (s *Store) SaveCatalog(ctx context.Context, rooms []domain.Room) error {
	return s.write(catalogFile, rooms)
}

func (s *Store) LoadReservations(ctx context.Context) (map[string]domain.Reservation, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, reservationsFile))
	if os.IsNotExist(err) {
		return map[string]domain.Reservation{}, nil
	}
	if err != nil {
		return nil, err
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
	return s.write(reservationsFile, all)
}

// write replaces the target atomically via a temp file rename, so a crash
// mid-save never leaves a truncated document behind.
func (s *Store) write(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}
