package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"roomdesk/internal/domain"
	filestore "roomdesk/internal/storage/file"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := filestore.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := store.LoadCatalog(ctx); err != nil || ok {
		t.Fatalf("fresh catalog: ok=%v err=%v", ok, err)
	}

	rooms := domain.DefaultCatalog()
	if err := store.SaveCatalog(ctx, rooms); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}
	got, ok, err := store.LoadCatalog(ctx)
	if err != nil || !ok || len(got) != 11 {
		t.Fatalf("LoadCatalog: len=%d ok=%v err=%v", len(got), ok, err)
	}

	res := domain.Reservation{
		ID:         "RES-file",
		GuestName:  "Linus",
		RoomNumber: 301,
		CheckIn:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Paid:       true,
	}
	if err := store.SaveReservations(ctx, map[string]domain.Reservation{res.ID: res}); err != nil {
		t.Fatalf("SaveReservations: %v", err)
	}
	back, err := store.LoadReservations(ctx)
	if err != nil {
		t.Fatalf("LoadReservations: %v", err)
	}
	got2 := back[res.ID]
	if got2.GuestName != res.GuestName || got2.RoomNumber != res.RoomNumber ||
		!got2.CheckIn.Equal(res.CheckIn) || !got2.CheckOut.Equal(res.CheckOut) || !got2.Paid {
		t.Fatalf("reservation mismatch: %+v", got2)
	}
}

func TestStore_CorruptFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	store, err := filestore.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "reservations.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	if _, err := store.LoadReservations(context.Background()); err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}
}
