//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"roomdesk/internal/domain"
	mysqlstore "roomdesk/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=roomdesk",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/roomdesk?parseTime=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStore_RoundTrip(t *testing.T) {
	db := startMySQL(t)
	store := mysqlstore.New(db)
	ctx := context.Background()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	// absent catalog reports ok=false
	if _, ok, err := store.LoadCatalog(ctx); err != nil || ok {
		t.Fatalf("fresh catalog: ok=%v err=%v", ok, err)
	}

	rooms := domain.DefaultCatalog()
	if err := store.SaveCatalog(ctx, rooms); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}
	got, ok, err := store.LoadCatalog(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadCatalog: ok=%v err=%v", ok, err)
	}
	if len(got) != len(rooms) || got[0] != rooms[0] || got[10] != rooms[10] {
		t.Fatalf("catalog mismatch: %+v", got)
	}

	// absent reservations load as an empty map
	all, err := store.LoadReservations(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("fresh reservations: len=%d err=%v", len(all), err)
	}

	res := domain.Reservation{
		ID:         "RES-itest",
		GuestName:  "Grace",
		RoomNumber: 201,
		CheckIn:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Paid:       true,
	}
	if err := store.SaveReservations(ctx, map[string]domain.Reservation{res.ID: res}); err != nil {
		t.Fatalf("SaveReservations: %v", err)
	}
	back, err := store.LoadReservations(ctx)
	if err != nil {
		t.Fatalf("LoadReservations: %v", err)
	}
	got2, ok := back[res.ID]
	if !ok || got2.GuestName != res.GuestName || got2.RoomNumber != res.RoomNumber ||
		!got2.CheckIn.Equal(res.CheckIn) || !got2.CheckOut.Equal(res.CheckOut) || !got2.Paid {
		t.Fatalf("reservation mismatch: %+v", got2)
	}

	// second save overwrites the document
	if err := store.SaveReservations(ctx, map[string]domain.Reservation{}); err != nil {
		t.Fatalf("SaveReservations empty: %v", err)
	}
	back, err = store.LoadReservations(ctx)
	if err != nil || len(back) != 0 {
		t.Fatalf("expected empty store, got len=%d err=%v", len(back), err)
	}
}

func TestStore_CorruptReservationsSurfacesError(t *testing.T) {
	db := startMySQL(t)
	store := mysqlstore.New(db)
	ctx := context.Background()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO state_blobs (k, v) VALUES ('reservations', 'not-json')"); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	if _, err := store.LoadReservations(ctx); err == nil {
		t.Fatalf("expected decode error for corrupt blob")
	}
}
