package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t testing.TB) *FlightRepository {
	t.Helper()

	repo, err := Open(context.Background(), Config{
		Driver:       DriverSQLite,
		DSN:          memoryDSN,
		QueryTimeout: 3 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.ResetSchema(context.Background()))

	return repo
}

func mustRecord(t testing.TB, dest string, departDay int, price float64, nonstop *bool) dto.FlightRecord {
	t.Helper()

	depart := time.Date(2025, 5, departDay, 0, 0, 0, 0, time.UTC)
	record, err := dto.NewFlightRecord("Atlanta", dest, depart, depart.AddDate(0, 0, 7), price, nonstop)
	require.NoError(t, err)

	return record
}

func boolPtr(v bool) *bool {
	return &v
}

func TestFlightRepository_RoundTrip(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	inputs := []dto.FlightRecord{
		mustRecord(t, "Cancun", 1, 412, boolPtr(true)),
		mustRecord(t, "Cancun", 2, 280.5, boolPtr(false)),
		mustRecord(t, "Rome", 3, 910, nil),
	}

	for _, in := range inputs {
		rows, err := repo.Insert(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	}

	got, err := repo.QueryCheapestPerDestination(ctx)
	require.NoError(t, err)

	want := []dto.FlightRecord{
		inputs[0].WithID(1),
		inputs[1].WithID(2),
		inputs[2].WithID(3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("QueryCheapestPerDestination mismatch (-want +got):\n%s", diff)
	}
}

func TestFlightRepository_CheapestPerGroup(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	for _, r := range []dto.FlightRecord{
		mustRecord(t, "Cancun", 1, 500, boolPtr(true)),
		mustRecord(t, "Cancun", 2, 450, boolPtr(true)),
		mustRecord(t, "Cancun", 3, 450, boolPtr(true)),
		mustRecord(t, "Cancun", 4, 200, boolPtr(false)),
		mustRecord(t, "Cancun", 5, 300, boolPtr(false)),
		mustRecord(t, "Denver", 1, 150, nil),
		mustRecord(t, "Denver", 2, 120, nil),
	} {
		_, err := repo.Insert(ctx, r)
		require.NoError(t, err)
	}

	got, err := repo.QueryCheapestPerDestination(ctx)
	require.NoError(t, err)

	type row struct {
		ID      int64
		Dest    string
		Price   float64
		Nonstop *bool
	}

	rows := make([]row, len(got))
	for i, r := range got {
		rows[i] = row{ID: r.ID, Dest: r.DestCity, Price: r.Price, Nonstop: r.Nonstop}
	}

	want := []row{
		{ID: 2, Dest: "Cancun", Price: 450, Nonstop: boolPtr(true)},
		{ID: 4, Dest: "Cancun", Price: 200, Nonstop: boolPtr(false)},
		{ID: 7, Dest: "Denver", Price: 120, Nonstop: nil},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("QueryCheapestPerDestination mismatch (-want +got):\n%s", diff)
	}
}

func TestFlightRepository_ResetSchema(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, mustRecord(t, "Cancun", 1, 300, nil))
	require.NoError(t, err)

	require.NoError(t, repo.ResetSchema(ctx))
	require.NoError(t, repo.ResetSchema(ctx))

	got, err := repo.QueryCheapestPerDestination(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFlightRepository_InsertFailure(t *testing.T) {
	repo, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: memoryDSN})
	require.NoError(t, err)
	defer repo.Close()

	rows, err := repo.Insert(context.Background(), mustRecord(t, "Cancun", 1, 300, nil))
	assert.ErrorIs(t, err, ErrInsertFlight)
	assert.Zero(t, rows)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mysql", DSN: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewFlightRepository(t *testing.T) {
	db, err := sql.Open(DriverSQLite, memoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = NewFlightRepository(db, "mysql", time.Second)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)

	repo, err := NewFlightRepository(db, DriverSQLite, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultQueryTimeout, repo.queryTimeout)
}

func TestNumberedPlaceholders(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO flights (a, b) VALUES ($1, $2)",
		numberedPlaceholders("INSERT INTO flights (a, b) VALUES (?, ?)"))
}
