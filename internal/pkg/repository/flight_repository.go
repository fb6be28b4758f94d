package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/utils"

	// database drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	defaultQueryTimeout = 3 * time.Second
	memoryDSN           = ":memory:"
)

const insertFlightQuery = `INSERT INTO flights (from_city, to_city, from_date, to_date, nonstop, price)
VALUES (?, ?, ?, ?, ?, ?)`

const cheapestPerDestinationQuery = `SELECT id, from_city, to_city, from_date, to_date, nonstop, price
FROM (
    SELECT id, from_city, to_city, from_date, to_date, nonstop, price,
        ROW_NUMBER() OVER (PARTITION BY to_city, nonstop ORDER BY price ASC, id ASC) AS rn
    FROM flights
) ranked
WHERE rn = 1
ORDER BY to_city, id`

type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

// FlightRepository stores flight records. It has a single writer, the sweep.
type FlightRepository struct {
	db           *sql.DB
	dialect      dialect
	queryTimeout time.Duration
}

// Open connects to the configured database and pings it.
func Open(ctx context.Context, cfg Config) (*FlightRepository, error) {
	if _, err := dialectFor(cfg.Driver); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	maxOpen := cfg.MaxOpenConns
	if cfg.Driver == DriverSQLite {
		// single writer; each :memory: connection is a separate database
		maxOpen = 1
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.DSN == memoryDSN {
		db.SetConnMaxLifetime(0)
		db.SetMaxIdleConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeoutOrDefault(cfg.QueryTimeout))
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	slog.InfoContext(ctx, "database connected", slog.String("driver", cfg.Driver))

	return NewFlightRepository(db, cfg.Driver, cfg.QueryTimeout)
}

// NewFlightRepository wraps an already open database.
func NewFlightRepository(db *sql.DB, driver string, queryTimeout time.Duration) (*FlightRepository, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	return &FlightRepository{
		db:           db,
		dialect:      d,
		queryTimeout: timeoutOrDefault(queryTimeout),
	}, nil
}

func timeoutOrDefault(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultQueryTimeout
	}

	return timeout
}

// ResetSchema creates the flights table when missing and empties it, in one
// transaction. Running it twice leaves the same empty table.
func (r *FlightRepository) ResetSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return ErrResetSchema.WithCause(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, r.dialect.schema); err != nil {
		return ErrResetSchema.Withf("create table: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM flights"); err != nil {
		return ErrResetSchema.Withf("delete rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ErrResetSchema.Withf("commit: %w", err)
	}

	return nil
}

// Insert writes one record and returns the rows affected, 0 on failure.
func (r *FlightRepository) Insert(ctx context.Context, flight dto.FlightRecord) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.dialect.bind(insertFlightQuery),
		flight.OriginCity,
		flight.DestCity,
		utils.FormatISODate(flight.DepartDate),
		utils.FormatISODate(flight.ReturnDate),
		nonstopValue(flight.Nonstop),
		flight.Price,
	)
	if err != nil {
		return 0, ErrInsertFlight.WithCause(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, ErrInsertFlight.WithCause(err)
	}

	return rows, nil
}

// QueryCheapestPerDestination returns, for every destination and nonstop
// value (true, false, unknown), the cheapest record. Equal prices go to the
// lowest id.
func (r *FlightRepository) QueryCheapestPerDestination(ctx context.Context) ([]dto.FlightRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, cheapestPerDestinationQuery)
	if err != nil {
		return nil, ErrQueryFlights.WithCause(err)
	}
	defer rows.Close()

	records := make([]dto.FlightRecord, 0)

	for rows.Next() {
		record, err := scanFlight(rows)
		if err != nil {
			return nil, ErrQueryFlights.WithCause(err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQueryFlights.WithCause(err)
	}

	return records, nil
}

func (r *FlightRepository) Close() error {
	return r.db.Close()
}

func scanFlight(rows *sql.Rows) (dto.FlightRecord, error) {
	var (
		id               int64
		fromCity, toCity string
		fromDate, toDate string
		nonstop          sql.NullInt64
		price            float64
	)

	if err := rows.Scan(&id, &fromCity, &toCity, &fromDate, &toDate, &nonstop, &price); err != nil {
		return dto.FlightRecord{}, fmt.Errorf("scan flight: %w", err)
	}

	depart, err := utils.ParseISODate(fromDate)
	if err != nil {
		return dto.FlightRecord{}, fmt.Errorf("flight %d depart date: %w", id, err)
	}

	ret, err := utils.ParseISODate(toDate)
	if err != nil {
		return dto.FlightRecord{}, fmt.Errorf("flight %d return date: %w", id, err)
	}

	var flag *bool
	if nonstop.Valid {
		v := nonstop.Int64 != 0
		flag = &v
	}

	record, err := dto.NewFlightRecord(fromCity, toCity, depart, ret, price, flag)
	if err != nil {
		return dto.FlightRecord{}, fmt.Errorf("flight %d: %w", id, err)
	}

	return record.WithID(id), nil
}

func nonstopValue(nonstop *bool) sql.NullInt64 {
	if nonstop == nil {
		return sql.NullInt64{}
	}

	if *nonstop {
		return sql.NullInt64{Int64: 1, Valid: true}
	}

	return sql.NullInt64{Int64: 0, Valid: true}
}
