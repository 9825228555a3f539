/*
Package sqlite persists the single-user leave state.

PURPOSE:
  The engine itself is stateless: every calculation receives a complete
  snapshot and returns a complete result. This package owns the snapshot -
  the employee profile, per-year carry-over, usage records, ceremonial
  event records and the holiday list - in a local sqlite file.

KEY TABLES:
  profile:        hire date, work hours per day, policy config (one row)
  year_state:     carried-over days per year
  usage_records:  hour-denominated annual-leave usage
  event_records:  day-denominated ceremonial grants (working_days derived)
  holidays:       designated holiday dates

WAL MODE:
  The database is opened with WAL so readers never block the writer.

MIGRATIONS:
  Schema is versioned via golang-migrate with embedded SQL files; New()
  migrates to the latest version before returning.

CONCURRENCY:
  A sync.RWMutex serializes access. This is a single-user tool; the mutex
  exists so the HTTP layer can share one Store safely.

USAGE:
  store, err := sqlite.New("./leave.db")   // or ":memory:"
  defer store.Close()
  snap, err := store.YearSnapshot(ctx, 2024)
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/leave-engine/eventleave"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/sqlite/migrations"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the sqlite-backed snapshot store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// PROFILE
// =============================================================================

// Profile is the single employee this tool tracks.
type Profile struct {
	HireDate         string `json:"hire_date"`
	WorkHoursPerDay  int    `json:"work_hours_per_day"`
	PolicyConfigJSON string `json:"policy_config_json"`
}

// GetProfile returns the profile. found is false when none was saved yet.
func (s *Store) GetProfile(ctx context.Context) (Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT hire_date, work_hours_per_day, policy_config_json FROM profile WHERE id = 1`,
	).Scan(&p.HireDate, &p.WorkHoursPerDay, &p.PolicyConfigJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

// SaveProfile inserts or replaces the single profile row.
func (s *Store) SaveProfile(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile (id, hire_date, work_hours_per_day, policy_config_json)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   hire_date = excluded.hire_date,
		   work_hours_per_day = excluded.work_hours_per_day,
		   policy_config_json = excluded.policy_config_json`,
		p.HireDate, p.WorkHoursPerDay, p.PolicyConfigJSON)
	return err
}

// =============================================================================
// YEAR STATE - carry-over
// =============================================================================

// GetCarryDays returns the carried-over days for a year, zero if unset.
func (s *Store) GetCarryDays(ctx context.Context, year int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var days int
	err := s.db.QueryRowContext(ctx,
		`SELECT carry_days FROM year_state WHERE year = ?`, year).Scan(&days)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return days, nil
}

// SetCarryDays records the carried-over days for a year.
func (s *Store) SetCarryDays(ctx context.Context, year, days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO year_state (year, carry_days) VALUES (?, ?)
		 ON CONFLICT(year) DO UPDATE SET carry_days = excluded.carry_days`,
		year, days)
	return err
}

// =============================================================================
// USAGE RECORDS
// =============================================================================

// AddUsageRecord inserts one usage record. The caller assigns the ID.
func (s *Store) AddUsageRecord(ctx context.Context, rec leave.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_records (id, date, amount_hours, memo, tag)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Date, rec.AmountHours, rec.Memo, rec.Tag)
	return err
}

// UpdateUsageRecord edits the date and memo of an existing record. Amounts
// are never mutated; remove and re-add instead.
func (s *Store) UpdateUsageRecord(ctx context.Context, id, date, memo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE usage_records SET date = ?, memo = ? WHERE id = ?`, date, memo, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteUsageRecord removes a record by id.
func (s *Store) DeleteUsageRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM usage_records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListUsageRecords returns every usage record ordered by date.
func (s *Store) ListUsageRecords(ctx context.Context) ([]leave.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryUsage(ctx,
		`SELECT id, date, amount_hours, memo, tag FROM usage_records ORDER BY date, id`)
}

// ListUsageRecordsByYear returns the records dated inside one year.
func (s *Store) ListUsageRecordsByYear(ctx context.Context, year int) ([]leave.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryUsage(ctx,
		`SELECT id, date, amount_hours, memo, tag FROM usage_records
		 WHERE date >= ? AND date <= ? ORDER BY date, id`,
		fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
}

func (s *Store) queryUsage(ctx context.Context, query string, args ...any) ([]leave.UsageRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leave.UsageRecord
	for rows.Next() {
		var rec leave.UsageRecord
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.AmountHours, &rec.Memo, &rec.Tag); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// EVENT RECORDS
// =============================================================================

// AddEventRecord inserts one ceremonial-leave record.
func (s *Store) AddEventRecord(ctx context.Context, rec eventleave.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_records (id, date, event_type, title, calendar_days, working_days, memo)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Date, rec.EventType, rec.Title, rec.CalendarDays, rec.WorkingDays, rec.Memo)
	return err
}

// DeleteEventRecord removes an event record by id.
func (s *Store) DeleteEventRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM event_records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListEventRecords returns every event record ordered by date.
func (s *Store) ListEventRecords(ctx context.Context) ([]eventleave.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, event_type, title, calendar_days, working_days, memo
		 FROM event_records ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []eventleave.Record
	for rows.Next() {
		var rec eventleave.Record
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.EventType, &rec.Title,
			&rec.CalendarDays, &rec.WorkingDays, &rec.Memo); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdateEventWorkingDays rewrites the derived working_days of every given
// record in one transaction. Used after the holiday set changes.
func (s *Store) UpdateEventWorkingDays(ctx context.Context, records []eventleave.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE event_records SET working_days = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.WorkingDays, rec.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holiday is one designated holiday.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

// AddHoliday inserts or renames a holiday.
func (s *Store) AddHoliday(ctx context.Context, h Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays (date, name) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET name = excluded.name`,
		h.Date, h.Name)
	return err
}

// DeleteHoliday removes a holiday by date.
func (s *Store) DeleteHoliday(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE date = ?`, date)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListHolidays returns every holiday ordered by date.
func (s *Store) ListHolidays(ctx context.Context) ([]Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT date, name FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// YEAR SNAPSHOT
// =============================================================================

// Snapshot is the complete state handed to the engine for one year.
type Snapshot struct {
	Profile   Profile             `json:"profile"`
	CarryDays int                 `json:"carry_days"`
	Records   []leave.UsageRecord `json:"records"`
	Events    []eventleave.Record `json:"events"`
	Holidays  []Holiday           `json:"holidays"`
}

// YearSnapshot assembles the complete per-year state. Returns ErrNotFound
// when no profile has been saved yet.
func (s *Store) YearSnapshot(ctx context.Context, year int) (Snapshot, error) {
	profile, found, err := s.GetProfile(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if !found {
		return Snapshot{}, fmt.Errorf("profile: %w", ErrNotFound)
	}

	carry, err := s.GetCarryDays(ctx, year)
	if err != nil {
		return Snapshot{}, err
	}
	records, err := s.ListUsageRecordsByYear(ctx, year)
	if err != nil {
		return Snapshot{}, err
	}
	events, err := s.ListEventRecords(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	holidays, err := s.ListHolidays(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Profile:   profile,
		CarryDays: carry,
		Records:   records,
		Events:    events,
		Holidays:  holidays,
	}, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
