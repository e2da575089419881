// Package storage provides SQLite-based persistence for device settings,
// roll statistics and roll history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/catan-dice/internal/dice"
)

// Setting keys, matching the handheld's preferences namespace.
const (
	keyDiceMode    = "dicemode"
	keyGameVariant = "gamevariant"
	keyPowerSave   = "powersave"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
// It is safe for concurrent use by multiple device sessions.
type Store struct {
	db *sql.DB
}

// RollRecord is one committed roll in the history log.
type RollRecord struct {
	ID        int64
	DeviceID  string
	SessionID string
	Variant   dice.GameVariant
	Mode      dice.ProbabilityMode
	White     int
	Red       int
	Event     int // 0 when the variant has no event die
	CreatedAt time.Time
}

// Sum returns the primary pair total.
func (r RollRecord) Sum() int {
	return r.White + r.Red
}

// RollSummary aggregates the roll history of one device.
type RollSummary struct {
	DeviceID   string
	Rolls      int
	AvgSum     float64
	LastRolled time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite serialises writers; one connection avoids "database is locked"
	// when several SSH sessions roll at once.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			device_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (device_id, key)
		);

		CREATE TABLE IF NOT EXISTS statistics (
			device_id TEXT NOT NULL,
			sum INTEGER NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (device_id, sum)
		);

		CREATE TABLE IF NOT EXISTS rolls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			variant INTEGER NOT NULL,
			mode INTEGER NOT NULL,
			white INTEGER NOT NULL,
			red INTEGER NOT NULL,
			event INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rolls_device ON rolls(device_id, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadSettings returns the persisted settings for a device.
// found is false when nothing has been saved yet. Corrupted values are
// normalized to their defaults rather than reported.
func (s *Store) LoadSettings(deviceID string) (settings dice.Settings, found bool, err error) {
	rows, err := s.db.Query("SELECT key, value FROM settings WHERE device_id = ?", deviceID)
	if err != nil {
		return dice.Settings{}, false, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	settings = dice.DefaultSettings()
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return dice.Settings{}, false, fmt.Errorf("storage: cannot scan setting: %w", err)
		}
		found = true

		switch key {
		case keyDiceMode:
			settings.Mode = dice.ProbabilityMode(value)
		case keyGameVariant:
			settings.Variant = dice.GameVariant(value)
		case keyPowerSave:
			settings.PowerSave = dice.PowerSaveMode(value)
		}
	}
	if err := rows.Err(); err != nil {
		return dice.Settings{}, false, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return settings.Normalize(), found, nil
}

// SaveSettings persists the settings for a device.
func (s *Store) SaveSettings(deviceID string, settings dice.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	values := []struct {
		key   string
		value int
	}{
		{keyDiceMode, int(settings.Mode)},
		{keyGameVariant, int(settings.Variant)},
		{keyPowerSave, int(settings.PowerSave)},
	}
	for _, v := range values {
		_, err := tx.Exec(
			`INSERT INTO settings (device_id, key, value) VALUES (?, ?, ?)
			 ON CONFLICT(device_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			deviceID, v.key, v.value,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save setting %s: %w", v.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit settings: %w", err)
	}
	return nil
}

// LoadStatistics returns the persisted histogram buckets for a device,
// ordered by sum. Devices with no saved statistics return no buckets.
func (s *Store) LoadStatistics(deviceID string) ([]dice.Bucket, error) {
	rows, err := s.db.Query(
		"SELECT sum, count FROM statistics WHERE device_id = ? ORDER BY sum",
		deviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query statistics: %w", err)
	}
	defer rows.Close()

	var buckets []dice.Bucket
	for rows.Next() {
		var b dice.Bucket
		if err := rows.Scan(&b.Sum, &b.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return buckets, nil
}

// IncrementStatistic adds one committed roll with the given sum to the
// persisted histogram. Concurrent sessions of one device each add their own
// rolls without overwriting the others.
func (s *Store) IncrementStatistic(deviceID string, sum int) error {
	if sum < dice.MinSum || sum > dice.MaxSum {
		return fmt.Errorf("storage: cannot increment sum %d: %w", sum, dice.ErrSumOutOfRange)
	}
	_, err := s.db.Exec(`
		INSERT INTO statistics (device_id, sum, count) VALUES (?, ?, 1)
		ON CONFLICT(device_id, sum) DO UPDATE SET count = count + 1`,
		deviceID, sum,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot increment statistic: %w", err)
	}
	return nil
}

// SaveStatistics replaces the persisted histogram for a device. Used for
// resets; committed rolls go through IncrementStatistic.
func (s *Store) SaveStatistics(deviceID string, buckets []dice.Bucket) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM statistics WHERE device_id = ?", deviceID); err != nil {
		return fmt.Errorf("storage: cannot clear statistics: %w", err)
	}
	for _, b := range buckets {
		if b.Count == 0 {
			continue
		}
		_, err := tx.Exec(
			"INSERT INTO statistics (device_id, sum, count) VALUES (?, ?, ?)",
			deviceID, b.Sum, b.Count,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save bucket %d: %w", b.Sum, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit statistics: %w", err)
	}
	return nil
}

// AppendRoll records a committed roll in the history log.
// Returns the ID of the inserted record.
func (s *Store) AppendRoll(r RollRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rolls (device_id, session_id, variant, mode, white, red, event)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.DeviceID, r.SessionID, int(r.Variant), int(r.Mode), r.White, r.Red, r.Event,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save roll: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRolls returns the latest rolls for a device, newest first.
func (s *Store) RecentRolls(deviceID string, limit int) ([]RollRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, device_id, session_id, variant, mode, white, red, event, created_at
		 FROM rolls
		 WHERE device_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		deviceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rolls: %w", err)
	}
	defer rows.Close()

	var records []RollRecord
	for rows.Next() {
		var r RollRecord
		var variant, mode int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.DeviceID, &r.SessionID, &variant, &mode, &r.White, &r.Red, &r.Event, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Variant = dice.GameVariant(variant)
		r.Mode = dice.ProbabilityMode(mode)
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearRolls deletes the roll history for a device.
func (s *Store) ClearRolls(deviceID string) error {
	if _, err := s.db.Exec("DELETE FROM rolls WHERE device_id = ?", deviceID); err != nil {
		return fmt.Errorf("storage: cannot clear rolls: %w", err)
	}
	return nil
}

// RollSummaries aggregates the roll history of every device that has rolled.
func (s *Store) RollSummaries() (map[string]*RollSummary, error) {
	rows, err := s.db.Query(
		`SELECT device_id, COUNT(*), AVG(white + red), MAX(created_at)
		 FROM rolls
		 GROUP BY device_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarise rolls: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]*RollSummary)
	for rows.Next() {
		var sum RollSummary
		var lastRolled any
		if err := rows.Scan(&sum.DeviceID, &sum.Rolls, &sum.AvgSum, &lastRolled); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		sum.LastRolled = parseTimestamp(lastRolled)
		summaries[sum.DeviceID] = &sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
