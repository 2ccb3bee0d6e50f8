package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/the-moog/trac-ticketreminder/internal/constants"
	"github.com/the-moog/trac-ticketreminder/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func embeddedSQLite(t *testing.T) fs.FS {
	t.Helper()
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to access embedded migrations: %v", err)
	}
	return subFS
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	row := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", name)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("failed to check table %s: %v", name, err)
	}
	return count > 0
}

func TestFreshDatabaseNeedsUpgrade(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, embeddedSQLite(t), DriverSQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version = %d, want 0", version)
	}

	needed, err := runner.NeedsUpgrade()
	if err != nil {
		t.Fatalf("NeedsUpgrade() failed: %v", err)
	}
	if !needed {
		t.Error("NeedsUpgrade() = false for a fresh database, want true")
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, embeddedSQLite(t), DriverSQLite)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("applied %d migrations, want 1", count)
	}

	for _, table := range []string{"system", "ticketreminder", "permission"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s missing after upgrade", table)
		}
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}
	if version != constants.SchemaVersion {
		t.Errorf("version after upgrade = %d, want %d", version, constants.SchemaVersion)
	}
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, embeddedSQLite(t), DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("first upgrade failed: %v", err)
	}
	firstVersion, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second upgrade failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second upgrade applied %d migrations, want 0", count)
	}

	secondVersion, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}
	if secondVersion != firstVersion {
		t.Errorf("version changed on re-run: %d -> %d", firstVersion, secondVersion)
	}

	needed, err := runner.NeedsUpgrade()
	if err != nil {
		t.Fatalf("NeedsUpgrade() failed: %v", err)
	}
	if needed {
		t.Error("NeedsUpgrade() = true after upgrade, want false")
	}
}

func TestFailedMigrationLeavesVersionUntouched(t *testing.T) {
	db := openTestDB(t)
	broken := fstest.MapFS{
		"001_broken.sql": {Data: []byte("CREATE TABLE valid (id INTEGER); CREATE BOGUS SYNTAX;")},
	}
	runner := NewRunner(db, broken, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations() succeeded on broken SQL, want error")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}
	if version != 0 {
		t.Errorf("version after failed migration = %d, want 0", version)
	}
}

func TestMigrationsAppliedInOrder(t *testing.T) {
	db := openTestDB(t)
	stepped := fstest.MapFS{
		"002_second.sql": {Data: []byte("ALTER TABLE staged ADD COLUMN extra TEXT")},
		"001_first.sql":  {Data: []byte("CREATE TABLE staged (id INTEGER PRIMARY KEY)")},
	}
	runner := NewRunner(db, stepped, DriverSQLite)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("applied %d migrations, want 2", count)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
}

func TestPartiallyPendingMigrations(t *testing.T) {
	db := openTestDB(t)
	first := fstest.MapFS{
		"001_first.sql": {Data: []byte("CREATE TABLE staged (id INTEGER PRIMARY KEY)")},
	}
	if _, err := NewRunner(db, first, DriverSQLite).ApplyMigrations(nil); err != nil {
		t.Fatalf("initial migration failed: %v", err)
	}

	both := fstest.MapFS{
		"001_first.sql":  first["001_first.sql"],
		"002_second.sql": {Data: []byte("ALTER TABLE staged ADD COLUMN extra TEXT")},
	}
	count, err := NewRunner(db, both, DriverSQLite).ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("incremental migration failed: %v", err)
	}
	if count != 1 {
		t.Errorf("applied %d migrations, want only the pending one", count)
	}
}

func TestDuplicateVersionsRejected(t *testing.T) {
	db := openTestDB(t)
	dup := fstest.MapFS{
		"001_first.sql": {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"001_again.sql": {Data: []byte("CREATE TABLE b (id INTEGER)")},
	}
	runner := NewRunner(db, dup, DriverSQLite)

	_, err := runner.ApplyMigrations(nil)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Errorf("ApplyMigrations() error = %v, want duplicate version rejection", err)
	}
}

func TestNewerDatabaseRejected(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, embeddedSQLite(t), DriverSQLite)

	if err := runner.EnsureSystemTable(); err != nil {
		t.Fatalf("EnsureSystemTable() failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO system (name, value) VALUES (?, ?)", constants.SchemaName, "99"); err != nil {
		t.Fatalf("failed to seed version record: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion() accepted a database newer than supported")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations() accepted a database newer than supported")
	}
}
