package loans

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Database persists catalog snapshots in SQLite so a session can pick up where
// the previous one stopped.
type Database struct {
	db *sqlx.DB

	insertItemStmt     *sqlx.Stmt
	insertBorrowerStmt *sqlx.Stmt
	insertHeldStmt     *sqlx.Stmt
	insertLoanStmt     *sqlx.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	for _, stmt := range []*sqlx.Stmt{d.insertItemStmt, d.insertBorrowerStmt, d.insertHeldStmt, d.insertLoanStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sqlx.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
            name TEXT PRIMARY KEY,
            category INTEGER NOT NULL,
            os TEXT NOT NULL DEFAULT '',
            memory TEXT NOT NULL DEFAULT '',
            screen_size TEXT NOT NULL DEFAULT '',
            battery TEXT NOT NULL DEFAULT '',
            available BOOLEAN NOT NULL DEFAULT 1
        );`,
		`CREATE TABLE IF NOT EXISTS borrowers (
            name TEXT PRIMARY KEY,
            contact TEXT NOT NULL,
            role TEXT NOT NULL
        );`,
		// Item names are a weak reference: no foreign key on item_name.
		`CREATE TABLE IF NOT EXISTS held_items (
            borrower_name TEXT NOT NULL REFERENCES borrowers(name) ON DELETE CASCADE,
            item_name TEXT NOT NULL,
            PRIMARY KEY (borrower_name, item_name)
        );`,
		`CREATE TABLE IF NOT EXISTS loans (
            id TEXT PRIMARY KEY,
            item_name TEXT NOT NULL REFERENCES items(name) ON DELETE CASCADE,
            borrower TEXT NOT NULL,
            borrowed_at INTEGER NOT NULL
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.insertItemStmt, err = d.db.Preparex(`INSERT INTO items(name,category,os,memory,screen_size,battery,available) VALUES(?,?,?,?,?,?,?)`); err != nil {
		return err
	}
	if d.insertBorrowerStmt, err = d.db.Preparex(`INSERT INTO borrowers(name,contact,role) VALUES(?,?,?)`); err != nil {
		return err
	}
	if d.insertHeldStmt, err = d.db.Preparex(`INSERT INTO held_items(borrower_name,item_name) VALUES(?,?)`); err != nil {
		return err
	}
	if d.insertLoanStmt, err = d.db.Preparex(`INSERT INTO loans(id,item_name,borrower,borrowed_at) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

type itemRow struct {
	Name       string   `db:"name"`
	Category   Category `db:"category"`
	OS         string   `db:"os"`
	Memory     string   `db:"memory"`
	ScreenSize string   `db:"screen_size"`
	Battery    string   `db:"battery"`
	Available  bool     `db:"available"`
}

type borrowerRow struct {
	Name    string `db:"name"`
	Contact string `db:"contact"`
	Role    Role   `db:"role"`
}

type heldRow struct {
	BorrowerName string `db:"borrower_name"`
	ItemName     string `db:"item_name"`
}

type loanRow struct {
	ID         string `db:"id"`
	ItemName   string `db:"item_name"`
	Borrower   string `db:"borrower"`
	BorrowedAt int64  `db:"borrowed_at"`
}

// Save replaces the stored snapshot with the state of c in one transaction.
func (d *Database) Save(c *Catalog) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"held_items", "loans", "items", "borrowers"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, it := range c.Items() {
		if _, err := tx.Stmtx(d.insertItemStmt).Exec(it.name, it.category,
			it.computer.OS, it.computer.Memory, it.tablet.ScreenSize, it.tablet.Battery, it.available); err != nil {
			return fmt.Errorf("save item %q: %w", it.name, err)
		}
		for _, l := range it.history {
			if _, err := tx.Stmtx(d.insertLoanStmt).Exec(l.ID.String(), it.name, l.Borrower, l.At.UnixNano()); err != nil {
				return fmt.Errorf("save loan %s: %w", l.ID, err)
			}
		}
	}

	for _, b := range c.Borrowers() {
		if _, err := tx.Stmtx(d.insertBorrowerStmt).Exec(b.name, b.contact, b.role); err != nil {
			return fmt.Errorf("save borrower %q: %w", b.name, err)
		}
		for _, name := range b.held {
			if _, err := tx.Stmtx(d.insertHeldStmt).Exec(b.name, name); err != nil {
				return fmt.Errorf("save held item %q: %w", name, err)
			}
		}
	}

	return tx.Commit()
}

// Load rebuilds a catalog from the stored snapshot. Registration and history
// order, availability flags, and held sets come back exactly as saved.
func (d *Database) Load(opts ...Option) (*Catalog, error) {
	var items []itemRow
	if err := d.db.Select(&items, `SELECT name,category,os,memory,screen_size,battery,available FROM items ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	var loans []loanRow
	if err := d.db.Select(&loans, `SELECT id,item_name,borrower,borrowed_at FROM loans ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	var borrowers []borrowerRow
	if err := d.db.Select(&borrowers, `SELECT name,contact,role FROM borrowers ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("load borrowers: %w", err)
	}
	var held []heldRow
	if err := d.db.Select(&held, `SELECT borrower_name,item_name FROM held_items ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("load held items: %w", err)
	}

	c := NewCatalog(opts...)
	for _, r := range items {
		it := &Item{name: r.Name, category: r.Category, available: r.Available}
		switch r.Category {
		case CategoryComputer:
			it.computer = ComputerSpec{OS: r.OS, Memory: r.Memory}
		case CategoryTablet:
			it.tablet = TabletSpec{ScreenSize: r.ScreenSize, Battery: r.Battery}
		default:
			return nil, fmt.Errorf("load item %q: unknown category %d", r.Name, r.Category)
		}
		c.AddItem(it)
	}
	for _, r := range loans {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("load loan %q: %w", r.ID, err)
		}
		it, ok := c.items[r.ItemName]
		if !ok {
			continue
		}
		it.history = append(it.history, Loan{ID: id, Borrower: r.Borrower, At: time.Unix(0, r.BorrowedAt)})
	}
	for _, r := range borrowers {
		c.AddBorrower(NewBorrower(r.Name, r.Contact, r.Role))
	}
	for _, r := range held {
		if b, ok := c.borrowers[r.BorrowerName]; ok {
			b.AddHeldItem(r.ItemName)
		}
	}
	return c, nil
}

// Empty reports whether no snapshot has been saved yet.
func (d *Database) Empty() (bool, error) {
	var n int
	if err := d.db.Get(&n, `SELECT (SELECT COUNT(*) FROM items) + (SELECT COUNT(*) FROM borrowers)`); err != nil {
		return false, err
	}
	return n == 0, nil
}
