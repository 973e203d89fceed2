package loans

import (
	"fmt"
	"log/slog"
	"time"
)

// Config configures a LoanManager.
type Config struct {
	// DBPath, when set, keeps a snapshot of the catalog in SQLite. Empty means
	// the catalog lives only as long as the process.
	DBPath        string
	ContactDomain string
	// Seed loads the demo inventory into a fresh catalog.
	Seed   bool
	Logger *slog.Logger
	Clock  func() time.Time
}

// LoanManager is a thin façade over the Catalog, keeping CLI code simple. It
// logs every change and saves a snapshot after it when a database is open.
type LoanManager struct {
	catalog *Catalog
	db      *Database
	logger  *slog.Logger
	opts    []Option
}

// NewLoanManager builds the catalog, loading the stored snapshot if there is one.
func NewLoanManager(cfg Config) (*LoanManager, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lm := &LoanManager{
		logger: logger,
		opts:   []Option{WithContactDomain(cfg.ContactDomain), WithClock(cfg.Clock)},
	}

	if cfg.DBPath == "" {
		lm.catalog = lm.freshCatalog(cfg.Seed)
		return lm, nil
	}

	db, err := NewDatabase(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	lm.db = db

	empty, err := db.Empty()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("inspect snapshot: %w", err)
	}
	if empty {
		lm.catalog = lm.freshCatalog(cfg.Seed)
		if err := lm.persist(); err != nil {
			db.Close()
			return nil, err
		}
		return lm, nil
	}

	if lm.catalog, err = db.Load(lm.opts...); err != nil {
		db.Close()
		return nil, err
	}
	s := lm.catalog.Statistics()
	logger.Debug("snapshot loaded", "path", cfg.DBPath, "items", s.TotalItems, "borrowers", s.TotalBorrowers)
	return lm, nil
}

func (lm *LoanManager) freshCatalog(seed bool) *Catalog {
	c := NewCatalog(lm.opts...)
	if seed {
		SeedDemo(c)
		lm.logger.Debug("demo inventory loaded")
	}
	return c
}

// Close closes the underlying database, if any.
func (lm *LoanManager) Close() error {
	if lm.db == nil {
		return nil
	}
	return lm.db.Close()
}

func (lm *LoanManager) persist() error {
	if lm.db == nil {
		return nil
	}
	if err := lm.db.Save(lm.catalog); err != nil {
		lm.logger.Error("snapshot save failed", "error", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// ------------------ Registration ------------------

// AddItem registers it. The error only reports a failed snapshot save.
func (lm *LoanManager) AddItem(it *Item) (bool, error) {
	if !lm.catalog.AddItem(it) {
		lm.logger.Debug("item rejected: duplicate name", "item", it.Name())
		return false, nil
	}
	lm.logger.Info("item added", "item", it.Name(), "category", it.Category().String())
	return true, lm.persist()
}

// AddBorrower registers b. The error only reports a failed snapshot save.
func (lm *LoanManager) AddBorrower(b *Borrower) (bool, error) {
	if !lm.catalog.AddBorrower(b) {
		lm.logger.Debug("borrower rejected: duplicate name", "borrower", b.Name())
		return false, nil
	}
	lm.logger.Info("borrower added", "borrower", b.Name(), "role", string(b.Role()))
	return true, lm.persist()
}

// ContactFor is the contact an unknown borrower named name would receive.
func (lm *LoanManager) ContactFor(name string) string { return lm.catalog.ContactFor(name) }

// ------------------ Circulation ------------------

func (lm *LoanManager) RegisterLoan(itemName, borrowerName string) (string, error) {
	_, known := lm.catalog.Borrower(borrowerName)
	msg, err := lm.catalog.RegisterLoan(itemName, borrowerName)
	if err != nil {
		lm.logger.Info("loan rejected", "item", itemName, "borrower", borrowerName, "reason", err)
		return "", err
	}
	if !known {
		b, _ := lm.catalog.Borrower(borrowerName)
		lm.logger.Info("borrower auto-registered", "borrower", borrowerName, "contact", b.Contact())
	}
	lm.logger.Info("loan registered", "item", itemName, "borrower", borrowerName)
	return msg, lm.persist()
}

// ReturnItem brings the item back and yields the name of the borrower who had
// it, or "" when no borrower listed it.
func (lm *LoanManager) ReturnItem(itemName string) (msg, holder string, err error) {
	if b := lm.catalog.HolderOf(itemName); b != nil {
		holder = b.Name()
	}
	msg, err = lm.catalog.ReturnItem(itemName)
	if err != nil {
		lm.logger.Info("return rejected", "item", itemName, "reason", err)
		return "", "", err
	}
	lm.logger.Info("item returned", "item", itemName, "holder", holder)
	return msg, holder, lm.persist()
}

// ------------------ Queries ------------------

func (lm *LoanManager) Items() []*Item                          { return lm.catalog.Items() }
func (lm *LoanManager) AvailableItems() []*Item                 { return lm.catalog.AvailableItems() }
func (lm *LoanManager) LentItems() []*Item                      { return lm.catalog.LentItems() }
func (lm *LoanManager) Borrowers() []*Borrower                  { return lm.catalog.Borrowers() }
func (lm *LoanManager) HistoryForItem(n string) ([]Loan, error) { return lm.catalog.HistoryForItem(n) }
func (lm *LoanManager) FullHistory() []ItemHistory              { return lm.catalog.FullHistory() }
func (lm *LoanManager) Statistics() Stats                       { return lm.catalog.Statistics() }

// ------------------ Import ------------------

// Import loads inventory files matching patterns. With reset the current
// catalog is discarded first, leaving only what the files describe.
func (lm *LoanManager) Import(patterns []string, reset bool) (ImportReport, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return ImportReport{}, err
	}
	target := lm.catalog
	if reset {
		target = NewCatalog(lm.opts...)
	}
	rep, err := ImportFiles(target, files)
	if err != nil {
		return rep, err
	}
	if reset {
		lm.catalog = target
		lm.logger.Info("catalog reset before import")
	}
	lm.logger.Info("inventory imported", "files", len(files), "items", rep.ItemsAdded,
		"borrowers", rep.BorrowersAdded, "skipped", len(rep.Skipped))
	if rep.ItemsAdded == 0 && rep.BorrowersAdded == 0 && !reset {
		return rep, nil
	}
	return rep, lm.persist()
}
