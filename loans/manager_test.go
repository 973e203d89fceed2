package loans

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(t *testing.T, dbPath string) *LoanManager {
	t.Helper()
	mgr, err := NewLoanManager(Config{DBPath: dbPath, Seed: true, Logger: quietLogger(), Clock: tickingClock()})
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestManagerInMemory(t *testing.T) {
	mgr := newManager(t, "")
	if got := len(mgr.Items()); got != 4 {
		t.Fatalf("want 4 seeded items, got %d", got)
	}
	if _, err := mgr.RegisterLoan("Laptop-001", "Ana"); err != nil {
		t.Fatalf("loan: %v", err)
	}
	msg, holder, err := mgr.ReturnItem("Laptop-001")
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if holder != "Ana" || msg == "" {
		t.Fatalf("unexpected return result %q, holder %q", msg, holder)
	}
}

func TestManagerPersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.db")

	first, err := NewLoanManager(Config{DBPath: path, Seed: true, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	if ok, err := first.AddItem(NewTablet("Tab-009", "8", "")); !ok || err != nil {
		t.Fatalf("add item: %v %v", ok, err)
	}
	if ok, err := first.AddBorrower(NewBorrower("Ana", "ana@uni.edu", RoleAdmin)); !ok || err != nil {
		t.Fatalf("add borrower: %v %v", ok, err)
	}
	if _, err := first.RegisterLoan("Tab-009", "Ana"); err != nil {
		t.Fatalf("loan: %v", err)
	}
	first.Close()

	// Seeding applies to new snapshots only.
	second := newManager(t, path)
	s := second.Statistics()
	if s.TotalItems != 5 || s.BorrowedItems != 1 || s.TotalBorrowers != 3 || s.TotalLoans != 1 {
		t.Fatalf("unexpected stats after reopen: %+v", s)
	}
	if _, err := second.RegisterLoan("Tab-009", "Someone"); !errors.Is(err, ErrAlreadyBorrowed) {
		t.Fatalf("expected already-borrowed error, got %v", err)
	}
}

func TestManagerRejectsDuplicates(t *testing.T) {
	mgr := newManager(t, "")
	if ok, _ := mgr.AddItem(NewComputer("Laptop-001", "", "")); ok {
		t.Fatalf("duplicate item accepted")
	}
	if ok, _ := mgr.AddBorrower(NewBorrower("Juan Pérez", "", "")); ok {
		t.Fatalf("duplicate borrower accepted")
	}
}

func TestManagerLogsAutoRegistration(t *testing.T) {
	var buf bytes.Buffer
	mgr, err := NewLoanManager(Config{Seed: true, Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	defer mgr.Close()

	if _, err := mgr.RegisterLoan("iPad-001", "New User"); err != nil {
		t.Fatalf("loan: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"borrower auto-registered", "newuser@email.com", "loan registered"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestManagerImportReset(t *testing.T) {
	dir := t.TempDir()
	inv := filepath.Join(dir, "inv.yaml")
	if err := os.WriteFile(inv, []byte("items:\n  - name: Only-PC\n    category: computer\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	mgr := newManager(t, filepath.Join(dir, "loans.db"))
	rep, err := mgr.Import([]string{inv}, true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if rep.ItemsAdded != 1 {
		t.Fatalf("want 1 item imported, got %d", rep.ItemsAdded)
	}
	if s := mgr.Statistics(); s.TotalItems != 1 || s.TotalBorrowers != 0 {
		t.Fatalf("reset did not clear the catalog: %+v", s)
	}

	reopened := newManager(t, filepath.Join(dir, "loans.db"))
	if got := len(reopened.Items()); got != 1 {
		t.Fatalf("want 1 stored item, got %d", got)
	}
}
