package loans

import (
	"fmt"
	"strings"
	"time"
)

// DefaultContactDomain is appended to synthesized contacts of auto-registered borrowers.
const DefaultContactDomain = "email.com"

// Catalog is the in-memory registry of items and borrowers. Both registries are
// keyed by name and keep registration order. A Catalog is not safe for
// concurrent use.
type Catalog struct {
	items     map[string]*Item
	itemOrder []string

	borrowers     map[string]*Borrower
	borrowerOrder []string

	contactDomain string
	now           func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock sets the time source used to stamp loans.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithContactDomain sets the domain used for auto-registered borrowers.
func WithContactDomain(domain string) Option {
	return func(c *Catalog) {
		if domain = strings.TrimPrefix(strings.TrimSpace(domain), "@"); domain != "" {
			c.contactDomain = domain
		}
	}
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		items:         make(map[string]*Item),
		borrowers:     make(map[string]*Borrower),
		contactDomain: DefaultContactDomain,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddItem registers it. It returns false if an item with the same name exists.
func (c *Catalog) AddItem(it *Item) bool {
	if _, exists := c.items[it.Name()]; exists {
		return false
	}
	c.items[it.Name()] = it
	c.itemOrder = append(c.itemOrder, it.Name())
	return true
}

// AddBorrower registers b. It returns false if a borrower with the same name exists.
func (c *Catalog) AddBorrower(b *Borrower) bool {
	if _, exists := c.borrowers[b.Name()]; exists {
		return false
	}
	c.borrowers[b.Name()] = b
	c.borrowerOrder = append(c.borrowerOrder, b.Name())
	return true
}

func (c *Catalog) Item(name string) (*Item, bool) {
	it, ok := c.items[name]
	return it, ok
}

func (c *Catalog) Borrower(name string) (*Borrower, bool) {
	b, ok := c.borrowers[name]
	return b, ok
}

// ContactFor synthesizes the contact given to an auto-registered borrower.
func (c *Catalog) ContactFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@" + c.contactDomain
}

// RegisterLoan lends itemName to borrowerName. Unknown borrowers are registered
// on the fly. On success the returned message confirms the loan.
func (c *Catalog) RegisterLoan(itemName, borrowerName string) (string, error) {
	it, ok := c.items[itemName]
	if !ok {
		return "", fmt.Errorf("%w: %q does not exist in the catalog", ErrItemNotFound, itemName)
	}
	if !it.Available() {
		return "", fmt.Errorf("%w: %q is already on loan", ErrAlreadyBorrowed, itemName)
	}

	b, ok := c.borrowers[borrowerName]
	if !ok {
		b = NewBorrower(borrowerName, c.ContactFor(borrowerName), RoleStudent)
		c.AddBorrower(b)
	}

	if !it.borrowAt(borrowerName, c.now()) {
		return "", ErrLoanFailed
	}
	b.AddHeldItem(itemName)
	return fmt.Sprintf("loan registered: %s lent to %s", itemName, borrowerName), nil
}

// ReturnItem brings itemName back. The holder is the first borrower, in
// registration order, listing the item as held; if nobody does, only the
// item's flag changes.
func (c *Catalog) ReturnItem(itemName string) (string, error) {
	it, ok := c.items[itemName]
	if !ok {
		return "", fmt.Errorf("%w: %q does not exist in the catalog", ErrItemNotFound, itemName)
	}
	if it.Available() {
		return "", fmt.Errorf("%w: %q is not on loan", ErrAlreadyAvailable, itemName)
	}

	holder := c.HolderOf(itemName)
	if !it.Return() {
		return "", ErrReturnFailed
	}
	if holder != nil {
		holder.RemoveHeldItem(itemName)
	}
	return fmt.Sprintf("item %s returned", itemName), nil
}

// HolderOf scans borrowers in registration order and returns the first one
// holding itemName, or nil.
func (c *Catalog) HolderOf(itemName string) *Borrower {
	for _, name := range c.borrowerOrder {
		if b := c.borrowers[name]; b.Holds(itemName) {
			return b
		}
	}
	return nil
}

// Items lists every item in registration order.
func (c *Catalog) Items() []*Item {
	return c.filterItems(func(*Item) bool { return true })
}

// AvailableItems lists items that can be borrowed now.
func (c *Catalog) AvailableItems() []*Item {
	return c.filterItems((*Item).Available)
}

// LentItems lists items currently on loan.
func (c *Catalog) LentItems() []*Item {
	return c.filterItems(func(it *Item) bool { return !it.Available() })
}

func (c *Catalog) filterItems(keep func(*Item) bool) []*Item {
	out := make([]*Item, 0, len(c.itemOrder))
	for _, name := range c.itemOrder {
		if it := c.items[name]; keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Borrowers lists every borrower in registration order.
func (c *Catalog) Borrowers() []*Borrower {
	out := make([]*Borrower, 0, len(c.borrowerOrder))
	for _, name := range c.borrowerOrder {
		out = append(out, c.borrowers[name])
	}
	return out
}

// HistoryForItem returns a copy of the named item's loan history.
func (c *Catalog) HistoryForItem(name string) ([]Loan, error) {
	it, ok := c.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q does not exist in the catalog", ErrItemNotFound, name)
	}
	return it.History(), nil
}

// FullHistory returns every item's history in registration order.
func (c *Catalog) FullHistory() []ItemHistory {
	out := make([]ItemHistory, 0, len(c.itemOrder))
	for _, name := range c.itemOrder {
		it := c.items[name]
		out = append(out, ItemHistory{Item: it, Loans: it.History()})
	}
	return out
}

func (c *Catalog) Statistics() Stats {
	var s Stats
	s.TotalItems = len(c.items)
	for _, it := range c.items {
		if it.Available() {
			s.AvailableItems++
		}
		s.TotalLoans += it.HistoryLen()
	}
	s.BorrowedItems = s.TotalItems - s.AvailableItems
	s.TotalBorrowers = len(c.borrowers)
	return s
}

// SeedDemo loads the demo inventory the console starts with.
func SeedDemo(c *Catalog) {
	c.AddItem(NewComputer("Laptop-001", "Windows 11", "16GB"))
	c.AddItem(NewComputer("Laptop-002", "macOS", "8GB"))
	c.AddItem(NewTablet("iPad-001", "12", "10000mAh"))
	c.AddItem(NewTablet("Samsung-Tab-001", "11", "8000mAh"))

	c.AddBorrower(NewBorrower("Juan Pérez", "juan@email.com", RoleStudent))
	c.AddBorrower(NewBorrower("María García", "maria@email.com", RoleProfessor))
}
