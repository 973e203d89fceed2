package loans

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Item is a loanable unit of equipment. The availability flag is the source of
// truth for whether the item is out; history only records past loans.
type Item struct {
	name      string
	category  Category
	computer  ComputerSpec
	tablet    TabletSpec
	available bool
	history   []Loan
}

// NewComputer builds a computer item. Empty attributes take the defaults.
func NewComputer(name, os, memory string) *Item {
	if os == "" {
		os = DefaultOS
	}
	if memory == "" {
		memory = DefaultMemory
	}
	return &Item{
		name:      name,
		category:  CategoryComputer,
		computer:  ComputerSpec{OS: os, Memory: memory},
		available: true,
	}
}

// NewTablet builds a tablet item. Empty attributes take the defaults.
func NewTablet(name, screenSize, battery string) *Item {
	if screenSize == "" {
		screenSize = DefaultScreenSize
	}
	if battery == "" {
		battery = DefaultBattery
	}
	return &Item{
		name:      name,
		category:  CategoryTablet,
		tablet:    TabletSpec{ScreenSize: screenSize, Battery: battery},
		available: true,
	}
}

func (it *Item) Name() string       { return it.name }
func (it *Item) Category() Category { return it.category }
func (it *Item) Available() bool    { return it.available }
func (it *Item) HistoryLen() int    { return len(it.history) }

// Computer returns the computer attributes; ok is false for other categories.
func (it *Item) Computer() (spec ComputerSpec, ok bool) {
	return it.computer, it.category == CategoryComputer
}

// Tablet returns the tablet attributes; ok is false for other categories.
func (it *Item) Tablet() (spec TabletSpec, ok bool) {
	return it.tablet, it.category == CategoryTablet
}

// Borrow lends the item to borrower, stamped with the current time.
func (it *Item) Borrow(borrower string) bool {
	return it.borrowAt(borrower, time.Now())
}

func (it *Item) borrowAt(borrower string, at time.Time) bool {
	if !it.available {
		return false
	}
	it.history = append(it.history, Loan{ID: uuid.New(), Borrower: borrower, At: at})
	it.available = false
	return true
}

// Return makes a lent item available again. History is left untouched.
func (it *Item) Return() bool {
	if it.available {
		return false
	}
	it.available = true
	return true
}

// History returns a copy of the loan history, oldest first.
func (it *Item) History() []Loan {
	out := make([]Loan, len(it.history))
	copy(out, it.history)
	return out
}

// Details renders the category-specific attributes.
func (it *Item) Details() string {
	switch it.category {
	case CategoryComputer:
		return fmt.Sprintf("%s, %s", it.computer.OS, it.computer.Memory)
	case CategoryTablet:
		return fmt.Sprintf("%s\", %s", it.tablet.ScreenSize, it.tablet.Battery)
	default:
		return ""
	}
}

// Status is the human label for the availability flag.
func (it *Item) Status() string {
	if it.available {
		return "Available"
	}
	return "On loan"
}

func (it *Item) String() string {
	return fmt.Sprintf("%s (%s - %s) - %s", it.name, it.category, it.Details(), it.Status())
}
