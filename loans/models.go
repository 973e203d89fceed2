package loans

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is how loan timestamps are shown to people.
const TimeLayout = "2006-01-02 15:04:05"

// Category tags the kind of equipment an Item is and selects its spec payload.
type Category int

const (
	CategoryComputer Category = iota + 1
	CategoryTablet
)

func (c Category) String() string {
	switch c {
	case CategoryComputer:
		return "Computer"
	case CategoryTablet:
		return "Tablet"
	default:
		return "Unknown"
	}
}

// ParseCategory accepts the menu codes ("1", "2") as well as the names.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "computer":
		return CategoryComputer, true
	case "2", "tablet":
		return CategoryTablet, true
	}
	return 0, false
}

// ComputerSpec holds the attributes only computers have.
type ComputerSpec struct {
	OS     string `json:"os"`
	Memory string `json:"memory"`
}

// TabletSpec holds the attributes only tablets have.
type TabletSpec struct {
	ScreenSize string `json:"screen_size"`
	Battery    string `json:"battery"`
}

// Defaults used when an attribute is left empty.
const (
	DefaultOS         = "Windows"
	DefaultMemory     = "8GB"
	DefaultScreenSize = "10"
	DefaultBattery    = "8000mAh"
)

// Role is a borrower's role in the institution.
type Role string

const (
	RoleStudent   Role = "Student"
	RoleProfessor Role = "Professor"
	RoleAdmin     Role = "Admin"
)

// ParseRole maps free text to a Role, defaulting to RoleStudent.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "professor":
		return RoleProfessor
	case "admin":
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// Loan is one entry of an item's history: who took it and when.
type Loan struct {
	ID       uuid.UUID `json:"id"`
	Borrower string    `json:"borrower"`
	At       time.Time `json:"at"`
}

// ItemHistory pairs an item with a snapshot of its history.
type ItemHistory struct {
	Item  *Item
	Loans []Loan
}

// Stats summarizes the catalog. TotalLoans counts every loan ever made, not
// just the outstanding ones.
type Stats struct {
	TotalItems     int `json:"total_items"`
	AvailableItems int `json:"available_items"`
	BorrowedItems  int `json:"borrowed_items"`
	TotalBorrowers int `json:"total_borrowers"`
	TotalLoans     int `json:"total_loans"`
}
