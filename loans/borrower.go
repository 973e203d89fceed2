package loans

import (
	"fmt"
	"slices"
)

// Borrower is a person who may hold items. Items are referenced by name only.
type Borrower struct {
	name    string
	contact string
	role    Role
	held    []string
}

// NewBorrower creates a borrower; an empty role means RoleStudent.
func NewBorrower(name, contact string, role Role) *Borrower {
	if role == "" {
		role = RoleStudent
	}
	return &Borrower{name: name, contact: contact, role: role}
}

func (b *Borrower) Name() string    { return b.name }
func (b *Borrower) Contact() string { return b.contact }
func (b *Borrower) Role() Role      { return b.role }

// AddHeldItem records that the borrower holds name. No-op if already held.
func (b *Borrower) AddHeldItem(name string) {
	if b.Holds(name) {
		return
	}
	b.held = append(b.held, name)
}

// RemoveHeldItem forgets name. No-op if not held.
func (b *Borrower) RemoveHeldItem(name string) {
	if i := slices.Index(b.held, name); i >= 0 {
		b.held = slices.Delete(b.held, i, i+1)
	}
}

func (b *Borrower) Holds(name string) bool { return slices.Contains(b.held, name) }

// HeldItems returns a copy of the held item names.
func (b *Borrower) HeldItems() []string { return slices.Clone(b.held) }

func (b *Borrower) String() string {
	return fmt.Sprintf("%s (%s) - %s", b.name, b.role, b.contact)
}
