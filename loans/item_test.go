package loans

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemStartsAvailableWithEmptyHistory(t *testing.T) {
	for _, it := range []*Item{NewComputer("Laptop-001", "Linux", "32GB"), NewTablet("iPad-001", "12", "10000mAh")} {
		assert.True(t, it.Available(), it.Name())
		assert.Empty(t, it.History(), it.Name())
	}
}

func TestItemDefaults(t *testing.T) {
	pc := NewComputer("PC", "", "")
	spec, ok := pc.Computer()
	require.True(t, ok)
	assert.Equal(t, ComputerSpec{OS: "Windows", Memory: "8GB"}, spec)
	_, ok = pc.Tablet()
	assert.False(t, ok)

	tab := NewTablet("Tab", "", "")
	tspec, ok := tab.Tablet()
	require.True(t, ok)
	assert.Equal(t, TabletSpec{ScreenSize: "10", Battery: "8000mAh"}, tspec)
}

func TestBorrowTwice(t *testing.T) {
	it := NewComputer("Laptop-001", "", "")

	first := it.Borrow("Ana")
	second := it.Borrow("Luis")

	assert.True(t, first)
	assert.False(t, second)
	require.Len(t, it.History(), 1)
	assert.Equal(t, "Ana", it.History()[0].Borrower)
	assert.False(t, it.Available())
}

func TestReturnNeverBorrowed(t *testing.T) {
	it := NewTablet("iPad-001", "", "")
	assert.False(t, it.Return())
	assert.True(t, it.Available())
	assert.Empty(t, it.History())
}

func TestBorrowReturnBorrow(t *testing.T) {
	it := NewComputer("Laptop-001", "", "")
	require.True(t, it.Borrow("Ana"))
	require.True(t, it.Return())
	require.True(t, it.Borrow("Luis"))

	h := it.History()
	require.Len(t, h, 2)
	assert.Equal(t, "Ana", h[0].Borrower)
	assert.Equal(t, "Luis", h[1].Borrower)
	assert.NotEqual(t, h[0].ID, h[1].ID)
	assert.False(t, it.Available())
}

func TestHistoryIsACopy(t *testing.T) {
	it := NewComputer("Laptop-001", "", "")
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.True(t, it.borrowAt("Ana", at))

	h := it.History()
	h[0].Borrower = "Mallory"
	_ = append(h, Loan{Borrower: "Eve"})

	got := it.History()
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Borrower)
	assert.Equal(t, at, got[0].At)
}

func TestItemString(t *testing.T) {
	pc := NewComputer("Laptop-001", "Windows 11", "16GB")
	assert.Equal(t, "Laptop-001 (Computer - Windows 11, 16GB) - Available", pc.String())

	tab := NewTablet("iPad-001", "12", "10000mAh")
	tab.Borrow("Ana")
	assert.Equal(t, `iPad-001 (Tablet - 12", 10000mAh) - On loan`, tab.String())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"1", CategoryComputer, true},
		{"Computer", CategoryComputer, true},
		{" 2 ", CategoryTablet, true},
		{"tablet", CategoryTablet, true},
		{"3", 0, false},
		{"phone", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
