package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"equipment-loans/loans"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func printItems(w io.Writer, title string, items []*loans.Item, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	fmt.Fprintf(w, "\n=== %s ===\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  • %s\n", it)
	}
}

// printLoans lists history entries numbered from 1, each line prefixed by indent.
func printLoans(w io.Writer, indent string, history []loans.Loan) {
	if len(history) == 0 {
		fmt.Fprintf(w, "%sNo loans recorded.\n", indent)
		return
	}
	for i, l := range history {
		fmt.Fprintf(w, "%s%d. %s - %s\n", indent, i+1, l.Borrower, l.At.Format(loans.TimeLayout))
	}
}

func printFullHistory(w io.Writer, all []loans.ItemHistory) {
	fmt.Fprintf(w, "\n=== LOAN HISTORY ===\n")
	for _, h := range all {
		fmt.Fprintf(w, "\n%s\n", h.Item)
		if len(h.Loans) > 0 {
			fmt.Fprintln(w, "   Loans:")
		}
		printLoans(w, "   ", h.Loans)
	}
}

func printBorrowers(w io.Writer, borrowers []*loans.Borrower) {
	if len(borrowers) == 0 {
		fmt.Fprintln(w, "No borrowers registered.")
		return
	}
	fmt.Fprintf(w, "\n=== BORROWERS ===\n")
	for _, b := range borrowers {
		fmt.Fprintf(w, "  • %s\n", b)
		if held := b.HeldItems(); len(held) > 0 {
			fmt.Fprintf(w, "    Items on loan: %s\n", strings.Join(held, ", "))
		}
	}
}

func printStats(w io.Writer, s loans.Stats) {
	fmt.Fprintf(w, "\n=== STATISTICS ===\n")
	fmt.Fprintf(w, "Total items: %d\n", s.TotalItems)
	fmt.Fprintf(w, "Available items: %d\n", s.AvailableItems)
	fmt.Fprintf(w, "Items on loan: %d\n", s.BorrowedItems)
	fmt.Fprintf(w, "Total borrowers: %d\n", s.TotalBorrowers)
	fmt.Fprintf(w, "Total loans made: %d\n", s.TotalLoans)
}

// ---------------------------------------------------------------------------
// JSON views
// ---------------------------------------------------------------------------

type itemView struct {
	Name      string              `json:"name"`
	Category  string              `json:"category"`
	Computer  *loans.ComputerSpec `json:"computer,omitempty"`
	Tablet    *loans.TabletSpec   `json:"tablet,omitempty"`
	Available bool                `json:"available"`
	Loans     int                 `json:"loans"`
}

func newItemView(it *loans.Item) itemView {
	v := itemView{
		Name:      it.Name(),
		Category:  strings.ToLower(it.Category().String()),
		Available: it.Available(),
		Loans:     it.HistoryLen(),
	}
	if spec, ok := it.Computer(); ok {
		v.Computer = &spec
	}
	if spec, ok := it.Tablet(); ok {
		v.Tablet = &spec
	}
	return v
}

type borrowerView struct {
	Name    string   `json:"name"`
	Contact string   `json:"contact"`
	Role    string   `json:"role"`
	Holds   []string `json:"holds"`
}

type loanView struct {
	ID       string    `json:"id"`
	Item     string    `json:"item"`
	Borrower string    `json:"borrower"`
	At       time.Time `json:"at"`
}

func appendLoanViews(views []loanView, item string, history []loans.Loan) []loanView {
	for _, l := range history {
		views = append(views, loanView{ID: l.ID.String(), Item: item, Borrower: l.Borrower, At: l.At})
	}
	return views
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
