package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(config{seed: true, contactDomain: "email.com"})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLendAndReturnPersist(t *testing.T) {
	db := filepath.Join(t.TempDir(), "loans.db")

	out, err := runCLI(t, "--db", db, "lend", "Laptop-001", "New User")
	require.NoError(t, err)
	assert.Contains(t, out, "Laptop-001 lent to New User")

	_, err = runCLI(t, "--db", db, "lend", "Laptop-001", "Someone Else")
	assert.ErrorContains(t, err, "already on loan")

	out, err = runCLI(t, "--db", db, "list", "--available", "--json")
	require.NoError(t, err)
	var items []itemView
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 3)
	for _, it := range items {
		assert.NotEqual(t, "Laptop-001", it.Name)
	}

	out, err = runCLI(t, "--db", db, "return", "Laptop-001")
	require.NoError(t, err)
	assert.Contains(t, out, "was held by New User")

	out, err = runCLI(t, "--db", db, "stats", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_items":4,"available_items":4,"borrowed_items":0,"total_borrowers":3,"total_loans":1}`, out)
}

func TestHistoryCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "loans.db")
	_, err := runCLI(t, "--db", db, "lend", "iPad-001", "Juan Pérez")
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "history", "iPad-001", "--json")
	require.NoError(t, err)
	var loans []loanView
	require.NoError(t, json.Unmarshal([]byte(out), &loans))
	require.Len(t, loans, 1)
	assert.Equal(t, "Juan Pérez", loans[0].Borrower)
	assert.Equal(t, "iPad-001", loans[0].Item)

	out, err = runCLI(t, "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Juan Pérez - ")

	_, err = runCLI(t, "--db", db, "history", "Ghost-Device")
	assert.ErrorContains(t, err, "item not found")
}

func TestBorrowersCommand(t *testing.T) {
	out, err := runCLI(t, "borrowers", "--json")
	require.NoError(t, err)
	var borrowers []borrowerView
	require.NoError(t, json.Unmarshal([]byte(out), &borrowers))
	require.Len(t, borrowers, 2)
	assert.Equal(t, "María García", borrowers[1].Name)
	assert.Equal(t, "Professor", borrowers[1].Role)
	assert.Empty(t, borrowers[1].Holds)
}

func TestNoSeed(t *testing.T) {
	out, err := runCLI(t, "--seed=false", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No items registered.")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "loans version dev\n", out)
}

func TestRootRunsMenu(t *testing.T) {
	root := newRootCmd(config{seed: true, contactDomain: "email.com"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("9\n0\n"))
	root.SetArgs([]string{})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Total items: 4")
}
