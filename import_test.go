package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-loans/loans"
)

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "inventory", "lab"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory", "lab", "pcs.yaml"), []byte(`
items:
  - name: Lab-PC-01
    category: computer
    os: Ubuntu 24.04
    memory: 32GB
  - name: Laptop-001
    category: computer
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory", "tablets.yaml"), []byte(`
items:
  - name: Tab-Lab-01
    category: tablet
borrowers:
  - name: Ana Ruiz
    role: admin
`), 0o644))
	db := filepath.Join(dir, "loans.db")
	pattern := filepath.Join(dir, "inventory", "**", "*.yaml")

	out, err := runCLI(t, "--db", db, "import", pattern)
	require.NoError(t, err)
	assert.Contains(t, out, "Items imported: 2")
	assert.Contains(t, out, "Borrowers imported: 1")
	assert.Contains(t, out, `item "Laptop-001" already exists`)

	out, err = runCLI(t, "--db", db, "stats", "--json")
	require.NoError(t, err)
	var stats loans.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 6, stats.TotalItems)
	assert.Equal(t, 3, stats.TotalBorrowers)

	out, err = runCLI(t, "--db", db, "import", "--reset", pattern)
	require.NoError(t, err)
	assert.Contains(t, out, "Items imported: 3")
	assert.Contains(t, out, "Lab-PC-01")

	_, err = runCLI(t, "import", filepath.Join(dir, "missing-*.yaml"))
	assert.ErrorContains(t, err, "matched no files")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
}
