package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/finanzas/internal/backup"
	"github.com/Veraticus/finanzas/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)

// runCLI executes the command tree against dbPath with stdin as input.
func runCLI(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	clock = func() time.Time { return testNow }
	t.Cleanup(func() {
		clock = time.Now
		viper.Reset()
	})

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", dbPath, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "finanzas.db")
}

func countLines(t *testing.T, dbPath string) int {
	t.Helper()
	out, err := runCLI(t, dbPath, "", "list", "--range", "all")
	require.NoError(t, err)
	if strings.Contains(out, "No hay movimientos.") {
		return 0
	}
	var n int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, " movimientos") {
			_, _ = fmt.Sscanf(line, "%d movimientos", &n)
		}
	}
	return n
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, ":memory:", "", "version")
	require.NoError(t, err)
	assert.Equal(t, "finanzas dev\n", out)
}

func TestAddAndSummary(t *testing.T) {
	db := testDB(t)

	out, err := runCLI(t, db, "", "add", "income", "1000000", "-c", "salary", "-d", "Nómina")
	require.NoError(t, err)
	assert.Contains(t, out, "Ingreso registrado")
	assert.Contains(t, out, "+$1.000.000")

	out, err = runCLI(t, db, "", "add", "gasto", "250000", "--category", "food", "--description", "Mercado")
	require.NoError(t, err)
	assert.Contains(t, out, "-$250.000")

	out, err = runCLI(t, db, "", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "octubre de 2026")
	assert.Contains(t, out, "$750.000")
	assert.Contains(t, out, "Comida")

	out, err = runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Mercado")
	assert.Contains(t, out, "Nómina")
	assert.Contains(t, out, "2 movimientos")
	assert.Less(t, strings.Index(out, "Mercado"), strings.Index(out, "Nómina"), "newest first")
}

func TestAdd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad type", args: []string{"add", "transfer", "100"}},
		{name: "zero amount", args: []string{"add", "expense", "0"}},
		{name: "not a number", args: []string{"add", "expense", "mucho"}},
		{name: "bad category", args: []string{"add", "expense", "100", "-c", "pets"}},
		{name: "bad date", args: []string{"add", "expense", "100", "--date", "14/10/2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, ":memory:", "", tt.args...)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestAdd_BackdatedGoesToItsMonth(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, db, "", "add", "expense", "80000", "-c", "transport", "--date", "2026-09-20")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay movimientos.")

	out, err = runCLI(t, db, "", "list", "--offset", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "20/09/2026")

	out, err = runCLI(t, db, "", "list", "--month", "2026-09")
	require.NoError(t, err)
	assert.Contains(t, out, "Transporte")

	out, err = runCLI(t, db, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "septiembre de 2026")
	assert.Contains(t, out, "-$80.000")
}

func TestEditCmd(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, db, "", "add", "expense", "250000", "-c", "food")
	require.NoError(t, err)
	id := firstID(t, db)

	out, err := runCLI(t, db, "", "edit", id, "--amount", "260000", "--category", "shopping")
	require.NoError(t, err)
	assert.Contains(t, out, "actualizado")
	assert.Contains(t, out, "-$260.000")
	assert.Contains(t, out, "Compras")

	_, err = runCLI(t, db, "", "edit", id)
	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)

	_, err = runCLI(t, db, "", "edit", "42", "--amount", "1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteCmd(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, db, "", "add", "expense", "250000", "-c", "food")
	require.NoError(t, err)
	id := firstID(t, db)

	out, err := runCLI(t, db, "n\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "cancelada")
	assert.Equal(t, 1, countLines(t, db))

	out, err = runCLI(t, db, "s\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "eliminado")
	assert.Equal(t, 0, countLines(t, db))

	_, err = runCLI(t, db, "", "delete", "--yes", id)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStatsCmd(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, db, "", "add", "income", "1000000", "-c", "salary")
	require.NoError(t, err)
	_, err = runCLI(t, db, "", "add", "expense", "250000", "-c", "food")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Este mes")
	assert.Contains(t, out, "Comida")
	assert.Contains(t, out, "100%")

	out, err = runCLI(t, db, "", "stats", "--from", "2026-01-01", "--to", "2026-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Sin gastos en este rango.")

	_, err = runCLI(t, db, "", "stats", "--from", "2026-01-01")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = runCLI(t, db, "", "stats", "--range", "decade")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSuggestCmd(t *testing.T) {
	db := testDB(t)

	out, err := runCLI(t, db, "", "suggest")
	require.NoError(t, err)
	assert.Contains(t, out, "Aún no hay gastos")

	_, err = runCLI(t, db, "", "add", "expense", "90000", "-c", "entertainment")
	require.NoError(t, err)

	out, err = runCLI(t, db, "", "suggest")
	require.NoError(t, err)
	assert.Contains(t, out, "Atención en Entretenimiento")
	assert.Contains(t, out, "100% de tus gastos")
	assert.Contains(t, out, "Regla 50/30/20")
}

func TestReportCmd_Empty(t *testing.T) {
	out, err := runCLI(t, testDB(t), "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Aún no hay meses anteriores")

	_, err = runCLI(t, testDB(t), "", "report", "--month", "2026-13")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestBackupAndRestore(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()

	_, err := runCLI(t, db, "", "add", "income", "1000000", "-c", "salary")
	require.NoError(t, err)
	_, err = runCLI(t, db, "", "add", "expense", "250000", "-c", "food")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "backup", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 movimientos")

	file := filepath.Join(dir, backup.FileName(testNow))
	require.FileExists(t, file)

	_, err = runCLI(t, db, "", "backup", "--dir", dir)
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)

	_, err = runCLI(t, db, "", "backup", "--dir", dir, "--force")
	require.NoError(t, err)

	out, err = runCLI(t, db, "", "backup", "--dir", dir, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Base(file))

	other := testDB(t)
	_, err = runCLI(t, other, "", "add", "expense", "5000", "-c", "other")
	require.NoError(t, err)

	out, err = runCLI(t, other, "n\n", "restore", file)
	require.NoError(t, err)
	assert.Contains(t, out, "cancelada")
	assert.Equal(t, 1, countLines(t, other))

	out, err = runCLI(t, other, "", "restore", "--yes", file)
	require.NoError(t, err)
	assert.Contains(t, out, "2 movimientos")
	assert.Equal(t, 2, countLines(t, other))
}

func TestRestore_InvalidFileLeavesDataUnchanged(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, db, "", "add", "expense", "5000", "-c", "other")
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"movimientos": []}`), 0600))

	_, err = runCLI(t, db, "", "restore", "--yes", bad)
	assert.ErrorIs(t, err, common.ErrImportFormat)
	assert.Equal(t, 1, countLines(t, db))

	_, err = runCLI(t, db, "", "restore", "--yes", filepath.Join(t.TempDir(), "missing.json"))
	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestBackupStdout(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, db, "", "add", "expense", "5000", "-c", "other")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "backup", "--stdout")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"transactions\": ["))
}

func firstID(t *testing.T, dbPath string) string {
	t.Helper()
	out, err := runCLI(t, dbPath, "", "list", "--range", "all")
	require.NoError(t, err)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && len(fields[0]) > 10 && strings.Trim(fields[0], "0123456789") == "" {
			return fields[0]
		}
	}
	t.Fatal("no transaction id in list output")
	return ""
}
