//go:build blackbox

package blackbox

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestImportThenReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.sqlite")
	csvPath := writeFile(t, dir, "trades.csv", scenarioCSV)

	out := run(t, "import", csvPath, "--db", dbPath, "--owner", "alice")
	if !contains(out, "Imported: 3") || !contains(out, "Skipped:  1") {
		t.Fatalf("unexpected import output:\n%s", out)
	}
	if !contains(out, "row 4: direction") {
		t.Fatalf("expected row 4 direction error, got:\n%s", out)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trades WHERE owner = ?`, "alice").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 trades, got %d", n)
	}

	out = run(t, "stats", "--db", dbPath, "--owner", "alice")
	for _, want := range []string{"Trades:        3", "Wins:          3", "Win Rate:      100.00%"} {
		if !contains(out, want) {
			t.Fatalf("stats missing %q:\n%s", want, out)
		}
	}

	out = run(t, "pairs", "--db", dbPath, "--owner", "alice")
	eur := strings.Index(out, "EURUSD")
	gbp := strings.Index(out, "GBPUSD")
	if eur < 0 || gbp < 0 || eur > gbp {
		t.Fatalf("expected EURUSD before GBPUSD:\n%s", out)
	}
}

func TestOwnersAreSeparate(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.sqlite")

	run(t, "add", "--db", dbPath, "--owner", "alice",
		"--pair", "eurusd", "--direction", "buy", "--entry", "1.1", "--lot", "1")

	out := run(t, "stats", "--db", dbPath, "--owner", "bob")
	if !contains(out, "No trades yet") {
		t.Fatalf("expected empty journal for bob:\n%s", out)
	}

	out = run(t, "trades", "--db", dbPath, "--owner", "alice")
	if !contains(out, "EURUSD") {
		t.Fatalf("expected alice's trade:\n%s", out)
	}
}

func TestAddRejectsInvalidTrade(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.sqlite")

	out := runFail(t, "add", "--db", dbPath,
		"--pair", "EURUSD", "--direction", "buy", "--entry", "1.1", "--lot", "0")
	if !contains(out, "lot") {
		t.Fatalf("expected lot error:\n%s", out)
	}
}

func TestExportFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.sqlite")
	csvPath := writeFile(t, dir, "trades.csv", scenarioCSV)
	run(t, "import", csvPath, "--db", dbPath)

	tradesOut := filepath.Join(dir, "out-trades.csv")
	equityOut := filepath.Join(dir, "out-equity.csv")
	orgOut := filepath.Join(dir, "journal.org")
	out := run(t, "export", "--db", dbPath,
		"--trades", tradesOut, "--equity", equityOut, "--org", orgOut)
	if !contains(out, "Exported 3 trades") {
		t.Fatalf("unexpected export output:\n%s", out)
	}

	for _, p := range []string{tradesOut, equityOut, orgOut} {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		if len(b) == 0 {
			t.Fatalf("%s is empty", p)
		}
	}

	b, _ := os.ReadFile(tradesOut)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %d lines", len(lines))
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "journal.yaml")

	run(t, "config", "init", "-o", cfgPath)
	out := run(t, "config", "validate", "-f", cfgPath)
	if !contains(out, "Configuration valid") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}
}
