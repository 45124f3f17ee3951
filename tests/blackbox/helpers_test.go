//go:build blackbox

package blackbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const scenarioCSV = `pair,direction,entry,stoploss,takeprofit,lot,notes
EURUSD,buy,1.1000,1.0950,1.1100,1,breakout
GBPUSD,sell,1.2700,1.2750,1.2600,2,
EURUSD,long,1.0900,1.0850,1.1000,1,
XAUUSD,up,2000,1990,2020,1,
`
