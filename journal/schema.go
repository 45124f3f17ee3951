// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	owner TEXT NOT NULL,
	instrument TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss_price REAL NOT NULL DEFAULT 0,
	take_profit_price REAL NOT NULL DEFAULT 0,
	position_size REAL NOT NULL,
	screenshot_ref TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_owner_created ON trades(owner, created_at, trade_id);
`
