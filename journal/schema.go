package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id          TEXT PRIMARY KEY,
	strategy    TEXT NOT NULL,
	symbol      TEXT NOT NULL,
	side        TEXT NOT NULL,
	size        REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price  REAL NOT NULL,
	open_time   TIMESTAMP NOT NULL,
	close_time  TIMESTAMP NOT NULL,
	pnl         REAL NOT NULL,
	pnl_pct     REAL NOT NULL,
	reason      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy, close_time);
`
