// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	seed INTEGER NOT NULL,
	params TEXT NOT NULL,
	days INTEGER NOT NULL,
	opening_put_value REAL NOT NULL,
	initial_value REAL NOT NULL,
	final_value REAL NOT NULL,
	min_value REAL NOT NULL,
	max_value REAL NOT NULL,
	total_interest REAL NOT NULL,
	roll_day INTEGER NOT NULL,
	return_pct REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS days (
	run_id TEXT NOT NULL,
	day INTEGER NOT NULL,
	date DATETIME NOT NULL,
	spot REAL NOT NULL,
	time_to_expiry REAL NOT NULL,
	active_strike REAL NOT NULL,
	put_value REAL NOT NULL,
	sold_put_value REAL NOT NULL,
	interest_today REAL NOT NULL,
	cumulative_interest REAL NOT NULL,
	total_value REAL NOT NULL,
	action TEXT NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY (run_id, day)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
