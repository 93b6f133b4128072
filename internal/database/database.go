package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool. Foreign keys are enabled so
// that deleting a catalog game cascades to user library associations.
func New(dataSourceName string) (*sql.DB, error) {
	dsn := dataSourceName + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// Uniqueness is enforced here, not in application code: the unique indexes
// are the arbiter for duplicate usernames and duplicate library entries,
// including under concurrent requests.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username
		ON users (username COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS games (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS user_games (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, game_id)
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
