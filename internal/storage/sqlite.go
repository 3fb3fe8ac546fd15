// Package storage provides SQLite-backed persistence for leaderboard
// scores and gameplay telemetry. It uses the pure-Go modernc.org/sqlite
// driver, so builds never need CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const (
	defaultMaxScoresPerGame = 100
	defaultMaxEvents        = 10000
	defaultLeaderboardLimit = 50
)

// Store manages the SQLite database holding scores and telemetry events.
type Store struct {
	db *sql.DB

	// Retention caps, trimmed on every insert.
	maxScoresPerGame int
	maxEvents        int
}

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	ID         int64
	GameID     string
	Username   string
	Difficulty string
	Score      int
	Duration   time.Duration
	CreatedAt  time.Time
}

// EventEntry is one recorded telemetry event.
type EventEntry struct {
	ID        int64
	SessionID string
	Name      string
	Data      string
	CreatedAt time.Time
}

// GameStats aggregates the score history of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path. A leading ~
// expands to the home directory and parent directories are created as
// needed.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{
		db:               db,
		maxScoresPerGame: defaultMaxScoresPerGame,
		maxEvents:        defaultMaxEvents,
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			username TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(game_id, score DESC, created_at ASC);

		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			data TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run on the leaderboard and trims the
// game's history to the retention cap, dropping the lowest-ranked rows.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID, username, difficulty string, score int, duration time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, username, difficulty, score, duration_ms) VALUES (?, ?, ?, ?, ?)",
		gameID, username, difficulty, score, duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = s.db.Exec(
		`DELETE FROM scores
		 WHERE game_id = ?
		   AND id NOT IN (
			SELECT id FROM scores
			WHERE game_id = ?
			ORDER BY score DESC, created_at ASC, id ASC
			LIMIT ?)`,
		gameID, gameID, s.maxScoresPerGame,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot trim scores: %w", err)
	}

	return id, nil
}

// TopScores retrieves the leaderboard for a game, best first. Ties rank
// the earlier submission higher. A non-positive limit falls back to the
// default presentation size; limits above the retention cap are clamped.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > s.maxScoresPerGame {
		limit = s.maxScoresPerGame
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, username, difficulty, score, duration_ms, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Username, &e.Difficulty, &e.Score, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score for the given game, or 0 if none.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetGameStats aggregates the stored score history of a game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// RecordEvent appends a telemetry event and trims the log to the
// retention cap, dropping the oldest entries.
func (s *Store) RecordEvent(sessionID, name, data string) error {
	_, err := s.db.Exec(
		"INSERT INTO events (session_id, name, data) VALUES (?, ?, ?)",
		sessionID, name, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record event: %w", err)
	}

	_, err = s.db.Exec(
		`DELETE FROM events
		 WHERE id NOT IN (SELECT id FROM events ORDER BY id DESC LIMIT ?)`,
		s.maxEvents,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot trim events: %w", err)
	}

	return nil
}

// RecentEvents returns the newest telemetry events, newest first.
func (s *Store) RecentEvents(limit int) ([]EventEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, name, data, created_at
		 FROM events
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var entries []EventEntry
	for rows.Next() {
		var e EventEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Name, &e.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime converts a scanned created_at column, which the driver may
// hand back as either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
