package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore("kite", "ada", "medium", 100, 30*time.Second)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("kite", "bob", "easy", 50, 12*time.Second)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("kite", "ada", "hard", 200, 95*time.Second)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("breaker", "ada", "medium", 500, time.Minute)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("kite", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	top := scores[0]
	if top.GameID != "kite" || top.Username != "ada" || top.Difficulty != "hard" {
		t.Errorf("Top entry fields wrong: %+v", top)
	}
	if top.Duration != 95*time.Second {
		t.Errorf("Expected duration 95s, got %v", top.Duration)
	}

	otherScores, err := store.TopScores("breaker", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(otherScores) != 1 {
		t.Errorf("Expected 1 breaker score, got %d", len(otherScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("kite", "ada", "medium", (i+1)*100, time.Second)
	}

	// Request only top 3
	scores, err := store.TopScores("kite", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreTopScoresDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < defaultLeaderboardLimit+10; i++ {
		store.SaveScore("kite", "ada", "medium", i, time.Second)
	}

	scores, err := store.TopScores("kite", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != defaultLeaderboardLimit {
		t.Errorf("Expected default limit of %d scores, got %d", defaultLeaderboardLimit, len(scores))
	}
}

func TestStoreTiesRankEarlierFirst(t *testing.T) {
	store := openTestStore(t)

	firstID, err := store.SaveScore("kite", "first", "medium", 100, time.Second)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore("kite", "second", "medium", 100, time.Second); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("kite", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].ID != firstID {
		t.Errorf("Expected earlier submission ranked first, got %q before %q",
			scores[0].Username, scores[1].Username)
	}
}

func TestStoreScoreRetention(t *testing.T) {
	store := openTestStore(t)
	store.maxScoresPerGame = 5

	for i := 0; i < 8; i++ {
		if _, err := store.SaveScore("kite", "ada", "medium", i*10, time.Second); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Other games keep their own history.
	store.SaveScore("breaker", "ada", "medium", 1, time.Second)

	scores, err := store.TopScores("kite", 100)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 5 {
		t.Fatalf("Expected retention to keep 5 scores, got %d", len(scores))
	}

	// The lowest-ranked rows are the ones dropped.
	for i, e := range scores {
		want := (7 - i) * 10
		if e.Score != want {
			t.Errorf("scores[%d].Score = %d, want %d", i, e.Score, want)
		}
	}

	otherScores, _ := store.TopScores("breaker", 100)
	if len(otherScores) != 1 {
		t.Errorf("Trimming kite scores should not touch breaker, got %d", len(otherScores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("kite")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("kite", "ada", "medium", 100, time.Second)
	store.SaveScore("kite", "bob", "medium", 300, time.Second)
	store.SaveScore("kite", "ada", "medium", 200, time.Second)

	high, err = store.HighScore("kite")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("kite", "ada", "medium", 100, time.Second)
	store.SaveScore("kite", "bob", "medium", 200, time.Second)
	store.SaveScore("breaker", "ada", "medium", 300, time.Second)

	err := store.ClearScores("kite")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	kiteScores, _ := store.TopScores("kite", 10)
	if len(kiteScores) != 0 {
		t.Errorf("Expected 0 kite scores after clear, got %d", len(kiteScores))
	}

	otherScores, _ := store.TopScores("breaker", 10)
	if len(otherScores) != 1 {
		t.Errorf("Breaker scores should not be affected by clearing kite")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("kite")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore("kite", "ada", "medium", 10, time.Second)
	store.SaveScore("kite", "bob", "medium", 20, time.Second)
	store.SaveScore("kite", "ada", "hard", 30, time.Second)

	stats, err = store.GetGameStats("kite")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, want 3", stats.GamesCount)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, want 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, want 20", stats.AvgScore)
	}
	if stats.TotalScore != 60 {
		t.Errorf("TotalScore = %d, want 60", stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set after saving scores")
	}
}

func TestStoreRecordAndRecentEvents(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordEvent("ada-1", "wall_passed", `{"score":1}`); err != nil {
		t.Fatalf("RecordEvent() failed: %v", err)
	}
	if err := store.RecordEvent("ada-1", "wall_passed", `{"score":2}`); err != nil {
		t.Fatalf("RecordEvent() failed: %v", err)
	}
	if err := store.RecordEvent("ada-1", "run_ended", `{"score":2,"reason":"wall"}`); err != nil {
		t.Fatalf("RecordEvent() failed: %v", err)
	}

	events, err := store.RecentEvents(10)
	if err != nil {
		t.Fatalf("RecentEvents() failed: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	// Newest first.
	if events[0].Name != "run_ended" {
		t.Errorf("events[0].Name = %q, want %q", events[0].Name, "run_ended")
	}
	if events[0].SessionID != "ada-1" {
		t.Errorf("events[0].SessionID = %q, want %q", events[0].SessionID, "ada-1")
	}
	if events[2].Data != `{"score":1}` {
		t.Errorf("events[2].Data = %q", events[2].Data)
	}
}

func TestStoreEventRetention(t *testing.T) {
	store := openTestStore(t)
	store.maxEvents = 4

	for i := 0; i < 10; i++ {
		if err := store.RecordEvent("s", "wall_passed", fmt.Sprintf(`{"score":%d}`, i)); err != nil {
			t.Fatalf("RecordEvent() failed: %v", err)
		}
	}

	events, err := store.RecentEvents(100)
	if err != nil {
		t.Fatalf("RecentEvents() failed: %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("Expected retention to keep 4 events, got %d", len(events))
	}

	// Only the newest survive.
	if events[0].Data != `{"score":9}` || events[3].Data != `{"score":6}` {
		t.Errorf("Unexpected surviving events: %v", events)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created as needed.
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
