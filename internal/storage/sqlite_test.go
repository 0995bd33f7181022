package storage

import (
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
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("sandfall", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("sandfall_timed", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("sandfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, want)
		}
	}

	timed, err := store.TopScores("sandfall_timed", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(timed) != 1 {
		t.Errorf("Expected 1 timed score, got %d", len(timed))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("sandfall", (i+1)*100)
	}

	scores, err := store.TopScores("sandfall", 3)
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

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("sandfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("sandfall", 100)
	store.SaveScore("sandfall", 300)
	store.SaveRun(RunRecord{GameID: "sandfall", Score: 200, Lines: 4})

	high, err = store.HighScore("sandfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	want := RunRecord{
		GameID:        "sandfall_clear",
		Score:         1234,
		Level:         3,
		Lines:         21,
		Pieces:        88,
		GrainsCleared: 4000,
		MaxChain:      3,
		Seed:          -42,
		Difficulty:    "hard",
		EndReason:     "goal reached",
		Elapsed:       95 * time.Second,
		GoalTime:      94500 * time.Millisecond,
	}
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	want.ID = id
	want.CreatedAt = got.CreatedAt
	if *got != want {
		t.Errorf("RunByID() = %+v, want %+v", *got, want)
	}

	scores, _ := store.TopScores("sandfall_clear", 10)
	if len(scores) != 1 || scores[0].Lines != 21 {
		t.Errorf("Expected the run's score row with 21 lines, got %v", scores)
	}

	missing, err := store.RunByID(id + 100)
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStoreTopScoresTieBreaksOnLines(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "sandfall", Score: 100, Lines: 2})
	store.SaveRun(RunRecord{GameID: "sandfall", Score: 100, Lines: 5})

	scores, err := store.TopScores("sandfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Lines != 5 {
		t.Errorf("Expected the 5-line run first, got %v", scores)
	}
}

func TestStoreFastestGoals(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "sandfall_clear", Score: 900, Lines: 40, GoalTime: 3 * time.Minute},
		{GameID: "sandfall_clear", Score: 500, Lines: 12},
		{GameID: "sandfall_clear", Score: 700, Lines: 40, GoalTime: 2 * time.Minute},
		{GameID: "sandfall", Score: 100, Lines: 40, GoalTime: time.Minute},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	goals, err := store.FastestGoals("sandfall_clear", 10)
	if err != nil {
		t.Fatalf("FastestGoals() failed: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("Expected 2 goal runs, got %d", len(goals))
	}
	if goals[0].GoalTime != 2*time.Minute || goals[1].GoalTime != 3*time.Minute {
		t.Errorf("Goal runs not fastest first: %v", goals)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 4; i++ {
		store.SaveRun(RunRecord{GameID: "sandfall", Score: i * 10})
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 40 || recent[1].Score != 30 {
		t.Errorf("Unexpected recent runs: %v", recent)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("sandfall", 100)
	store.SaveRun(RunRecord{GameID: "sandfall", Score: 200, GoalTime: time.Second})
	store.SaveScore("sandfall_timed", 300)

	if err := store.ClearScores("sandfall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("sandfall", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns(10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if timed, _ := store.TopScores("sandfall_timed", 10); len(timed) != 1 {
		t.Error("Timed scores should not be affected by clearing endless")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("sandfall", i*10)
	}

	scores, err := store.AllScores("sandfall")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "sandfall_clear", Score: 100, Lines: 10, GoalTime: 90 * time.Second})
	store.SaveRun(RunRecord{GameID: "sandfall_clear", Score: 300, Lines: 40, GoalTime: 80 * time.Second})
	store.SaveScore("sandfall", 50)

	stats, err := store.GetGameStats("sandfall_clear")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.BestLines != 40 || stats.BestGoal != 80*time.Second {
		t.Errorf("Unexpected best lines/goal: %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["sandfall"].HighScore != 50 || all["sandfall"].BestGoal != 0 {
		t.Errorf("Unexpected endless stats: %+v", all["sandfall"])
	}
	if all["sandfall_clear"].BestGoal != 80*time.Second {
		t.Errorf("Unexpected clear stats: %+v", all["sandfall_clear"])
	}

	empty, err := store.GetGameStats("sandfall_timed")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
