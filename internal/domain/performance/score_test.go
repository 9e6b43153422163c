package performance

import "testing"

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		wantScore int
		wantRate  float64
	}{
		{"zero tasks", 0, 0, 0, 0},
		{"all completed", 10, 10, 100, 100},
		{"ninety percent", 10, 9, 100, 90},
		{"eighty percent", 10, 8, 85, 80},
		{"seventy percent", 10, 7, 72, 70},
		{"sixty percent", 10, 6, 60, 60},
		{"fifty percent boundary", 10, 5, 50, 50},
		{"between fifty and sixty", 9, 5, 51, 55.56},
		{"forty percent", 10, 4, 30, 40},
		{"none completed", 10, 0, 0, 0},
		{"single task done", 1, 1, 100, 100},
		{"single task open", 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.total, tt.completed)
			if got.Score != tt.wantScore {
				t.Fatalf("ComputeScore(%d, %d).Score = %d, want %d", tt.total, tt.completed, got.Score, tt.wantScore)
			}
			if got.CompletionRate != tt.wantRate {
				t.Fatalf("ComputeScore(%d, %d).CompletionRate = %v, want %v", tt.total, tt.completed, got.CompletionRate, tt.wantRate)
			}
			if got.TotalTasks != tt.total || got.CompletedTasks != tt.completed {
				t.Fatalf("task counts not echoed back: %+v", got)
			}
			if got.UncompletedTasks != tt.total-tt.completed {
				t.Fatalf("uncompleted = %d, want %d", got.UncompletedTasks, tt.total-tt.completed)
			}
		})
	}
}

func TestComputeScoreBounds(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for completed := 0; completed <= total; completed++ {
			got := ComputeScore(total, completed)
			if got.Score < 0 || got.Score > 100 {
				t.Fatalf("ComputeScore(%d, %d).Score = %d out of [0,100]", total, completed, got.Score)
			}
		}
	}
}

func TestComputeScoreMonotoneInCompletions(t *testing.T) {
	const total = 12
	previous := -1
	for completed := 0; completed <= total; completed++ {
		got := ComputeScore(total, completed).Score
		if got < previous {
			t.Fatalf("score decreased at %d/%d: %d < %d", completed, total, got, previous)
		}
		previous = got
	}
}
