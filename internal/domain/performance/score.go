package performance

import "math"

// ScoreResult carries the computed score together with the task statistics
// it was derived from, so callers persist them as one consistent snapshot.
type ScoreResult struct {
	Score            int     `json:"score"`
	CompletionRate   float64 `json:"taskCompletionRate"`
	TotalTasks       int     `json:"totalTasks"`
	CompletedTasks   int     `json:"completedTasks"`
	UncompletedTasks int     `json:"uncompletedTasks"`
}

// ComputeScore maps a task tally to a performance score. The base score is
// the completion percentage, adjusted by a bonus above 70% and a penalty
// below 60%, then clamped to [0, 100] and rounded to the nearest integer.
// An exact 50% rate takes no penalty. Zero tasks score zero.
func ComputeScore(totalTasks, completedTasks int) ScoreResult {
	result := ScoreResult{
		TotalTasks:       totalTasks,
		CompletedTasks:   completedTasks,
		UncompletedTasks: totalTasks - completedTasks,
	}
	if totalTasks <= 0 {
		return result
	}

	rate := float64(completedTasks) / float64(totalTasks) * 100
	result.CompletionRate = math.Round(rate*100) / 100

	score := rate
	switch {
	case rate >= 90:
		score += 10
	case rate >= 80:
		score += 5
	case rate >= 70:
		score += 2
	}
	switch {
	case rate < 50:
		score -= 10
	case rate > 50 && rate < 60:
		score -= 5
	}

	score = math.Max(0, math.Min(100, score))
	result.Score = int(math.Round(score))
	return result
}
