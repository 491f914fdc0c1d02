// Package score computes the 0-100 dashboard scores from tasks and health data.
package score

import (
	"math"

	"github.com/daystack/daystack/internal/model"
)

// Daily health targets: 10k steps, 2k calories, 5km.
const (
	StepsGoal    = 10000
	CaloriesGoal = 2000
	DistanceGoal = 5000 // meters
)

// Productivity returns the effort-weighted completion ratio of the given
// tasks as a 0-100 score. No tasks or no completed tasks scores 0.
func Productivity(tasks []*model.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	var totalEffort, completedEffort int
	for _, t := range tasks {
		totalEffort += t.EffortScore
		if t.Completed {
			completedEffort += t.EffortScore
		}
	}
	if completedEffort == 0 || totalEffort == 0 {
		return 0
	}

	return int(math.Round(float64(completedEffort) / float64(totalEffort) * 100))
}

// Health returns the average of the three per-metric goal percentages, each
// capped at 100.
func Health(h *model.HealthData) int {
	steps := goalPercent(h.Steps, StepsGoal)
	calories := goalPercent(h.Calories, CaloriesGoal)
	distance := goalPercent(h.Distance, DistanceGoal)

	return int(math.Round((steps + calories + distance) / 3))
}

func goalPercent(actual, goal int) float64 {
	return math.Min(float64(actual)/float64(goal)*100, 100)
}

// Color maps a score to the dashboard traffic-light hex color.
func Color(score int) string {
	switch {
	case score >= 80:
		return "#10b981" // green
	case score >= 50:
		return "#f59e0b" // orange
	default:
		return "#ef4444" // red
	}
}
