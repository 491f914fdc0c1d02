package score

import (
	"testing"

	"github.com/daystack/daystack/internal/model"
	"github.com/stretchr/testify/assert"
)

func task(effort int, completed bool) *model.Task {
	return &model.Task{EffortScore: effort, Completed: completed}
}

func TestProductivityEmpty(t *testing.T) {
	assert.Equal(t, 0, Productivity(nil))
	assert.Equal(t, 0, Productivity([]*model.Task{}))
}

func TestProductivityNoneCompleted(t *testing.T) {
	tasks := []*model.Task{task(5, false), task(8, false)}
	assert.Equal(t, 0, Productivity(tasks))
}

func TestProductivityAllCompleted(t *testing.T) {
	tasks := []*model.Task{task(3, true), task(7, true)}
	assert.Equal(t, 100, Productivity(tasks))
}

func TestProductivityWeightedByEffort(t *testing.T) {
	// 8 of 10 effort completed
	tasks := []*model.Task{task(8, true), task(2, false)}
	assert.Equal(t, 80, Productivity(tasks))

	// 1 of 3 tasks but only 1 of 12 effort
	tasks = []*model.Task{task(1, true), task(5, false), task(6, false)}
	assert.Equal(t, 8, Productivity(tasks)) // round(100/12)
}

func TestProductivityBounds(t *testing.T) {
	for completedEffort := 0; completedEffort <= 10; completedEffort++ {
		tasks := []*model.Task{task(10, false)}
		if completedEffort > 0 {
			tasks = append(tasks, task(completedEffort, true))
		}
		s := Productivity(tasks)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}

func TestHealthZero(t *testing.T) {
	assert.Equal(t, 0, Health(&model.HealthData{}))
}

func TestHealthAllGoalsMet(t *testing.T) {
	h := &model.HealthData{Steps: StepsGoal, Calories: CaloriesGoal, Distance: DistanceGoal}
	assert.Equal(t, 100, Health(h))
}

func TestHealthCapsEachMetric(t *testing.T) {
	// Massively overshooting one metric cannot push its share past 100.
	h := &model.HealthData{Steps: StepsGoal * 10}
	assert.Equal(t, 33, Health(h)) // round(100/3)
}

func TestHealthAverageOfRatios(t *testing.T) {
	h := &model.HealthData{
		Steps:    StepsGoal / 2,    // 50
		Calories: CaloriesGoal,     // 100
		Distance: DistanceGoal / 4, // 25
	}
	assert.Equal(t, 58, Health(h)) // round(175/3)
}

func TestHealthMonotonicInSteps(t *testing.T) {
	prev := -1
	for steps := 0; steps <= StepsGoal+4000; steps += 500 {
		s := Health(&model.HealthData{Steps: steps})
		assert.GreaterOrEqual(t, s, prev, "health score must not decrease as steps grow")
		assert.LessOrEqual(t, s, 100)
		prev = s
	}
	// Flat beyond the goal
	atGoal := Health(&model.HealthData{Steps: StepsGoal})
	beyond := Health(&model.HealthData{Steps: StepsGoal * 3})
	assert.Equal(t, atGoal, beyond)
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#10b981", Color(100))
	assert.Equal(t, "#10b981", Color(80))
	assert.Equal(t, "#f59e0b", Color(79))
	assert.Equal(t, "#f59e0b", Color(50))
	assert.Equal(t, "#ef4444", Color(49))
	assert.Equal(t, "#ef4444", Color(0))
}
