package service

import (
	"fmt"

	"github.com/mattmelloy/simplecalorie/internal/model"
)

// ApplyGoalResult maps a provider goal suggestion onto the settings
// record: the daily goal is overwritten, unit and consent are left
// untouched. The input settings value is not mutated; callers persist
// the returned copy via ReplaceSettings when they accept it, so a
// stale suggestion that is never applied has no effect.
func ApplyGoalResult(settings model.UserSettings, result model.GoalCalculationResult) (model.UserSettings, error) {
	if result.DailyCalories <= 0 {
		return model.UserSettings{}, fmt.Errorf("%w: got %d", ErrInvalidGoalResult, result.DailyCalories)
	}
	settings.DailyGoal = float64(result.DailyCalories)
	return settings, nil
}

// ValidateProfile checks that every profile field is present before a
// goal-calculation request is dispatched.
func ValidateProfile(p model.UserProfile) error {
	if p.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if p.Gender == "" {
		return fmt.Errorf("gender is required")
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if p.ActivityLevel == "" {
		return fmt.Errorf("activity level is required")
	}
	if p.Goal == "" {
		return fmt.Errorf("goal target is required")
	}
	return nil
}
