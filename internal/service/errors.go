package service

import "errors"

var (
	// ErrInvalidEstimateFormat is returned when the AI provider's
	// response does not match the expected estimate shape.
	ErrInvalidEstimateFormat = errors.New("invalid estimate format")
	// ErrMissingCategory is returned when an estimate is confirmed
	// without a meal category.
	ErrMissingCategory = errors.New("meal category is required")
	// ErrInvalidPortion is returned for a non-positive portion factor.
	ErrInvalidPortion = errors.New("portion factor must be > 0")
	// ErrInvalidGoal is returned when the daily goal is not a valid
	// progress denominator.
	ErrInvalidGoal = errors.New("daily goal must be > 0")
	// ErrInvalidGoalResult is returned when a goal suggestion carries a
	// non-positive calorie target.
	ErrInvalidGoalResult = errors.New("suggested daily calories must be > 0")
)
