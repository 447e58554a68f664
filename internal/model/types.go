package model

import (
	"fmt"
	"strings"
	"time"
)

// MealCategory is the fixed set of slots a logged meal can belong to.
type MealCategory string

const (
	CategoryBreakfast MealCategory = "Breakfast"
	CategoryLunch     MealCategory = "Lunch"
	CategoryDinner    MealCategory = "Dinner"
	CategorySnacks    MealCategory = "Snacks"
)

// MealCategories lists all categories in display order.
var MealCategories = []MealCategory{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategorySnacks,
}

func ParseMealCategory(value string) (MealCategory, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, c := range MealCategories {
		if strings.ToLower(string(c)) == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (expected breakfast, lunch, dinner, or snacks)", value)
}

// Unit is the display unit preference. Stored values are always kcal.
type Unit string

const (
	UnitKcal Unit = "kcal"
	UnitKJ   Unit = "kJ"
)

func ParseUnit(value string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "kcal":
		return UnitKcal, nil
	case "kj":
		return UnitKJ, nil
	}
	return "", fmt.Errorf("unknown unit %q (expected kcal or kj)", value)
}

// EntrySource records how an estimate was obtained. Informational only.
type EntrySource string

const (
	SourceText  EntrySource = "text"
	SourcePhoto EntrySource = "photo"
)

// LogEntry is one recorded meal. Calories holds the base kcal value
// from the estimate; the effective value shown and aggregated is
// Calories * PortionFactor. Entries are never updated in place.
type LogEntry struct {
	ID            string
	Date          string // YYYY-MM-DD, local day at creation
	Name          string
	Calories      int
	PortionFactor float64
	Category      MealCategory
	Source        EntrySource
	CreatedAt     time.Time
}

// UserSettings is the single per-installation configuration record.
// Nil until onboarding completes; replaced wholesale on update.
type UserSettings struct {
	DailyGoal    float64 // kcal, regardless of Unit
	Unit         Unit
	SendDataToAI bool
	UpdatedAt    time.Time
}

type AIBreakdownItem struct {
	ItemName string `json:"itemName"`
	Quantity string `json:"quantity"`
	Calories int    `json:"calories"`
}

// AIEstimate is the provider's answer for one meal. It is transient:
// only a confirmed LogEntry is persisted. The breakdown is surfaced as
// given and is not required to sum to EstimatedCalories.
type AIEstimate struct {
	MealName          string            `json:"mealName"`
	EstimatedCalories int               `json:"estimatedCalories"`
	Breakdown         []AIBreakdownItem `json:"breakdown"`
}

// GoalCalculationResult is the provider's daily-goal suggestion.
type GoalCalculationResult struct {
	DailyCalories int    `json:"dailyCalories"`
	Reasoning     string `json:"reasoning"`
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	}
	return "", fmt.Errorf("unknown gender %q (expected male, female, or other)", value)
}

type ActivityLevel string

const (
	ActivitySedentary   ActivityLevel = "Sedentary (little or no exercise)"
	ActivityLight       ActivityLevel = "Lightly active (light exercise/sports 1-3 days/week)"
	ActivityModerate    ActivityLevel = "Moderately active (moderate exercise/sports 3-5 days/week)"
	ActivityActive      ActivityLevel = "Very active (hard exercise/sports 6-7 days/week)"
	ActivityExtraActive ActivityLevel = "Extra active (very hard exercise & physical job)"
)

func ParseActivityLevel(value string) (ActivityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sedentary":
		return ActivitySedentary, nil
	case "light":
		return ActivityLight, nil
	case "moderate":
		return ActivityModerate, nil
	case "active":
		return ActivityActive, nil
	case "extra", "extra-active":
		return ActivityExtraActive, nil
	}
	return "", fmt.Errorf("unknown activity level %q (expected sedentary, light, moderate, active, or extra)", value)
}

type GoalTarget string

const (
	GoalLose     GoalTarget = "Lose Weight"
	GoalMaintain GoalTarget = "Maintain Weight"
	GoalGain     GoalTarget = "Gain Muscle"
)

func ParseGoalTarget(value string) (GoalTarget, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lose":
		return GoalLose, nil
	case "maintain":
		return GoalMaintain, nil
	case "gain":
		return GoalGain, nil
	}
	return "", fmt.Errorf("unknown goal target %q (expected lose, maintain, or gain)", value)
}

// UserProfile is the input to the goal-suggestion provider call. All
// fields are required before dispatch.
type UserProfile struct {
	Age           int
	Gender        Gender
	HeightCm      float64
	WeightKg      float64
	ActivityLevel ActivityLevel
	Goal          GoalTarget
}

// ImagePayload is an inline image sent to the AI provider.
type ImagePayload struct {
	Data     string // base64
	MimeType string
}
