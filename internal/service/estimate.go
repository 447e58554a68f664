package service

import (
	"fmt"
	"strings"

	"github.com/mattmelloy/simplecalorie/internal/model"
)

// ValidateEstimate checks the structural contract of a provider
// estimate: non-empty meal name, non-negative total, and a breakdown
// whose items each carry a name, a quantity string, and non-negative
// calories. Validation is shape-only; the breakdown is not required to
// sum to the total and no plausibility checks are attempted. Malformed
// estimates must never reach persistence.
func ValidateEstimate(est model.AIEstimate) error {
	if strings.TrimSpace(est.MealName) == "" {
		return fmt.Errorf("%w: meal name is empty", ErrInvalidEstimateFormat)
	}
	if est.EstimatedCalories < 0 {
		return fmt.Errorf("%w: estimated calories %d is negative", ErrInvalidEstimateFormat, est.EstimatedCalories)
	}
	if est.Breakdown == nil {
		return fmt.Errorf("%w: breakdown is missing", ErrInvalidEstimateFormat)
	}
	for i, item := range est.Breakdown {
		if strings.TrimSpace(item.ItemName) == "" {
			return fmt.Errorf("%w: breakdown item %d has no name", ErrInvalidEstimateFormat, i)
		}
		if strings.TrimSpace(item.Quantity) == "" {
			return fmt.Errorf("%w: breakdown item %d (%s) has no quantity", ErrInvalidEstimateFormat, i, item.ItemName)
		}
		if item.Calories < 0 {
			return fmt.Errorf("%w: breakdown item %d (%s) has negative calories", ErrInvalidEstimateFormat, i, item.ItemName)
		}
	}
	return nil
}
