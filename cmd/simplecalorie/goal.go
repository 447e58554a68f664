package simplecalorie

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mattmelloy/simplecalorie/internal/logger"
	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/provider/gemini"
	"github.com/mattmelloy/simplecalorie/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Estimate a daily calorie goal from your profile",
}

var (
	goalAge      int
	goalGender   string
	goalHeight   float64
	goalWeight   float64
	goalActivity string
	goalTarget   string
	goalAPIKey   string
	goalApply    bool
)

var goalEstimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Ask the AI for a suggested daily goal",
	Long:  "estimate sends your profile to the AI provider for a daily calorie suggestion. With --apply the suggestion replaces your daily goal; unit and AI consent are untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		gender, err := model.ParseGender(goalGender)
		if err != nil {
			return err
		}
		activity, err := model.ParseActivityLevel(goalActivity)
		if err != nil {
			return err
		}
		target, err := model.ParseGoalTarget(goalTarget)
		if err != nil {
			return err
		}
		profile := model.UserProfile{
			Age:           goalAge,
			Gender:        gender,
			HeightCm:      goalHeight,
			WeightKg:      goalWeight,
			ActivityLevel: activity,
			Goal:          target,
		}
		if err := service.ValidateProfile(profile); err != nil {
			return err
		}

		return withDB(func(sqldb *sql.DB) error {
			settings, err := requireSettings(sqldb)
			if err != nil {
				return err
			}

			client := &gemini.Client{APIKey: resolveAPIKey(goalAPIKey)}
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			result, _, err := client.CalculateGoal(ctx, profile)
			if err != nil {
				logger.Error("goal calculation failed", "err", err)
				return fmt.Errorf("could not calculate calorie goal: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Suggested daily goal: %d kcal\n", result.DailyCalories)
			fmt.Fprintf(cmd.OutOrStdout(), "Reasoning: %s\n", result.Reasoning)

			if !goalApply {
				fmt.Fprintln(cmd.OutOrStdout(), "Re-run with --apply to make this your daily goal.")
				return nil
			}

			updated, err := service.ApplyGoalResult(*settings, result)
			if err != nil {
				return err
			}
			if err := service.ReplaceSettings(sqldb, updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal updated to %s\n", formatCalories(updated.DailyGoal, updated.Unit))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalEstimateCmd)

	goalEstimateCmd.Flags().IntVar(&goalAge, "age", 0, "Age in years")
	goalEstimateCmd.Flags().StringVar(&goalGender, "gender", "", "Gender: male, female, or other")
	goalEstimateCmd.Flags().Float64Var(&goalHeight, "height", 0, "Height in cm")
	goalEstimateCmd.Flags().Float64Var(&goalWeight, "weight", 0, "Weight in kg")
	goalEstimateCmd.Flags().StringVar(&goalActivity, "activity", "", "Activity level: sedentary, light, moderate, active, or extra")
	goalEstimateCmd.Flags().StringVar(&goalTarget, "target", "", "Goal: lose, maintain, or gain")
	goalEstimateCmd.Flags().StringVar(&goalAPIKey, "api-key", "", "Gemini API key (falls back to env, then keyring)")
	goalEstimateCmd.Flags().BoolVar(&goalApply, "apply", false, "Apply the suggestion to your settings")
	_ = goalEstimateCmd.MarkFlagRequired("age")
	_ = goalEstimateCmd.MarkFlagRequired("gender")
	_ = goalEstimateCmd.MarkFlagRequired("height")
	_ = goalEstimateCmd.MarkFlagRequired("weight")
	_ = goalEstimateCmd.MarkFlagRequired("activity")
	_ = goalEstimateCmd.MarkFlagRequired("target")
}
