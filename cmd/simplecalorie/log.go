package simplecalorie

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mattmelloy/simplecalorie/internal/logger"
	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/provider/gemini"
	"github.com/mattmelloy/simplecalorie/internal/service"
	"github.com/spf13/cobra"
)

var (
	logText         string
	logImage        string
	logPortion      float64
	logCategory     string
	logAPIKey       string
	logEstimateOnly bool
)

const (
	textAnalysisPrompt  = `Analyze the following meal description and provide a JSON response with the meal's name, total estimated calorie count, and a detailed breakdown of each food item with its quantity and individual calories. Description: %q`
	photoAnalysisPrompt = "Analyze the meal in this image and provide a JSON response with a descriptive name, the total estimated calorie count, and a detailed breakdown of each food item with its quantity and individual calories."
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Estimate a meal with AI and save it to today's log",
	Long:  "log sends a meal description or photo to the AI provider, shows the estimate, and saves a log entry for today. Without an API key a fixed sample estimate is used so the flow stays usable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(logText) == "" && strings.TrimSpace(logImage) == "" {
			return fmt.Errorf("provide --text or --image")
		}
		category, err := model.ParseMealCategory(logCategory)
		if err != nil && !logEstimateOnly {
			return err
		}

		return withDB(func(sqldb *sql.DB) error {
			settings, err := requireSettings(sqldb)
			if err != nil {
				return err
			}
			if !settings.SendDataToAI {
				return fmt.Errorf("AI recognition is disabled in settings; enable it with 'simplecalorie settings set'")
			}

			client := &gemini.Client{APIKey: resolveAPIKey(logAPIKey)}

			var (
				prompt string
				image  *model.ImagePayload
				source model.EntrySource
			)
			if strings.TrimSpace(logImage) != "" {
				image, err = loadImagePayload(logImage)
				if err != nil {
					return err
				}
				prompt = photoAnalysisPrompt
				source = model.SourcePhoto
			} else {
				prompt = fmt.Sprintf(textAnalysisPrompt, logText)
				source = model.SourceText
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			est, _, err := client.AnalyzeMeal(ctx, prompt, image)
			if err != nil {
				logger.Error("meal analysis failed", "err", err)
				return fmt.Errorf("could not get calorie estimate from AI: %w", err)
			}
			logger.Debug("meal analyzed", "name", est.MealName, "calories", est.EstimatedCalories)

			printEstimate(cmd, est, *settings)

			if logEstimateOnly {
				fmt.Fprintln(cmd.OutOrStdout(), "Estimate only; nothing saved.")
				return nil
			}

			today := service.Today(time.Now())
			entry, err := service.ConfirmEstimate(est, logPortion, category, source, today)
			if err != nil {
				return err
			}
			if err := service.InsertEntry(sqldb, entry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %q (%s, portion x%.2f, %s) as %s\n",
				entry.Name, entry.Category, entry.PortionFactor,
				formatCalories(service.EffectiveCalories(entry), settings.Unit), entry.ID)
			return nil
		})
	},
}

func printEstimate(cmd *cobra.Command, est model.AIEstimate, settings model.UserSettings) {
	fmt.Fprintf(cmd.OutOrStdout(), "Estimate: %s (%s)\n", est.MealName, formatCalories(float64(est.EstimatedCalories), settings.Unit))
	for _, item := range est.Breakdown {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\t%s\n", item.ItemName, item.Quantity, formatCalories(float64(item.Calories), settings.Unit))
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logText, "text", "", "Free-text meal description")
	logCmd.Flags().StringVar(&logImage, "image", "", "Path to a meal photo (.jpg, .png, or .webp)")
	logCmd.Flags().Float64Var(&logPortion, "portion", 1.0, "Portion factor applied to the estimate")
	logCmd.Flags().StringVar(&logCategory, "category", "", "Meal category: breakfast, lunch, dinner, or snacks")
	logCmd.Flags().StringVar(&logAPIKey, "api-key", "", "Gemini API key (falls back to env, then keyring)")
	logCmd.Flags().BoolVar(&logEstimateOnly, "estimate-only", false, "Show the estimate without saving an entry")
}
