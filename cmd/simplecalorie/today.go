package simplecalorie

import (
	"database/sql"
	"fmt"

	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's total, progress toward goal, and meals by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrToday(todayDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			settings, err := requireSettings(sqldb)
			if err != nil {
				return err
			}
			summary, err := service.SummarizeDay(sqldb, day, *settings)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", summary.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Consumed: %s\n", formatCalories(summary.TotalCalories, settings.Unit))
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\n", formatCalories(settings.DailyGoal, settings.Unit))
			fmt.Fprintf(cmd.OutOrStdout(), "Progress: %d%%\n", summary.ProgressPercent)

			if len(summary.Entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meals logged.")
				return nil
			}
			for _, category := range model.MealCategories {
				group, ok := summary.Grouped[category]
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", category)
				for _, e := range group {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\t(x%.2f)\t%s\n",
						e.ID, e.Name, e.PortionFactor, formatCalories(service.EffectiveCalories(e), settings.Unit))
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Day to summarize (YYYY-MM-DD, default today)")
}
