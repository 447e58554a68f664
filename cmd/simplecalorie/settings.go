package simplecalorie

import (
	"database/sql"
	"fmt"

	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := requireSettings(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %s\n", formatCalories(settings.DailyGoal, settings.Unit))
			fmt.Fprintf(cmd.OutOrStdout(), "Unit: %s\n", settings.Unit)
			fmt.Fprintf(cmd.OutOrStdout(), "AI recognition: %s\n", onOff(settings.SendDataToAI))
			return nil
		})
	},
}

var (
	setGoal     float64
	setUnit     string
	setSendToAI bool
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace settings",
	Long:  "set replaces the whole settings record; all three flags are required so there is never a partial update.",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := model.ParseUnit(setUnit)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			next := model.UserSettings{
				DailyGoal:    setGoal,
				Unit:         unit,
				SendDataToAI: setSendToAI,
			}
			if err := service.ReplaceSettings(sqldb, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings updated: daily goal %s, AI recognition %s\n",
				formatCalories(next.DailyGoal, next.Unit), onOff(next.SendDataToAI))
			return nil
		})
	},
}

var clearLogsYes bool

var settingsClearLogsCmd = &cobra.Command{
	Use:   "clear-logs",
	Short: "Delete all logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearLogsYes {
			return fmt.Errorf("this deletes every logged meal and cannot be undone; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB) error {
			deleted, err := service.ClearAllLogs(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries\n", deleted)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsClearLogsCmd)

	settingsSetCmd.Flags().Float64Var(&setGoal, "goal", 0, "Daily calorie goal (kcal)")
	settingsSetCmd.Flags().StringVar(&setUnit, "unit", "", "Display unit: kcal or kj")
	settingsSetCmd.Flags().BoolVar(&setSendToAI, "send-to-ai", false, "Allow sending meal content to the AI provider")
	_ = settingsSetCmd.MarkFlagRequired("goal")
	_ = settingsSetCmd.MarkFlagRequired("unit")
	_ = settingsSetCmd.MarkFlagRequired("send-to-ai")

	settingsClearLogsCmd.Flags().BoolVar(&clearLogsYes, "yes", false, "Confirm deleting all logged meals")
}
