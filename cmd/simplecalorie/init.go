package simplecalorie

import (
	"database/sql"
	"fmt"

	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
	"github.com/spf13/cobra"
)

var (
	initGoal     float64
	initUnit     string
	initSendToAI bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up your daily goal, display unit, and AI consent",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := model.ParseUnit(initUnit)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			settings := model.UserSettings{
				DailyGoal:    initGoal,
				Unit:         unit,
				SendDataToAI: initSendToAI,
			}
			if err := service.InitializeSettings(sqldb, settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set up complete: daily goal %s, AI recognition %s\n",
				formatCalories(settings.DailyGoal, settings.Unit), onOff(settings.SendDataToAI))
			return nil
		})
	},
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Float64Var(&initGoal, "goal", 0, "Daily calorie goal (kcal)")
	initCmd.Flags().StringVar(&initUnit, "unit", "kcal", "Display unit: kcal or kj")
	initCmd.Flags().BoolVar(&initSendToAI, "send-to-ai", false, "Allow sending meal content to the AI provider")
	_ = initCmd.MarkFlagRequired("goal")
}
