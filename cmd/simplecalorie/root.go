package simplecalorie

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattmelloy/simplecalorie/internal/app"
	"github.com/mattmelloy/simplecalorie/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dbPath    string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "simplecalorie",
	Short: "simplecalorie logs meals with AI calorie estimates from your terminal",
	Long:  "simplecalorie is a local-first meal logging CLI: describe a meal or point at a photo, let Gemini estimate the calories, adjust the portion, and track progress against your daily goal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the app runs in demo mode without a key.
		_ = godotenv.Load()

		configDir, err := app.ConfigDir()
		if err != nil {
			return err
		}
		return logger.Init(logger.Config{Debug: debugMode, ConfigDir: configDir})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to stderr")
}
