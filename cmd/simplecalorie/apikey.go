package simplecalorie

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattmelloy/simplecalorie/internal/keyring"
	"github.com/spf13/cobra"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the Gemini API key in the OS keyring",
	Long:  "apikey stores the Gemini API key in the OS keyring. Without a key the app still works and returns fixed sample estimates.",
}

var apikeySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !keyring.IsAvailable() {
			return fmt.Errorf("OS keyring is not available; set SIMPLECALORIE_GEMINI_API_KEY instead")
		}
		if err := keyring.SetAPIKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key stored")
		return nil
	},
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether an API key is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := keyring.GetAPIKey()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key stored (demo mode)")
				return nil
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key stored: %s\n", maskKey(key))
		return nil
	},
}

var apikeyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keyring.DeleteAPIKey(); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key stored; nothing deleted")
				return nil
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key deleted")
		return nil
	},
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeySetCmd, apikeyShowCmd, apikeyDeleteCmd)
}
