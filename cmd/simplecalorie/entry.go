package simplecalorie

import (
	"database/sql"
	"fmt"

	"github.com/mattmelloy/simplecalorie/internal/service"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage logged meals",
}

var (
	listDate     string
	listCategory string
	listLimit    int
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := requireSettings(sqldb)
			if err != nil {
				return err
			}
			entries, err := service.ListEntries(sqldb, service.ListEntriesFilter{
				Date:     listDate,
				Category: listCategory,
				Limit:    listLimit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tCATEGORY\tNAME\tPORTION\tEFFECTIVE\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\tx%.2f\t%s\t%s\n",
					e.ID, e.Date, e.Category, e.Name, e.PortionFactor,
					formatCalories(service.EffectiveCalories(e), settings.Unit), e.Source)
			}
			return nil
		})
	},
}

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := requireSettings(sqldb)
			if err != nil {
				return err
			}
			e, err := service.EntryByID(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", e.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", e.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Category: %s\n", e.Category)
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", e.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Base calories: %d kcal\n", e.Calories)
			fmt.Fprintf(cmd.OutOrStdout(), "Portion: x%.2f\n", e.PortionFactor)
			fmt.Fprintf(cmd.OutOrStdout(), "Effective: %s\n", formatCalories(service.EffectiveCalories(e), settings.Unit))
			fmt.Fprintf(cmd.OutOrStdout(), "Source: %s\n", e.Source)
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			deleted, err := service.DeleteEntry(sqldb, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry %s; nothing deleted\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryListCmd, entryShowCmd, entryDeleteCmd)

	entryListCmd.Flags().StringVar(&listDate, "date", "", "Filter by date YYYY-MM-DD")
	entryListCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	entryListCmd.Flags().IntVar(&listLimit, "limit", 0, "Result limit (0 = all)")
}
