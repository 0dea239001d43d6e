package cmd

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database schema against the models",
	Long:  `Reports missing tables and columns of every synchronized table. Exits non-zero on mismatch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.store.CheckSchema(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if !report.Matched {
			return errors.New("schema does not match the models, run `inventory-sync sync` to migrate")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
