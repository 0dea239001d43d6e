package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"inventory-sync/feature/inventory/projection"

	"github.com/spf13/cobra"
)

// projectionCmd represents the projection command
var projectionCmd = &cobra.Command{
	Use:   "projection [group]",
	Short: "Build the inventory projection from the database and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.refresher.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build projection: %w", err)
		}

		var out any = p
		if len(args) == 1 {
			nodes := p.Find(args[0])
			if len(nodes) == 0 {
				return fmt.Errorf("group %q is not in the projection", args[0])
			}
			out = struct {
				Name  string             `json:"name"`
				Nodes []*projection.Node `json:"nodes"`
			}{args[0], nodes}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	RootCmd.AddCommand(projectionCmd)
}
