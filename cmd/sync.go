package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"inventory-sync/feature/inventory/syncer"

	"github.com/spf13/cobra"
)

var noProjectionFlag bool

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:       "sync [phase...]",
	Short:     "Run a single sync cycle",
	Long:      `Runs one sync cycle, optionally restricted to the named phases, and prints its report as JSON.`,
	ValidArgs: syncer.Phases,
	Args:      cobra.OnlyValidArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.Migrate(ctx); err != nil {
			return err
		}
		orch, err := a.orchestrator()
		if err != nil {
			return err
		}

		report, err := orch.RunCycle(ctx, syncer.Options{Phases: args, SkipProjection: noProjectionFlag})
		if report != nil {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(report)
		}
		return err
	},
}

func init() {
	syncCmd.Flags().BoolVar(&noProjectionFlag, "no-projection", false, "Skip the projection rebuild after the phases")
	RootCmd.AddCommand(syncCmd)
}
