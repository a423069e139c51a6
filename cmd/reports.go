package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"kg-sync/core/storage"
	"kg-sync/feature/catalog"

	"github.com/spf13/cobra"
)

// reportsCmd lists the run reports stored by sync --report.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List stored run reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadRuntime()
		if err != nil {
			return err
		}
		defer l.Sync()

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		list, err := catalog.NewReports(store, cfg.Storage.Bucket, cfg.Storage.ReportPrefix).List(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	},
}

func init() {
	RootCmd.AddCommand(reportsCmd)
}
