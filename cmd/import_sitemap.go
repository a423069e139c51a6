package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importSitemapCmd imports the pages of a sitemap as WebPage entities.
var importSitemapCmd = &cobra.Command{
	Use:   "import-sitemap <url>",
	Short: "Import every page listed in a sitemap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadRuntime()
		if err != nil {
			return err
		}
		defer l.Sync()

		client, err := newGraphClient(cfg)
		if err != nil {
			return err
		}

		results, err := client.ImportSitemap(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("sitemap import failed: %w", err)
		}

		var failed int
		for _, r := range results {
			if r.Error != "" {
				failed++
				l.Warn("Page import failed", zap.String("url", r.URL), zap.String("error", r.Error))
			}
		}
		l.Info("Sitemap import report",
			zap.Int("total", len(results)),
			zap.Int("success", len(results)-failed),
			zap.Int("failed", failed),
		)
		if failed > 0 {
			return fmt.Errorf("%d of %d pages failed to import", failed, len(results))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importSitemapCmd)
}
