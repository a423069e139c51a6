package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"kg-sync/core/kg"
	"kg-sync/feature/verify"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyNoGraphQL bool

// verifyCmd checks that entities are persisted.
var verifyCmd = &cobra.Command{
	Use:   "verify <iri>...",
	Short: "Verify that entities are persisted",
	Long: `Checks each IRI: identifier pattern, .html and .json dereference and,
when an API key is configured, presence in the GraphQL index. Exits non-zero
when any entity is not persisted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadRuntime()
		if err != nil {
			return err
		}
		defer l.Sync()

		var client kg.Client
		if c, err := kg.NewClient(cfg.API); err != nil {
			l.Warn("GraphQL check disabled", zap.Error(err))
		} else {
			client = c
		}

		svc := verify.NewService(client, http.DefaultClient, l)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		var failed int
		for _, iri := range args {
			report := svc.Verify(cmd.Context(), iri, !verifyNoGraphQL)
			if !report.Dereferenceable {
				failed++
			}
			if err := enc.Encode(report); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d entities are not persisted", failed, len(args))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyNoGraphQL, "no-graphql", false, "Skip the GraphQL index check")
	RootCmd.AddCommand(verifyCmd)
}
