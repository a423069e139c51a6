package cmd

import (
	"fmt"

	"kg-sync/core/source"
	"kg-sync/core/validation"

	"github.com/spf13/cobra"
)

var validateStrict bool

// validateCmd validates a JSON-LD file offline.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate JSON-LD entities",
	Long: `Validates the entities of a JSON-LD file (one object or an array) against
the schema.org shapes and prints the report. Exits non-zero when any entity
is invalid. No API key is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := source.File(args[0])
		if err != nil {
			return err
		}

		res := validation.New().ValidateBatch(docs, validateStrict)
		fmt.Println(validation.Report(res))
		if res.Invalid > 0 {
			return fmt.Errorf("%d of %d entities are invalid", res.Invalid, res.Total)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat missing recommended fields as errors")
	RootCmd.AddCommand(validateCmd)
}
