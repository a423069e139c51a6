package cmd

import (
	"fmt"

	"kg-sync/core/config"
	"kg-sync/core/identity"

	"github.com/spf13/cobra"
)

var (
	idSerial string
	idLot    string
)

// idCmd groups the identifier helpers. None of them call the API.
var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Generate and inspect entity identifiers",
}

var idProductCmd = &cobra.Command{
	Use:   "product <gtin>",
	Short: "Print the Digital Link identifier of a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := datasetURI()
		if err != nil {
			return err
		}
		id, err := identity.BuildProductID(base, args[0], idSerial, idLot)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var idEntityCmd = &cobra.Command{
	Use:   "entity <class> <name>",
	Short: "Print the identifier of a non-product entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := datasetURI()
		if err != nil {
			return err
		}
		if identity.Slugify(args[1]) == "" {
			return fmt.Errorf("%q: %w", args[1], identity.ErrEmptySlug)
		}
		fmt.Println(identity.BuildEntityID(base, args[0], args[1]))
		return nil
	},
}

var idExtractCmd = &cobra.Command{
	Use:   "extract <iri>",
	Short: "Print the GTIN-14 embedded in a product identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, ok := identity.ExtractTradeCode(args[0])
		if !ok {
			return fmt.Errorf("no trade code in %q", args[0])
		}
		fmt.Println(code)
		return nil
	},
}

func datasetURI() (string, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg.DatasetURI()
}

func init() {
	idProductCmd.Flags().StringVar(&idSerial, "serial", "", "Serial number (AI 21)")
	idProductCmd.Flags().StringVar(&idLot, "lot", "", "Lot number (AI 10)")

	idCmd.AddCommand(idProductCmd, idEntityCmd, idExtractCmd)
	RootCmd.AddCommand(idCmd)
}
