package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"kg-sync/core/reconcile"
	"kg-sync/core/source"
	"kg-sync/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	entityYes   bool
	upgradeType string
	upgradeSet  []string
)

// entityCmd groups single-entity operations.
var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Read, write or delete entities",
}

var entityGetCmd = &cobra.Command{
	Use:   "get <iri>",
	Short: "Print the indexed fields of an entity",
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
		entity, err := client.GetEntity(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", args[0], err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entity)
	},
}

var entityDeleteCmd = &cobra.Command{
	Use:   "delete <iri>",
	Short: "Delete an entity",
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

		iri := args[0]
		if !confirm(fmt.Sprintf("Delete %s?", iri), entityYes) {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		if err := client.DeleteEntity(cmd.Context(), iri); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iri, err)
		}
		l.Info("Deleted entity", zap.String("iri", iri))
		return nil
	},
}

var entityCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create the entities of a JSON-LD file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeEntities(cmd, args[0], false)
	},
}

var entityUpsertCmd = &cobra.Command{
	Use:   "upsert <file>",
	Short: "Create or replace the entities of a JSON-LD file by @id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeEntities(cmd, args[0], true)
	},
}

var entityPatchCmd = &cobra.Command{
	Use:   "patch <file>",
	Short: "Replace the properties of each entity in a JSON-LD file",
	Long: `Each object in the file names its entity with @id. Every other property
replaces the stored value; a null property is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := source.File(args[0])
		if err != nil {
			return err
		}
		svc, l, err := newCatalogService()
		if err != nil {
			return err
		}
		defer l.Sync()

		for _, doc := range docs {
			res, err := svc.PatchEntity(cmd.Context(), doc)
			if err != nil {
				return fmt.Errorf("failed to patch %v: %w", doc["@id"], err)
			}
			fmt.Printf("%s: %d change(s)\n", res.ID, len(res.Ops))
		}
		return nil
	},
}

var entityUpgradeCmd = &cobra.Command{
	Use:   "upgrade <iri>",
	Short: "Change the type of an entity and set properties",
	Long: `Fetches the entity, applies the new type and properties, and writes it back.
The stored name, description, url and image are kept unless --set overrides
them. --set values that parse as JSON are used as such, anything else as a
string.`,
	Example: `  kg-sync entity upgrade https://data.example.com/shop/place/rome --type TouristDestination --set alternateName=Roma`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := parseProperties(upgradeSet)
		if err != nil {
			return err
		}
		svc, l, err := newCatalogService()
		if err != nil {
			return err
		}
		defer l.Sync()

		doc, err := svc.UpgradeEntity(cmd.Context(), catalog.UpgradeRequest{
			IRI:        args[0],
			Type:       upgradeType,
			Properties: props,
		})
		if err != nil {
			return fmt.Errorf("failed to upgrade %s: %w", args[0], err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func writeEntities(cmd *cobra.Command, file string, upsert bool) error {
	docs, err := source.File(file)
	if err != nil {
		return err
	}
	svc, l, err := newCatalogService()
	if err != nil {
		return err
	}
	defer l.Sync()

	write := svc.CreateEntities
	if upsert {
		write = svc.UpsertEntities
	}
	res, err := write(cmd.Context(), docs)
	if res != nil {
		for _, id := range res.Written {
			fmt.Println(id)
		}
	}
	if err != nil {
		return err
	}
	l.Info("Wrote entities", zap.String("file", file), zap.Int("count", len(res.Written)))
	return nil
}

// newCatalogService builds a catalog service for single-entity commands.
func newCatalogService() (*catalog.Service, *zap.Logger, error) {
	cfg, l, err := loadRuntime()
	if err != nil {
		return nil, nil, err
	}
	client, err := newGraphClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewService(client, "", reconcile.Options{}, nil, nil, l), l, nil
}

// parseProperties reads k=v pairs. A value that is valid JSON is decoded.
func parseProperties(pairs []string) (map[string]any, error) {
	props := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid property %q, expected key=value", pair)
		}
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			props[k] = decoded
		} else {
			props[k] = v
		}
	}
	return props, nil
}

func init() {
	entityUpgradeCmd.Flags().StringVar(&upgradeType, "type", "", "New schema.org type")
	entityUpgradeCmd.Flags().StringArrayVar(&upgradeSet, "set", nil, "Property to set as key=value (repeatable)")

	entityDeleteCmd.Flags().BoolVar(&entityYes, "yes", false, "Skip the confirmation prompt")

	entityCmd.AddCommand(entityGetCmd, entityCreateCmd, entityUpsertCmd, entityPatchCmd, entityUpgradeCmd, entityDeleteCmd)
	RootCmd.AddCommand(entityCmd)
}
