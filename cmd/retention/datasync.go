package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/retention/internal/database"
	"github.com/at-ishikawa/retention/internal/datasync"
)

func newImportCommand() *cobra.Command {
	var seedFile string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import seed items from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL != "" {
				return errRemoteUnsupported
			}
			seeds, err := datasync.NewYAMLSeedSource(seedFile).ReadAll()
			if err != nil {
				return fmt.Errorf("read seeds: %w", err)
			}

			store, err := openLocalStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.close() }()

			out := cmd.OutOrStdout()
			result, err := datasync.NewImporter(store.manager, out).ImportSeeds(cmd.Context(), seeds, datasync.ImportOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("import seeds: %w", err)
			}

			fmt.Fprintln(out, "\nImport Summary:")
			if dryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Items:  %d new, %d skipped\n", result.ItemsNew, result.ItemsSkipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedFile, "file", "schemas/seeds.yml", "seed YAML file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the store")
	return cmd
}

func newExportCommand() *cobra.Command {
	var ownerID, outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an owner's items to <output-dir>/<owner>.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL != "" {
				return errRemoteUnsupported
			}
			store, err := openLocalStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.close() }()

			items, err := datasync.NewExporter(store.repo).Export(cmd.Context(), ownerID)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			path, err := datasync.NewYAMLItemSink(outputDir).WriteAll(ownerID, items)
			if err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(items), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner of the items")
	cmd.Flags().StringVar(&outputDir, "output-dir", "export", "output directory")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the item and review log tables in the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			version, err := database.Migrate(cfg.Storage, cfg.Database)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s database to version %d\n", cfg.Storage.Driver, version)
			return nil
		},
	}
}
