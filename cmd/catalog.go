package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mythosworks/lantern/internal/catalog"
	"github.com/mythosworks/lantern/internal/config"
	"github.com/mythosworks/lantern/internal/store"
)

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local card catalog",
	Long:  `Commands for configuring, indexing and inspecting the local card catalog.`,
}

var catalogSetCmd = &cobra.Command{
	Use:   "set [cards.json] [packs.json] [cycles.json]",
	Short: "Point the catalog at raw card data files",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg.CardsFile, err = filepath.Abs(args[0])
		if err != nil {
			return err
		}
		cfg.PacksFile, err = filepath.Abs(args[1])
		if err != nil {
			return err
		}
		cfg.CyclesFile, err = filepath.Abs(args[2])
		if err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		fmt.Println("Catalog files configured.")
		return nil
	},
}

// catalogIndexCmd rebuilds the search index from the configured raw files.
var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Normalize the catalog and rebuild the search index",
	Long: `Index loads the configured raw card files, derives every computed field,
and rebuilds the local search index from scratch. Run it again after the raw
files change; the index is always rebuilt wholesale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		s, err := store.Open(config.GetIndexPath(), newLogger())
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Rebuild(cat.Cards); err != nil {
			return fmt.Errorf("error rebuilding index: %w", err)
		}

		color.Green("Indexed %d cards.", len(cat.Cards))
		return nil
	},
}

var catalogInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show catalog and index statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if !cfg.CatalogConfigured() {
			return fmt.Errorf("no catalog configured; run 'lantern catalog set' first")
		}

		fmt.Println("Catalog files:")
		fmt.Printf("  cards:  %s\n", cfg.CardsFile)
		fmt.Printf("  packs:  %s\n", cfg.PacksFile)
		fmt.Printf("  cycles: %s\n", cfg.CyclesFile)

		s, err := store.Open(config.GetIndexPath(), newLogger())
		if err != nil {
			return err
		}
		defer s.Close()

		count, err := s.Count()
		if err != nil {
			return err
		}
		fmt.Printf("Indexed cards: %d (%s)\n", count, s.Path())
		return nil
	},
}

// loadCatalog reads and normalizes the configured raw catalog.
func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.CatalogConfigured() {
		return nil, fmt.Errorf("no catalog configured; run 'lantern catalog set' first")
	}
	cat, err := catalog.Load(cfg.CardsFile, cfg.PacksFile, cfg.CyclesFile, newLogger())
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return cat, nil
}

func init() {
	catalogCmd.AddCommand(catalogSetCmd)
	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogInfoCmd)
}
