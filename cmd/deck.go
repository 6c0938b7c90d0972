package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mythosworks/lantern/internal/config"
	"github.com/mythosworks/lantern/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage saved decks in your deck library",
	Long:  `Commands for creating, editing and listing saved decks.`,
}

var deckNewInvestigator string

var deckNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create an empty deck for an investigator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if deckNewInvestigator == "" {
			return fmt.Errorf("--investigator is required")
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		investigator, ok := cat.Get(deckNewInvestigator)
		if !ok {
			return fmt.Errorf("investigator %s not in catalog", deckNewInvestigator)
		}
		if investigator.TypeCode != "investigator" {
			return fmt.Errorf("card %s is not an investigator", deckNewInvestigator)
		}

		d := deck.New(name, deckNewInvestigator)
		path, err := deckPath(name)
		if err != nil {
			return err
		}
		if err := d.Save(path); err != nil {
			return err
		}

		fmt.Printf("Created deck %s for %s at %s\n", name, investigator.RenderName, path)
		return nil
	},
}

var deckAddCount int

var deckAddCmd = &cobra.Command{
	Use:   "add [deck] [code]",
	Short: "Add copies of a card to a deck",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDeckPath(args[0])
		if err != nil {
			return err
		}
		d, err := deck.Load(path)
		if err != nil {
			return err
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		c, ok := cat.Get(args[1])
		if !ok {
			return fmt.Errorf("card %s not in catalog", args[1])
		}

		d.SetSlot(args[1], d.Slots[args[1]]+deckAddCount)
		if err := d.Save(path); err != nil {
			return err
		}

		fmt.Printf("%s now has %d × %s (%d cards total)\n",
			d.Name, d.Slots[args[1]], c.RenderName, d.Size())
		return nil
	},
}

var deckRemoveCmd = &cobra.Command{
	Use:   "remove [deck] [code] [count]",
	Short: "Remove copies of a card from a deck",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDeckPath(args[0])
		if err != nil {
			return err
		}
		d, err := deck.Load(path)
		if err != nil {
			return err
		}

		count := 1
		if len(args) == 3 {
			count, err = strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("bad count: %v", err)
			}
		}
		d.SetSlot(args[1], d.Slots[args[1]]-count)
		if err := d.Save(path); err != nil {
			return err
		}

		fmt.Printf("%s now has %d cards\n", d.Name, d.Size())
		return nil
	},
}

var deckShowCmd = &cobra.Command{
	Use:   "show [deck]",
	Short: "Show a deck's contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDeckPath(args[0])
		if err != nil {
			return err
		}
		d, err := deck.Load(path)
		if err != nil {
			return err
		}
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		investigator, err := d.InvestigatorCard(cat)
		if err != nil {
			return err
		}
		color.New(color.Bold).Printf("%s — %s (%d cards)\n", d.Name, investigator.RenderName, d.Size())

		codes := make([]string, 0, len(d.Slots))
		for code := range d.Slots {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			name := code
			if c, ok := cat.Get(code); ok {
				name = c.RenderName
				if c.Level() > 0 {
					name = fmt.Sprintf("%s (%d)", name, c.Level())
				}
			}
			fmt.Printf("  %d × %s\n", d.Slots[code], name)
		}
		return nil
	},
}

var deckImportCmd = &cobra.Command{
	Use:   "import [decklist.yaml]",
	Short: "Import a YAML deck list into the deck library",
	Long: `Import reads a YAML deck list of the form:

  name: My Deck
  investigator: "01001"
  cards:
    - code: "01020"
      count: 2

and saves it as a deck in the library.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.ImportYAML(args[0])
		if err != nil {
			return fmt.Errorf("error importing deck list: %w", err)
		}
		if d.Name == "" {
			d.Name = filepath.Base(args[0])
		}

		path, err := deckPath(d.Name)
		if err != nil {
			return err
		}
		if err := d.Save(path); err != nil {
			return err
		}

		fmt.Printf("Imported %s (%d cards) to %s\n", d.Name, d.Size(), path)
		return nil
	},
}

var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()
		entries, err := os.ReadDir(libraryPath)
		if os.IsNotExist(err) {
			fmt.Println("No decks found in your deck library.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		found := false
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
				continue
			}
			d, err := deck.Load(filepath.Join(libraryPath, entry.Name()))
			if err != nil {
				fmt.Printf("  %s (unreadable: %v)\n", entry.Name(), err)
				continue
			}
			found = true
			fmt.Printf("  %-24s %s, %d cards\n", d.Name, d.Investigator, d.Size())
		}
		if !found {
			fmt.Println("No decks found in your deck library.")
		}
		return nil
	},
}

// deckPath places a named deck inside the library directory.
func deckPath(name string) (string, error) {
	libraryPath := config.GetDeckLibraryPath()
	if err := os.MkdirAll(libraryPath, 0755); err != nil {
		return "", fmt.Errorf("error creating deck library: %w", err)
	}
	return filepath.Join(libraryPath, name+".toml"), nil
}

// resolveDeckPath accepts either a deck name from the library or a path to a
// deck file.
func resolveDeckPath(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	path := filepath.Join(config.GetDeckLibraryPath(), name+".toml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("deck not found: %s", name)
}

func init() {
	deckNewCmd.Flags().StringVar(&deckNewInvestigator, "investigator", "", "investigator card code")
	deckAddCmd.Flags().IntVarP(&deckAddCount, "count", "n", 1, "number of copies to add")

	deckCmd.AddCommand(deckNewCmd)
	deckCmd.AddCommand(deckAddCmd)
	deckCmd.AddCommand(deckRemoveCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckImportCmd)
	deckCmd.AddCommand(deckListCmd)
}
