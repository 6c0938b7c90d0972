package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mythosworks/lantern/internal/deck"
	"github.com/mythosworks/lantern/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck]",
	Short: "Check a deck against its investigator's deck-building rules",
	Long: `Validate checks a saved deck for legality: deck size, per-title copy
limits, faction and trait eligibility, limited card counts, and the
investigator's required cards. Only the first violation is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDeckPath(args[0])
		if err != nil {
			return err
		}
		d, err := deck.Load(path)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		investigator, err := d.InvestigatorCard(cat)
		if err != nil {
			return err
		}
		cards, err := d.Cards(cat)
		if err != nil {
			return err
		}

		problem := validator.New(investigator).Validate(cards)

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")
		if problem == nil {
			color.Green("✅ Deck '%s' is legal for %s.", d.Name, investigator.RenderName)
			return nil
		}

		color.Red("❌ Deck '%s' is not legal: %s", d.Name, problem.Message())
		for i, detail := range problem.Problems {
			fmt.Printf("%d. %s\n", i+1, detail)
		}
		return fmt.Errorf("validation failed")
	},
}
