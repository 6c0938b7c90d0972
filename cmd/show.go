package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mythosworks/lantern/internal/card"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [code]",
	Short: "Display detailed information about a card",
	Long: `Show displays a card's full details: classification, play attributes,
rules text and the fields derived at normalization time. Linked faces are
shown beneath their primary face.

Examples:
  lantern show 01001
  lantern show 01020`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		c, ok := cat.Get(args[0])
		if !ok {
			return fmt.Errorf("card not found: %s", args[0])
		}

		displayCard(c, false)
		if c.LinkedCard != nil {
			fmt.Println()
			displayCard(c.LinkedCard, true)
		}
		return nil
	},
}

func displayCard(c *card.Card, isBack bool) {
	title := color.New(color.Bold)
	faded := color.New(color.FgHiBlack)

	header := c.RenderName
	if isBack {
		header = c.Name + " (back)"
	}
	if c.IsUnique {
		header = "✦ " + header
	}
	title.Println(header)
	if c.RenderSubname != "" && !isBack {
		faded.Println(c.RenderSubname)
	}

	typeLine := c.TypeName
	if c.SubtypeName != "" {
		typeLine += " (" + c.SubtypeName + ")"
	}
	if c.Slot != "" {
		typeLine += " — " + c.Slot
	}
	fmt.Println(typeLine)

	if faction, ok := factionColors[c.FactionCode]; ok {
		faction.Println(c.FactionName)
	} else if c.FactionName != "" {
		fmt.Println(c.FactionName)
	}

	var stats []string
	if c.Cost != nil {
		stats = append(stats, fmt.Sprintf("Cost: %d", *c.Cost))
	}
	if c.XP != nil && *c.XP > 0 {
		stats = append(stats, fmt.Sprintf("Level: %d", *c.XP))
	}
	if c.Health != nil {
		stats = append(stats, fmt.Sprintf("Health: %d", *c.Health))
	}
	if c.Sanity != nil {
		stats = append(stats, fmt.Sprintf("Sanity: %d", *c.Sanity))
	}
	if c.EnemyFight != nil {
		stats = append(stats, fmt.Sprintf("Fight: %d", *c.EnemyFight))
	}
	if c.EnemyEvade != nil {
		stats = append(stats, fmt.Sprintf("Evade: %d", *c.EnemyEvade))
	}
	if c.Shroud != nil {
		stats = append(stats, fmt.Sprintf("Shroud: %d", *c.Shroud))
	}
	if c.Clues != nil {
		stats = append(stats, fmt.Sprintf("Clues: %d", *c.Clues))
	}
	if len(stats) > 0 {
		fmt.Println(strings.Join(stats, "  "))
	}

	if c.Traits != "" {
		color.New(color.Italic).Println(c.Traits)
	}
	if c.Text != "" {
		fmt.Println()
		fmt.Println(wrapText(c.Text, displayWidth()))
	}

	var derived []string
	if c.Uses != "" {
		derived = append(derived, "uses: "+c.Uses)
	}
	if c.HealsHorror {
		derived = append(derived, "heals horror")
	}
	if c.ESkillWillpower != nil {
		derived = append(derived, fmt.Sprintf("effective willpower: %d", *c.ESkillWillpower))
	}
	if len(derived) > 0 {
		fmt.Println()
		faded.Println(strings.Join(derived, ", "))
	}

	fmt.Println()
	pack := c.PackName
	if c.CycleName != "" && c.CycleName != c.PackName {
		pack += " (" + c.CycleName + ")"
	}
	faded.Printf("%s · #%d", pack, c.Position)
	if c.Illustrator != "" {
		faded.Printf(" · 🖌 %s", c.Illustrator)
	}
	fmt.Println()
}

func displayWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 && w < 100 {
		return w
	}
	return 78
}

// wrapText wraps text at word boundaries to fit the terminal
func wrapText(text string, width int) string {
	var out strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteString("\n")
		}
		length := 0
		for j, word := range strings.Fields(line) {
			if j > 0 {
				if length+1+len(word) > width {
					out.WriteString("\n")
					length = 0
				} else {
					out.WriteString(" ")
					length++
				}
			}
			out.WriteString(word)
			length += len(word)
		}
	}
	return out.String()
}
