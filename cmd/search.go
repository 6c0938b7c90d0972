package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mythosworks/lantern/internal/config"
	"github.com/mythosworks/lantern/internal/filter"
	"github.com/mythosworks/lantern/internal/store"
)

var searchFlags struct {
	factions     []string
	cycles       []string
	types        []string
	subtypes     []string
	packs        []string
	encounters   []string
	illustrators []string
	traits       []string
	slots        []string
	uses         []string

	cost   string
	level  string
	shroud string
	clues  string
	fight  string
	evade  string

	fast      bool
	unique    bool
	permanent bool
	exile     bool

	exceptional    bool
	nonExceptional bool
	victory        bool

	skills      []string
	doubleIcons bool

	elite     bool
	nonElite  bool
	hunter    bool
	nonHunter bool
	retaliate bool
	alert     bool
	parley    bool
	spawn     bool
	prey      bool
	aloof     bool
	massive   bool

	sortMode   string
	printQuery bool
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the indexed catalog with structured filters",
	Long: `Search compiles the selected filters into a query and runs it against the
local index. Range filters accept a single value ("2") or an inclusive range
("1-3").

Examples:
  lantern search --faction guardian --faction seeker --cost 2
  lantern search --trait Tome --level 0-2 --sort faction
  lantern search --shroud 1-3 --print-query`,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := buildCriteria()
		if err != nil {
			return err
		}
		query := filter.Compile(criteria)

		if searchFlags.printQuery {
			for _, clause := range filter.Serialize(query) {
				fmt.Println(clause)
			}
			return nil
		}

		s, err := store.Open(config.GetIndexPath(), newLogger())
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.Search(query, store.SortMode(searchFlags.sortMode))
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		printResults(results)
		return nil
	},
}

func buildCriteria() (*filter.Criteria, error) {
	c := filter.DefaultCriteria()
	c.Factions = searchFlags.factions
	c.CycleNames = searchFlags.cycles
	c.Types = searchFlags.types
	c.SubTypes = searchFlags.subtypes
	c.Packs = searchFlags.packs
	c.Encounters = searchFlags.encounters
	c.Illustrators = searchFlags.illustrators
	c.Traits = searchFlags.traits

	if len(searchFlags.slots) > 0 || len(searchFlags.uses) > 0 ||
		searchFlags.fast || searchFlags.unique || searchFlags.permanent || searchFlags.exile {
		c.PlayerFiltersEnabled = true
		c.Slots = searchFlags.slots
		c.Uses = searchFlags.uses
		c.Fast = searchFlags.fast
		c.Unique = searchFlags.unique
		c.Permanent = searchFlags.permanent
		c.Exile = searchFlags.exile
	}

	var err error
	if c.CostEnabled, c.Cost, err = parseRange(searchFlags.cost, c.Cost); err != nil {
		return nil, fmt.Errorf("bad --cost: %w", err)
	}
	if c.LevelEnabled, c.Level, err = parseRange(searchFlags.level, c.Level); err != nil {
		return nil, fmt.Errorf("bad --level: %w", err)
	}
	if c.LevelEnabled {
		c.Exceptional = searchFlags.exceptional
		c.NonExceptional = searchFlags.nonExceptional
	}
	if c.ShroudEnabled, c.Shroud, err = parseRange(searchFlags.shroud, c.Shroud); err != nil {
		return nil, fmt.Errorf("bad --shroud: %w", err)
	}
	if c.CluesEnabled, c.Clues, err = parseRange(searchFlags.clues, c.Clues); err != nil {
		return nil, fmt.Errorf("bad --clues: %w", err)
	}
	if c.EnemyFightEnabled, c.EnemyFight, err = parseRange(searchFlags.fight, c.EnemyFight); err != nil {
		return nil, fmt.Errorf("bad --fight: %w", err)
	}
	if c.EnemyEvadeEnabled, c.EnemyEvade, err = parseRange(searchFlags.evade, c.EnemyEvade); err != nil {
		return nil, fmt.Errorf("bad --evade: %w", err)
	}

	c.Victory = searchFlags.victory

	if len(searchFlags.skills) > 0 || searchFlags.doubleIcons {
		c.SkillEnabled = true
		c.SkillIcons.DoubleIcons = searchFlags.doubleIcons
		for _, skill := range searchFlags.skills {
			switch strings.ToLower(skill) {
			case "willpower":
				c.SkillIcons.Willpower = true
			case "intellect":
				c.SkillIcons.Intellect = true
			case "combat":
				c.SkillIcons.Combat = true
			case "agility":
				c.SkillIcons.Agility = true
			case "wild":
				c.SkillIcons.Wild = true
			default:
				return nil, fmt.Errorf("unknown skill %q", skill)
			}
		}
	}

	if searchFlags.elite || searchFlags.nonElite || searchFlags.hunter || searchFlags.nonHunter ||
		searchFlags.retaliate || searchFlags.alert || searchFlags.parley || searchFlags.spawn ||
		searchFlags.prey || searchFlags.aloof || searchFlags.massive {
		c.EnemyKeywordsEnabled = true
		c.EnemyElite = searchFlags.elite
		c.EnemyNonElite = searchFlags.nonElite
		c.EnemyHunter = searchFlags.hunter
		c.EnemyNonHunter = searchFlags.nonHunter
		c.EnemyRetaliate = searchFlags.retaliate
		c.EnemyAlert = searchFlags.alert
		c.EnemyParley = searchFlags.parley
		c.EnemySpawn = searchFlags.spawn
		c.EnemyPrey = searchFlags.prey
		c.EnemyAloof = searchFlags.aloof
		c.EnemyMassive = searchFlags.massive
	}

	return c, nil
}

// parseRange parses "n" or "min-max" into an inclusive range. An empty spec
// leaves the default bounds and the filter disabled.
func parseRange(spec string, defaults [2]int) (bool, [2]int, error) {
	if spec == "" {
		return false, defaults, nil
	}
	if min, max, ok := strings.Cut(spec, "-"); ok {
		lo, err := strconv.Atoi(min)
		if err != nil {
			return false, defaults, err
		}
		hi, err := strconv.Atoi(max)
		if err != nil {
			return false, defaults, err
		}
		return true, [2]int{lo, hi}, nil
	}
	v, err := strconv.Atoi(spec)
	if err != nil {
		return false, defaults, err
	}
	return true, [2]int{v, v}, nil
}

var factionColors = map[string]*color.Color{
	"guardian": color.New(color.FgBlue),
	"seeker":   color.New(color.FgYellow),
	"mystic":   color.New(color.FgMagenta),
	"rogue":    color.New(color.FgGreen),
	"survivor": color.New(color.FgRed),
	"neutral":  color.New(color.FgWhite),
	"mythos":   color.New(color.FgHiBlack),
}

func printResults(results []store.Result) {
	if len(results) == 0 {
		fmt.Println("No cards matched.")
		return
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		width = w
	}
	nameWidth := 30
	traitsWidth := width - nameWidth - 30
	if traitsWidth < 10 {
		traitsWidth = 10
	}

	for _, r := range results {
		faction := r.FactionName
		if faction == "" {
			faction = r.FactionCode
		}
		line := fmt.Sprintf("%-6s %-*s %-12s %-10s %s",
			r.Code,
			nameWidth, truncate(r.RenderName, nameWidth-1),
			truncate(r.TypeName, 12),
			truncate(faction, 10),
			truncate(r.Traits, traitsWidth))
		if c, ok := factionColors[r.FactionCode]; ok {
			c.Println(line)
		} else {
			fmt.Println(line)
		}
	}
	fmt.Printf("\n%d cards.\n", len(results))
}

func truncate(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVar(&searchFlags.factions, "faction", nil, "faction code (repeatable)")
	f.StringSliceVar(&searchFlags.cycles, "cycle", nil, "cycle name (repeatable)")
	f.StringSliceVar(&searchFlags.types, "type", nil, "type name (repeatable)")
	f.StringSliceVar(&searchFlags.subtypes, "subtype", nil, "subtype name (repeatable)")
	f.StringSliceVar(&searchFlags.packs, "pack", nil, "pack name (repeatable)")
	f.StringSliceVar(&searchFlags.encounters, "encounter", nil, "encounter set name (repeatable)")
	f.StringSliceVar(&searchFlags.illustrators, "illustrator", nil, "illustrator (repeatable)")
	f.StringSliceVar(&searchFlags.traits, "trait", nil, "trait (repeatable)")
	f.StringSliceVar(&searchFlags.slots, "slot", nil, "asset slot (repeatable, player filter)")
	f.StringSliceVar(&searchFlags.uses, "uses", nil, "uses resource (repeatable, player filter)")

	f.StringVar(&searchFlags.cost, "cost", "", "resource cost, \"n\" or \"min-max\"")
	f.StringVar(&searchFlags.level, "level", "", "XP level, \"n\" or \"min-max\"")
	f.StringVar(&searchFlags.shroud, "shroud", "", "location shroud, \"n\" or \"min-max\"")
	f.StringVar(&searchFlags.clues, "clues", "", "location clues, \"n\" or \"min-max\"")
	f.StringVar(&searchFlags.fight, "fight", "", "enemy fight, \"n\" or \"min-max\"")
	f.StringVar(&searchFlags.evade, "evade", "", "enemy evade, \"n\" or \"min-max\"")

	f.BoolVar(&searchFlags.fast, "fast", false, "fast cards only (player filter)")
	f.BoolVar(&searchFlags.unique, "unique", false, "unique cards only (player filter)")
	f.BoolVar(&searchFlags.permanent, "permanent", false, "permanent cards only (player filter)")
	f.BoolVar(&searchFlags.exile, "exile", false, "exile cards only (player filter)")

	f.BoolVar(&searchFlags.exceptional, "exceptional", false, "exceptional cards only (with --level)")
	f.BoolVar(&searchFlags.nonExceptional, "non-exceptional", false, "exclude exceptional cards (with --level)")
	f.BoolVar(&searchFlags.victory, "victory", false, "cards with victory points only")

	f.StringSliceVar(&searchFlags.skills, "skill", nil, "commit icon skill (repeatable)")
	f.BoolVar(&searchFlags.doubleIcons, "double-icons", false, "require two or more matching icons")

	f.BoolVar(&searchFlags.elite, "elite", false, "elite enemies")
	f.BoolVar(&searchFlags.nonElite, "non-elite", false, "non-elite enemies")
	f.BoolVar(&searchFlags.hunter, "hunter", false, "hunter enemies")
	f.BoolVar(&searchFlags.nonHunter, "non-hunter", false, "non-hunter enemies")
	f.BoolVar(&searchFlags.retaliate, "retaliate", false, "enemies with Retaliate")
	f.BoolVar(&searchFlags.alert, "alert", false, "enemies with Alert")
	f.BoolVar(&searchFlags.parley, "parley", false, "enemies with Parley")
	f.BoolVar(&searchFlags.spawn, "spawn", false, "enemies with a Spawn instruction")
	f.BoolVar(&searchFlags.prey, "prey", false, "enemies with a Prey instruction")
	f.BoolVar(&searchFlags.aloof, "aloof", false, "enemies with Aloof")
	f.BoolVar(&searchFlags.massive, "massive", false, "enemies with Massive")

	f.StringVar(&searchFlags.sortMode, "sort", "type", "sort mode: type, faction or pack")
	f.BoolVar(&searchFlags.printQuery, "print-query", false, "print the compiled query instead of searching")
}
