package card

import (
	"fmt"
	"regexp"
	"strings"
)

// BasicSkills lists the four printed skill types, in icon order. The wild
// icon is tracked separately because it never gets an effective value of its
// own.
var BasicSkills = []string{"willpower", "intellect", "combat", "agility"}

var (
	usesRegexp        = regexp.MustCompile(`Uses\s*\([0-9]+\s(.+)\)\.`)
	healsHorrorRegexp = regexp.MustCompile(`[Hh]eals? (\d+ damage (and|or) )?(\d+ )?horror`)
)

// Card is one fully-derived catalog entry. It is built once per catalog load
// by NewCard and treated as immutable afterwards.
type Card struct {
	Code     string
	PackCode string
	PackName string
	Position int

	TypeCode    string
	TypeName    string
	SubtypeCode string
	SubtypeName string
	FactionCode string
	FactionName string
	Slot        string

	Name          string
	RealName      string
	Subname       string
	RenderName    string
	RenderSubname string

	EncounterCode     string
	EncounterName     string
	EncounterPosition *int

	Illustrator string
	Text        string
	RealText    string
	Flavor      string
	BackName    string
	BackText    string
	BackFlavor  string

	Cost    *int
	XP      *int
	Victory *int
	Stage   *int

	Clues      *int
	Shroud     *int
	CluesFixed bool
	Doom       *int

	Health                *int
	HealthPerInvestigator bool
	Sanity                *int

	EnemyDamage *int
	EnemyHorror *int
	EnemyFight  *int
	EnemyEvade  *int

	SkillWillpower *int
	SkillIntellect *int
	SkillCombat    *int
	SkillAgility   *int
	SkillWild      *int

	// Effective skills (base icons plus wilds). Only set for non-investigator
	// cards with a positive wild value, and only for skills with a positive
	// base value. Absent means absent, not zero.
	ESkillWillpower *int
	ESkillIntellect *int
	ESkillCombat    *int
	ESkillAgility   *int

	DeckLimit  *int
	Quantity   *int
	Traits     string
	RealTraits string

	IsUnique    bool
	Exile       bool
	Hidden      bool
	Permanent   bool
	DoubleSided bool
	Exceptional bool
	Spoiler     bool

	URL          string
	OctgnID      string
	ImageSrc     string
	BackImageSrc string

	LinkedToCode string
	LinkedToName string

	Restrictions     *CardRestrictions
	HasRestrictions  bool
	DeckRequirements *DeckRequirement
	DeckOptions      []DeckOption
	LinkedCard       *Card
	BackLinked       bool

	// Derived data.
	CycleName        string
	TraitsNormalized string
	Uses             string
	HealsHorror      bool
	SortByType       int
	SortByFaction    int
	SortByPack       int
}

// NewCard builds a fully-derived Card from one raw catalog record. packs maps
// pack_code to its pack entry and cycleNames maps cycle position to the cycle
// display name; an unknown pack is not fatal (SortByPack becomes -1).
func NewCard(raw *RawCard, packs map[string]Pack, cycleNames map[int]string) *Card {
	return newCard(raw, packs, cycleNames, 0)
}

func newCard(raw *RawCard, packs map[string]Pack, cycleNames map[int]string, depth int) *Card {
	if raw == nil {
		return nil
	}

	c := &Card{
		Code:     raw.Code,
		PackCode: raw.PackCode,
		PackName: raw.PackName,
		Position: raw.Position,

		TypeCode:    raw.TypeCode,
		TypeName:    raw.TypeName,
		SubtypeCode: raw.SubtypeCode,
		SubtypeName: raw.SubtypeName,
		FactionCode: raw.FactionCode,
		FactionName: raw.FactionName,
		Slot:        raw.Slot,

		Name:     raw.Name,
		RealName: raw.RealName,
		Subname:  raw.Subname,

		EncounterCode:     raw.EncounterCode,
		EncounterName:     raw.EncounterName,
		EncounterPosition: copyInt(raw.EncounterPosition),

		Illustrator: raw.Illustrator,
		Text:        raw.Text,
		RealText:    raw.RealText,
		Flavor:      raw.Flavor,
		BackName:    raw.BackName,
		BackText:    raw.BackText,
		BackFlavor:  raw.BackFlavor,

		Cost:    copyInt(raw.Cost),
		XP:      copyInt(raw.XP),
		Victory: copyInt(raw.Victory),
		Stage:   copyInt(raw.Stage),

		Clues:      copyInt(raw.Clues),
		Shroud:     copyInt(raw.Shroud),
		CluesFixed: raw.CluesFixed,
		Doom:       copyInt(raw.Doom),

		Health:                copyInt(raw.Health),
		HealthPerInvestigator: raw.HealthPerInvestigator,
		Sanity:                copyInt(raw.Sanity),

		EnemyDamage: copyInt(raw.EnemyDamage),
		EnemyHorror: copyInt(raw.EnemyHorror),
		EnemyFight:  copyInt(raw.EnemyFight),
		EnemyEvade:  copyInt(raw.EnemyEvade),

		SkillWillpower: copyInt(raw.SkillWillpower),
		SkillIntellect: copyInt(raw.SkillIntellect),
		SkillCombat:    copyInt(raw.SkillCombat),
		SkillAgility:   copyInt(raw.SkillAgility),
		SkillWild:      copyInt(raw.SkillWild),

		DeckLimit:  copyInt(raw.DeckLimit),
		Quantity:   copyInt(raw.Quantity),
		Traits:     raw.Traits,
		RealTraits: raw.RealTraits,

		IsUnique:    raw.IsUnique,
		Exile:       raw.Exile,
		Hidden:      raw.Hidden,
		Permanent:   raw.Permanent,
		DoubleSided: raw.DoubleSided,
		Exceptional: raw.Exceptional,
		Spoiler:     raw.Spoiler,

		URL:          raw.URL,
		OctgnID:      raw.OctgnID,
		ImageSrc:     raw.ImageSrc,
		BackImageSrc: raw.BackImageSrc,

		LinkedToCode: raw.LinkedToCode,
		LinkedToName: raw.LinkedToName,
	}

	if raw.DeckRequirements != nil {
		c.DeckRequirements = parseDeckRequirements(raw.DeckRequirements)
	}
	c.DeckOptions = parseDeckOptions(raw.DeckOptions)
	if raw.Restrictions != nil {
		c.Restrictions = parseRestrictions(raw.Restrictions)
		c.HasRestrictions = true
	}

	wild := intValue(raw.SkillWild)
	if raw.TypeCode != "investigator" && wild > 0 {
		c.ESkillWillpower = effectiveSkill(raw.SkillWillpower, wild)
		c.ESkillIntellect = effectiveSkill(raw.SkillIntellect, wild)
		c.ESkillCombat = effectiveSkill(raw.SkillCombat, wild)
		c.ESkillAgility = effectiveSkill(raw.SkillAgility, wild)
	}

	c.RenderName = raw.Name
	c.RenderSubname = raw.Subname
	if raw.TypeCode == "act" && raw.Stage != nil {
		c.RenderSubname = fmt.Sprintf("Act %d", *raw.Stage)
	} else if raw.TypeCode == "agenda" && raw.Stage != nil {
		c.RenderSubname = fmt.Sprintf("Agenda %d", *raw.Stage)
	} else if raw.TypeCode == "scenario" {
		c.RenderSubname = "Scenario"
	}

	// The game never nests linked cards more than one level deep; anything
	// deeper in the raw data is dropped rather than followed.
	if raw.LinkedCard != nil && depth == 0 {
		linked := newCard(raw.LinkedCard, packs, cycleNames, depth+1)
		linked.BackLinked = true
		c.LinkedCard = linked
		if raw.Hidden && !linked.Hidden {
			c.RenderName = linked.Name
			if linked.TypeCode == "act" && linked.Stage != nil {
				c.RenderSubname = fmt.Sprintf("Act %d", *linked.Stage)
			} else if linked.TypeCode == "agenda" && linked.Stage != nil {
				c.RenderSubname = fmt.Sprintf("Agenda %d", *linked.Stage)
			} else {
				c.RenderSubname = linked.Subname
			}
		}
	}

	c.TraitsNormalized = NormalizeTraits(raw.Traits)

	if m := usesRegexp.FindStringSubmatch(raw.Text); m != nil {
		c.Uses = strings.ToLower(m[1])
	}
	c.HealsHorror = healsHorrorRegexp.MatchString(raw.RealText)

	c.SortByType = headerIndex(TypeHeaderOrder, TypeSortHeader(raw))
	c.SortByFaction = headerIndex(FactionHeaderOrder, FactionSortHeader(raw))
	if pack, ok := packs[raw.PackCode]; ok {
		c.SortByPack = pack.CyclePosition*100 + pack.Position
		c.CycleName = cycleNames[pack.CyclePosition]
	} else {
		c.SortByPack = -1
	}

	c.Spoiler = raw.Spoiler || (c.LinkedCard != nil && c.LinkedCard.Spoiler)

	return c
}

// NormalizeTraits turns a printed trait string ("Cultist. Tome.") into a
// comma-joined list of lowercased, delimiter-wrapped tokens ("#cultist#,#tome#").
// The wrapping makes substring matching safe against prefix overlap: a search
// for "cult" cannot match "#cultist#".
func NormalizeTraits(traits string) string {
	if traits == "" {
		return ""
	}
	var tokens []string
	for _, t := range strings.Split(traits, ".") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tokens = append(tokens, "#"+t+"#")
		}
	}
	return strings.Join(tokens, ",")
}

// HasTrait reports whether the card carries the given trait, matching on the
// normalized token form.
func (c *Card) HasTrait(trait string) bool {
	trait = strings.ToLower(strings.TrimSpace(trait))
	if trait == "" || c.TraitsNormalized == "" {
		return false
	}
	return strings.Contains(c.TraitsNormalized, "#"+trait+"#")
}

// Level returns the card's XP cost, treating an absent value as zero.
func (c *Card) Level() int {
	return intValue(c.XP)
}

// RestrictedTo reports whether the card is restricted to the given
// investigator code.
func (c *Card) RestrictedTo(investigatorCode string) bool {
	if c.Restrictions == nil {
		return false
	}
	_, ok := c.Restrictions.Investigator[investigatorCode]
	return ok
}

func effectiveSkill(base *int, wild int) *int {
	if v := intValue(base); v > 0 {
		e := v + wild
		return &e
	}
	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
