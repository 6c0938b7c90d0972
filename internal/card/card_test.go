package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int {
	return &v
}

var testPacks = map[string]Pack{
	"core": {Code: "core", Name: "Core Set", Position: 1, CyclePosition: 1},
	"dwl":  {Code: "dwl", Name: "The Dunwich Legacy", Position: 1, CyclePosition: 2},
}

var testCycles = map[int]string{
	1: "Core Set",
	2: "The Dunwich Legacy",
}

func TestNewCardEffectiveSkills(t *testing.T) {
	t.Run("wilds add to positive base skills", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code:           "01088",
			TypeCode:       "asset",
			Name:           "Test Asset",
			SkillWillpower: intp(2),
			SkillCombat:    intp(0),
			SkillWild:      intp(1),
		}, testPacks, testCycles)

		require.NotNil(t, c.ESkillWillpower)
		assert.Equal(t, 3, *c.ESkillWillpower)
		assert.Nil(t, c.ESkillCombat, "zero base skill gets no effective value")
		assert.Nil(t, c.ESkillIntellect, "absent base skill gets no effective value")
	})

	t.Run("no wilds means no effective skills", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code:           "01089",
			TypeCode:       "asset",
			SkillWillpower: intp(2),
		}, testPacks, testCycles)

		assert.Nil(t, c.ESkillWillpower)
	})

	t.Run("investigators never get effective skills", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code:           "01001",
			TypeCode:       "investigator",
			SkillWillpower: intp(3),
			SkillWild:      intp(1),
		}, testPacks, testCycles)

		assert.Nil(t, c.ESkillWillpower)
	})
}

func TestNewCardTraits(t *testing.T) {
	c := NewCard(&RawCard{
		Code:     "01021",
		TypeCode: "asset",
		Traits:   "Item. Tome.",
	}, testPacks, testCycles)

	assert.Equal(t, "#item#,#tome#", c.TraitsNormalized)
	assert.True(t, c.HasTrait("Tome"))
	assert.True(t, c.HasTrait("item"))
	assert.False(t, c.HasTrait("tom"), "prefix must not match a wrapped token")
	assert.False(t, c.HasTrait(""))
}

func TestNormalizeTraits(t *testing.T) {
	assert.Equal(t, "", NormalizeTraits(""))
	assert.Equal(t, "#cultist#", NormalizeTraits("Cultist."))
	assert.Equal(t, "#silver twilight#,#elite#", NormalizeTraits("Silver Twilight. Elite."))
}

func TestNewCardUses(t *testing.T) {
	t.Run("uses clause is extracted and lowercased", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code:     "01020",
			TypeCode: "asset",
			Text:     "Uses (4 ammo).\n[action]: Fight.",
		}, testPacks, testCycles)
		assert.Equal(t, "ammo", c.Uses)
	})

	t.Run("no uses clause", func(t *testing.T) {
		c := NewCard(&RawCard{Code: "01022", TypeCode: "asset", Text: "Fast."}, testPacks, testCycles)
		assert.Equal(t, "", c.Uses)
	})
}

func TestNewCardHealsHorror(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"plain horror heal", "[action]: Heal 1 horror.", true},
		{"heals horror", "This card heals 1 horror.", true},
		{"capitalized", "Heals 2 horror from that investigator.", true},
		{"damage and horror", "Heals 2 damage and 2 horror.", true},
		{"damage or horror", "Heals 1 damage or 1 horror.", true},
		{"damage only", "Heals 3 damage.", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCard(&RawCard{Code: "x", TypeCode: "asset", RealText: tc.text}, testPacks, testCycles)
			assert.Equal(t, tc.want, c.HealsHorror)
		})
	}
}

func TestNewCardPackResolution(t *testing.T) {
	t.Run("known pack gets cycle name and sort key", func(t *testing.T) {
		c := NewCard(&RawCard{Code: "02001", TypeCode: "asset", PackCode: "dwl"}, testPacks, testCycles)
		assert.Equal(t, 201, c.SortByPack)
		assert.Equal(t, "The Dunwich Legacy", c.CycleName)
	})

	t.Run("unknown pack is not fatal", func(t *testing.T) {
		c := NewCard(&RawCard{Code: "99001", TypeCode: "asset", PackCode: "nope"}, testPacks, testCycles)
		assert.Equal(t, -1, c.SortByPack)
		assert.Equal(t, "", c.CycleName)
	})
}

func TestNewCardRenderNames(t *testing.T) {
	t.Run("act stage overrides subname", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code: "01109", TypeCode: "act", Name: "The Barrier",
			Subname: "ignored", Stage: intp(2),
		}, testPacks, testCycles)
		assert.Equal(t, "The Barrier", c.RenderName)
		assert.Equal(t, "Act 2", c.RenderSubname)
	})

	t.Run("agenda stage overrides subname", func(t *testing.T) {
		c := NewCard(&RawCard{Code: "01105", TypeCode: "agenda", Stage: intp(1)}, testPacks, testCycles)
		assert.Equal(t, "Agenda 1", c.RenderSubname)
	})

	t.Run("scenario cards render as Scenario", func(t *testing.T) {
		c := NewCard(&RawCard{Code: "01104", TypeCode: "scenario", Name: "The Gathering"}, testPacks, testCycles)
		assert.Equal(t, "Scenario", c.RenderSubname)
	})

	t.Run("hidden face inherits the visible linked name", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code: "01113a", TypeCode: "location", Name: "Unrevealed", Hidden: true,
			LinkedCard: &RawCard{
				Code: "01113b", TypeCode: "location", Name: "Study", Subname: "Aberrant Gateway",
			},
		}, testPacks, testCycles)
		assert.Equal(t, "Study", c.RenderName)
		assert.Equal(t, "Aberrant Gateway", c.RenderSubname)
	})

	t.Run("hidden face linked to an act renders the act stage", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code: "01108a", TypeCode: "act", Name: "Unrevealed", Hidden: true,
			LinkedCard: &RawCard{Code: "01108b", TypeCode: "act", Name: "Into the Dark", Stage: intp(3)},
		}, testPacks, testCycles)
		assert.Equal(t, "Into the Dark", c.RenderName)
		assert.Equal(t, "Act 3", c.RenderSubname)
	})
}

func TestNewCardLinked(t *testing.T) {
	t.Run("linked faces are normalized and marked back-linked", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code: "01116", TypeCode: "location", Name: "Front",
			LinkedCard: &RawCard{
				Code: "01117", TypeCode: "location", Name: "Back",
				Traits: "Arkham.", Shroud: intp(3),
			},
		}, testPacks, testCycles)

		require.NotNil(t, c.LinkedCard)
		assert.True(t, c.LinkedCard.BackLinked)
		assert.False(t, c.BackLinked)
		assert.Equal(t, "#arkham#", c.LinkedCard.TraitsNormalized)
	})

	t.Run("nesting stops one level deep", func(t *testing.T) {
		c := NewCard(&RawCard{
			Code: "a", TypeCode: "location",
			LinkedCard: &RawCard{
				Code: "b", TypeCode: "location",
				LinkedCard: &RawCard{Code: "c", TypeCode: "location"},
			},
		}, testPacks, testCycles)

		require.NotNil(t, c.LinkedCard)
		assert.Nil(t, c.LinkedCard.LinkedCard)
	})
}

func TestNewCardSpoilerPropagation(t *testing.T) {
	c := NewCard(&RawCard{
		Code: "02014", TypeCode: "asset", Name: "Front",
		LinkedCard: &RawCard{Code: "02014b", TypeCode: "story", Spoiler: true},
	}, testPacks, testCycles)
	assert.True(t, c.Spoiler, "a spoiler on either face marks the whole card")

	plain := NewCard(&RawCard{Code: "01020", TypeCode: "asset"}, testPacks, testCycles)
	assert.False(t, plain.Spoiler)
}

func TestNewCardDeterministic(t *testing.T) {
	raw := &RawCard{
		Code: "01001", TypeCode: "investigator", Name: "Roland Banks",
		Traits: "Agency. Detective.",
		DeckRequirements: &RawDeckRequirements{
			Size: 30,
			Card: map[string]map[string]any{
				"01006": {"01006": true, "98005": true},
				"01007": {"01007": true},
			},
			Random: []RawRandomRequirement{{Target: "subtype", Value: "basicweakness"}},
		},
		DeckOptions: []RawDeckOption{
			{Faction: []string{"guardian"}, Level: &RawDeckOptionLevel{Min: 0, Max: 5}},
			{Faction: []string{"seeker"}, Level: &RawDeckOptionLevel{Min: 0, Max: 2}},
		},
	}
	first := NewCard(raw, testPacks, testCycles)
	second := NewCard(raw, testPacks, testCycles)
	assert.Equal(t, first, second)
}

func TestParseDeckRequirements(t *testing.T) {
	dr := parseDeckRequirements(&RawDeckRequirements{
		Size: 30,
		Card: map[string]map[string]any{
			"01010": {"01010": true, "98002": true, "90003": true},
			"01006": {"01006": true},
		},
	})

	require.Len(t, dr.Card, 2)
	assert.Equal(t, "01006", dr.Card[0].Code, "requirements sort by code")
	assert.Empty(t, dr.Card[0].Alternates)
	assert.Equal(t, "01010", dr.Card[1].Code)
	assert.Equal(t, []string{"90003", "98002"}, dr.Card[1].Alternates,
		"the primary code is excluded from its own alternates")
	assert.Equal(t, 30, dr.Size)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 0, (&Card{}).Level(), "absent xp reads as level zero")
	assert.Equal(t, 3, (&Card{XP: intp(3)}).Level())
}

func TestRestrictedTo(t *testing.T) {
	c := &Card{Restrictions: &CardRestrictions{
		Investigator: map[string]string{"01001": "01001"},
	}}
	assert.True(t, c.RestrictedTo("01001"))
	assert.False(t, c.RestrictedTo("01002"))
	assert.False(t, (&Card{}).RestrictedTo("01001"))
}
