package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const fixtureCards = `[
	{"code": "01001", "type_code": "investigator", "name": "Roland Banks",
	 "real_name": "Roland Banks", "faction_code": "guardian", "pack_code": "core",
	 "deck_requirements": {"size": 30, "card": {"01006": {"01006": true}}},
	 "deck_options": [{"faction": ["guardian"], "level": {"min": 0, "max": 5}}]},
	{"code": "01020", "type_code": "asset", "name": "Machete",
	 "real_name": "Machete", "faction_code": "guardian", "pack_code": "core",
	 "traits": "Item. Weapon. Melee.", "cost": 3, "slot": "Hand"},
	{"code": "99001", "type_code": "event", "name": "Stray", "real_name": "Stray",
	 "pack_code": "unknown_pack"}
]`

const fixturePacks = `[
	{"code": "core", "name": "Core Set", "position": 1, "cycle_position": 1}
]`

const fixtureCycles = `[
	{"code": "core", "name": "Core Set", "position": 1}
]`

func TestLoad(t *testing.T) {
	cardsPath := writeFixture(t, "cards.json", fixtureCards)
	packsPath := writeFixture(t, "packs.json", fixturePacks)
	cyclesPath := writeFixture(t, "cycles.json", fixtureCycles)

	cat, err := Load(cardsPath, packsPath, cyclesPath, nil)
	require.NoError(t, err)
	require.Len(t, cat.Cards, 3)

	t.Run("cards are normalized on load", func(t *testing.T) {
		machete, ok := cat.Get("01020")
		require.True(t, ok)
		assert.Equal(t, "#item#,#weapon#,#melee#", machete.TraitsNormalized)
		assert.Equal(t, "Core Set", machete.CycleName)
		assert.Equal(t, 101, machete.SortByPack)
	})

	t.Run("unknown pack is not fatal", func(t *testing.T) {
		stray, ok := cat.Get("99001")
		require.True(t, ok)
		assert.Equal(t, -1, stray.SortByPack)
	})

	t.Run("investigator rules survive the round trip", func(t *testing.T) {
		roland, ok := cat.Get("01001")
		require.True(t, ok)
		require.NotNil(t, roland.DeckRequirements)
		assert.Equal(t, 30, roland.DeckRequirements.Size)
		require.Len(t, roland.DeckOptions, 1)
		assert.Equal(t, []string{"guardian"}, roland.DeckOptions[0].Faction)
	})

	t.Run("investigators are listed in catalog order", func(t *testing.T) {
		investigators := cat.Investigators()
		require.Len(t, investigators, 1)
		assert.Equal(t, "01001", investigators[0].Code)
	})

	t.Run("unknown code misses", func(t *testing.T) {
		_, ok := cat.Get("nope")
		assert.False(t, ok)
	})
}

func TestLoadErrors(t *testing.T) {
	packsPath := writeFixture(t, "packs.json", fixturePacks)
	cyclesPath := writeFixture(t, "cycles.json", fixtureCycles)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"), packsPath, cyclesPath, nil)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		cardsPath := writeFixture(t, "cards.json", `{"not": "a list"`)
		_, err := Load(cardsPath, packsPath, cyclesPath, nil)
		assert.Error(t, err)
	})
}
