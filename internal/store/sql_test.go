package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythosworks/lantern/internal/filter"
)

func TestWhereClauseEmpty(t *testing.T) {
	where, args, err := whereClause(nil)
	require.NoError(t, err)
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestWhereClauseRendering(t *testing.T) {
	t.Run("equality", func(t *testing.T) {
		where, args, err := whereClause([]filter.Expr{
			filter.Equals{Field: filter.Field{Name: "faction_code"}, Value: "guardian"},
		})
		require.NoError(t, err)
		assert.Equal(t, `("faction_code" = ?)`, where)
		assert.Equal(t, []any{"guardian"}, args)
	})

	t.Run("clauses join with AND", func(t *testing.T) {
		where, args, err := whereClause([]filter.Expr{
			filter.Equals{Field: filter.Field{Name: "type_code"}, Value: "asset"},
			filter.Range{Field: filter.Field{Name: "cost"}, Min: 1, Max: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, `("type_code" = ?) AND ("cost" >= ? AND "cost" <= ?)`, where)
		assert.Equal(t, []any{"asset", 1, 3}, args)
	})

	t.Run("linked fields use mirrored columns", func(t *testing.T) {
		where, _, err := whereClause([]filter.Expr{
			filter.Equals{Field: filter.Field{Name: "type_code", Linked: true}, Value: "location"},
		})
		require.NoError(t, err)
		assert.Equal(t, `(linked_type_code = ?)`, where)
	})

	t.Run("contains renders case-insensitively when asked", func(t *testing.T) {
		where, args, err := whereClause([]filter.Expr{
			filter.Contains{Field: filter.Field{Name: "traits_normalized"}, Value: "tome", CaseInsensitive: true},
		})
		require.NoError(t, err)
		assert.Equal(t, `(instr(lower("traits_normalized"), lower(?)) > 0)`, where)
		assert.Equal(t, []any{"tome"}, args)
	})

	t.Run("negation guards against NULL", func(t *testing.T) {
		where, args, err := whereClause([]filter.Expr{
			filter.Not{Expr: filter.Contains{Field: filter.Field{Name: "text"}, Value: "Exceptional."}},
		})
		require.NoError(t, err)
		assert.Equal(t, `(COALESCE((instr("text", ?) > 0), 0) = 0)`, where)
		assert.Equal(t, []any{"Exceptional."}, args)
	})

	t.Run("junctions parenthesize every operand", func(t *testing.T) {
		where, args, err := whereClause([]filter.Expr{
			filter.Or{Exprs: []filter.Expr{
				filter.Equals{Field: filter.Field{Name: "faction_code"}, Value: "guardian"},
				filter.And{Exprs: []filter.Expr{
					filter.Equals{Field: filter.Field{Name: "type_code"}, Value: "enemy"},
					filter.Cmp{Field: filter.Field{Name: "enemy_fight"}, Op: ">=", Value: 3},
				}},
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, `(("faction_code" = ?) OR (("type_code" = ?) AND ("enemy_fight" >= ?)))`, where)
		assert.Equal(t, []any{"guardian", "enemy", 3}, args)
	})
}

func TestWhereClauseRejectsUnknownFields(t *testing.T) {
	t.Run("unknown base field", func(t *testing.T) {
		_, _, err := whereClause([]filter.Expr{
			filter.Equals{Field: filter.Field{Name: "no_such_column"}, Value: 1},
		})
		assert.Error(t, err)
	})

	t.Run("base field without a linked mirror", func(t *testing.T) {
		_, _, err := whereClause([]filter.Expr{
			filter.Equals{Field: filter.Field{Name: "illustrator", Linked: true}, Value: "x"},
		})
		assert.Error(t, err)
	})

	t.Run("bad comparison operator", func(t *testing.T) {
		_, _, err := whereClause([]filter.Expr{
			filter.Cmp{Field: filter.Field{Name: "cost"}, Op: "<>", Value: 1},
		})
		assert.Error(t, err)
	})
}

func TestWhereClauseCoversCompiledQueries(t *testing.T) {
	// Every clause the compiler can emit must map onto index columns.
	c := filter.DefaultCriteria()
	c.Factions = []string{"guardian"}
	c.CycleNames = []string{"Core Set"}
	c.Types = []string{"Asset"}
	c.SubTypes = []string{"Weakness"}
	c.Packs = []string{"Core Set"}
	c.Encounters = []string{"The Midnight Masks"}
	c.Illustrators = []string{"Magali Villeneuve"}
	c.Traits = []string{"tome"}
	c.PlayerFiltersEnabled = true
	c.Slots = []string{"Hand"}
	c.Uses = []string{"charge"}
	c.Unique = true
	c.Fast = true
	c.Permanent = true
	c.Exile = true
	c.Victory = true
	c.LevelEnabled = true
	c.NonExceptional = true
	c.CostEnabled = true
	c.SkillEnabled = true
	c.SkillIcons = filter.SkillIconCriteria{Wild: true}
	c.ShroudEnabled = true
	c.CluesEnabled = true
	c.Clues = [2]int{1, 2}
	c.EnemyKeywordsEnabled = true
	c.EnemyNonElite = true
	c.EnemyNonHunter = true
	c.EnemySpawn = true
	c.EnemyHealthEnabled = true
	c.EnemyFightEnabled = true
	c.EnemyEvadeEnabled = true
	c.EnemyDamageEnabled = true
	c.EnemyHorrorEnabled = true

	_, _, err := whereClause(filter.Compile(c))
	assert.NoError(t, err)
}
