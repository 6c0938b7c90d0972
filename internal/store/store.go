package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mythosworks/lantern/internal/card"
	"github.com/mythosworks/lantern/internal/filter"
)

// SortMode selects which precomputed sort key orders search results. Ties
// break by display name.
type SortMode string

const (
	SortByType    SortMode = "type"
	SortByFaction SortMode = "faction"
	SortByPack    SortMode = "pack"
)

// Store is the on-disk search index: one row per normalized card, with the
// searchable attributes of a linked face mirrored onto the primary row.
type Store struct {
	db     *sql.DB
	dbPath string
	logger *zap.Logger
}

// Open creates or opens the index database.
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cards (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		real_name TEXT NOT NULL,
		render_name TEXT NOT NULL,
		subname TEXT,
		render_subname TEXT,
		type_code TEXT NOT NULL,
		type_name TEXT,
		subtype_code TEXT,
		subtype_name TEXT,
		faction_code TEXT,
		faction_name TEXT,
		pack_code TEXT,
		pack_name TEXT,
		cycle_name TEXT,
		encounter_code TEXT,
		encounter_name TEXT,
		illustrator TEXT,
		slot TEXT,
		uses TEXT,
		traits TEXT,
		traits_normalized TEXT,
		"text" TEXT,
		real_text TEXT,
		cost INTEGER,
		xp INTEGER,
		victory INTEGER,
		clues INTEGER,
		shroud INTEGER,
		clues_fixed INTEGER NOT NULL DEFAULT 0,
		health INTEGER,
		health_per_investigator INTEGER NOT NULL DEFAULT 0,
		sanity INTEGER,
		enemy_damage INTEGER,
		enemy_horror INTEGER,
		enemy_fight INTEGER,
		enemy_evade INTEGER,
		skill_willpower INTEGER,
		skill_intellect INTEGER,
		skill_combat INTEGER,
		skill_agility INTEGER,
		skill_wild INTEGER,
		is_unique INTEGER NOT NULL DEFAULT 0,
		exile INTEGER NOT NULL DEFAULT 0,
		permanent INTEGER NOT NULL DEFAULT 0,
		hidden INTEGER NOT NULL DEFAULT 0,
		spoiler INTEGER NOT NULL DEFAULT 0,
		heals_horror INTEGER NOT NULL DEFAULT 0,
		sort_by_type INTEGER NOT NULL,
		sort_by_faction INTEGER NOT NULL,
		sort_by_pack INTEGER NOT NULL,
		position INTEGER NOT NULL,
		linked_code TEXT,
		linked_name TEXT,
		linked_type_code TEXT,
		linked_traits_normalized TEXT,
		linked_text TEXT,
		linked_cost INTEGER,
		linked_xp INTEGER,
		linked_victory INTEGER,
		linked_clues INTEGER,
		linked_shroud INTEGER,
		linked_clues_fixed INTEGER,
		linked_health INTEGER,
		linked_health_per_investigator INTEGER,
		linked_is_unique INTEGER,
		linked_enemy_damage INTEGER,
		linked_enemy_horror INTEGER,
		linked_enemy_fight INTEGER,
		linked_enemy_evade INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_cards_type ON cards(type_code);
	CREATE INDEX IF NOT EXISTS idx_cards_faction ON cards(faction_code);
	CREATE INDEX IF NOT EXISTS idx_cards_pack ON cards(pack_code);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Rebuild replaces the entire index with the given normalized catalog. The
// catalog is rebuilt wholesale on sync, never incrementally.
func (s *Store) Rebuild(cards []*card.Card) error {
	start := time.Now()
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cards`); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		if _, err := stmt.Exec(insertArgs(c)...); err != nil {
			return fmt.Errorf("index card %s: %w", c.Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}

	s.logger.Info("index rebuilt",
		zap.Int("cards", len(cards)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

const insertSQL = `INSERT INTO cards (
	code, name, real_name, render_name, subname, render_subname,
	type_code, type_name, subtype_code, subtype_name,
	faction_code, faction_name, pack_code, pack_name, cycle_name,
	encounter_code, encounter_name, illustrator, slot, uses,
	traits, traits_normalized, "text", real_text,
	cost, xp, victory, clues, shroud, clues_fixed,
	health, health_per_investigator, sanity,
	enemy_damage, enemy_horror, enemy_fight, enemy_evade,
	skill_willpower, skill_intellect, skill_combat, skill_agility, skill_wild,
	is_unique, exile, permanent, hidden, spoiler, heals_horror,
	sort_by_type, sort_by_faction, sort_by_pack, position,
	linked_code, linked_name, linked_type_code, linked_traits_normalized, linked_text,
	linked_cost, linked_xp, linked_victory, linked_clues, linked_shroud,
	linked_clues_fixed, linked_health, linked_health_per_investigator, linked_is_unique,
	linked_enemy_damage, linked_enemy_horror, linked_enemy_fight, linked_enemy_evade
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertArgs(c *card.Card) []any {
	args := []any{
		c.Code, c.Name, c.RealName, c.RenderName, c.Subname, c.RenderSubname,
		c.TypeCode, c.TypeName, c.SubtypeCode, c.SubtypeName,
		c.FactionCode, c.FactionName, c.PackCode, c.PackName, c.CycleName,
		c.EncounterCode, c.EncounterName, c.Illustrator, c.Slot, c.Uses,
		c.Traits, c.TraitsNormalized, c.Text, c.RealText,
		nullableInt(c.Cost), nullableInt(c.XP), nullableInt(c.Victory),
		nullableInt(c.Clues), nullableInt(c.Shroud), c.CluesFixed,
		nullableInt(c.Health), c.HealthPerInvestigator, nullableInt(c.Sanity),
		nullableInt(c.EnemyDamage), nullableInt(c.EnemyHorror),
		nullableInt(c.EnemyFight), nullableInt(c.EnemyEvade),
		nullableInt(c.SkillWillpower), nullableInt(c.SkillIntellect),
		nullableInt(c.SkillCombat), nullableInt(c.SkillAgility), nullableInt(c.SkillWild),
		c.IsUnique, c.Exile, c.Permanent, c.Hidden, c.Spoiler, c.HealsHorror,
		c.SortByType, c.SortByFaction, c.SortByPack, c.Position,
	}
	if linked := c.LinkedCard; linked != nil {
		args = append(args,
			linked.Code, linked.Name, linked.TypeCode, linked.TraitsNormalized, linked.Text,
			nullableInt(linked.Cost), nullableInt(linked.XP), nullableInt(linked.Victory),
			nullableInt(linked.Clues), nullableInt(linked.Shroud),
			linked.CluesFixed, nullableInt(linked.Health), linked.HealthPerInvestigator,
			linked.IsUnique, nullableInt(linked.EnemyDamage), nullableInt(linked.EnemyHorror),
			nullableInt(linked.EnemyFight), nullableInt(linked.EnemyEvade))
	} else {
		args = append(args,
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil)
	}
	return args
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// Result is one search hit, carrying what the result list renders.
type Result struct {
	Code          string
	RenderName    string
	Subname       string
	TypeCode      string
	TypeName      string
	FactionCode   string
	FactionName   string
	PackName      string
	Traits        string
	Cost          *int
	XP            *int
	SortByType    int
	SortByFaction int
	SortByPack    int
}

// Search executes compiled filter clauses against the index and returns
// results bucketed by the requested sort key, ties broken by name.
func (s *Store) Search(exprs []filter.Expr, mode SortMode) ([]Result, error) {
	where, args, err := whereClause(exprs)
	if err != nil {
		return nil, err
	}

	var orderBy string
	switch mode {
	case SortByFaction:
		orderBy = "sort_by_faction, render_name"
	case SortByPack:
		orderBy = "sort_by_pack, render_name"
	default:
		orderBy = "sort_by_type, render_name"
	}

	query := fmt.Sprintf(`SELECT code, render_name, COALESCE(subname, ''),
		type_code, COALESCE(type_name, ''), COALESCE(faction_code, ''),
		COALESCE(faction_name, ''), COALESCE(pack_name, ''), COALESCE(traits, ''),
		cost, xp, sort_by_type, sort_by_faction, sort_by_pack
		FROM cards WHERE %s ORDER BY %s`, where, orderBy)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var cost, xp sql.NullInt64
		if err := rows.Scan(&r.Code, &r.RenderName, &r.Subname,
			&r.TypeCode, &r.TypeName, &r.FactionCode,
			&r.FactionName, &r.PackName, &r.Traits,
			&cost, &xp, &r.SortByType, &r.SortByFaction, &r.SortByPack); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if cost.Valid {
			v := int(cost.Int64)
			r.Cost = &v
		}
		if xp.Valid {
			v := int(xp.Int64)
			r.XP = &v
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of indexed cards.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
