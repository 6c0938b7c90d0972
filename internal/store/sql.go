package store

import (
	"fmt"
	"strings"

	"github.com/mythosworks/lantern/internal/filter"
)

// baseColumns lists every card attribute the index exposes to compiled
// queries.
var baseColumns = map[string]bool{
	"code":                    true,
	"name":                    true,
	"real_name":               true,
	"render_name":             true,
	"subname":                 true,
	"type_code":               true,
	"type_name":               true,
	"subtype_code":            true,
	"subtype_name":            true,
	"faction_code":            true,
	"faction_name":            true,
	"pack_code":               true,
	"pack_name":               true,
	"cycle_name":              true,
	"encounter_code":          true,
	"encounter_name":          true,
	"illustrator":             true,
	"slot":                    true,
	"uses":                    true,
	"traits":                  true,
	"traits_normalized":       true,
	"text":                    true,
	"real_text":               true,
	"cost":                    true,
	"xp":                      true,
	"victory":                 true,
	"clues":                   true,
	"shroud":                  true,
	"clues_fixed":             true,
	"health":                  true,
	"health_per_investigator": true,
	"sanity":                  true,
	"enemy_damage":            true,
	"enemy_horror":            true,
	"enemy_fight":             true,
	"enemy_evade":             true,
	"skill_willpower":         true,
	"skill_intellect":         true,
	"skill_combat":            true,
	"skill_agility":           true,
	"skill_wild":              true,
	"is_unique":               true,
	"exile":                   true,
	"permanent":               true,
	"hidden":                  true,
	"spoiler":                 true,
	"heals_horror":            true,
	"sort_by_type":            true,
	"sort_by_faction":         true,
	"sort_by_pack":            true,
	"position":                true,
}

// linkedColumns lists the attributes mirrored from a card's linked face onto
// its own row, so linked_card.<field> references resolve without a join.
var linkedColumns = map[string]bool{
	"type_code":               true,
	"traits_normalized":       true,
	"text":                    true,
	"victory":                 true,
	"is_unique":               true,
	"clues":                   true,
	"shroud":                  true,
	"clues_fixed":             true,
	"health":                  true,
	"health_per_investigator": true,
	"enemy_damage":            true,
	"enemy_horror":            true,
	"enemy_fight":             true,
	"enemy_evade":             true,
	"xp":                      true,
	"cost":                    true,
	"name":                    true,
}

func columnFor(f filter.Field) (string, error) {
	if f.Linked {
		if !linkedColumns[f.Name] {
			return "", fmt.Errorf("store: no linked column for field %q", f.Name)
		}
		return "linked_" + f.Name, nil
	}
	if !baseColumns[f.Name] {
		return "", fmt.Errorf("store: no column for field %q", f.Name)
	}
	return quoteColumn(f.Name), nil
}

// text is an SQL keyword in some dialects; quote defensively.
func quoteColumn(name string) string {
	return `"` + name + `"`
}

// whereClause renders compiled filter clauses as one SQL predicate with
// positional arguments. An empty clause list matches everything.
func whereClause(exprs []filter.Expr) (string, []any, error) {
	if len(exprs) == 0 {
		return "1=1", nil, nil
	}
	parts := make([]string, 0, len(exprs))
	var args []any
	for _, e := range exprs {
		sql, exprArgs, err := renderExpr(e)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		args = append(args, exprArgs...)
	}
	return strings.Join(parts, " AND "), args, nil
}

func renderExpr(e filter.Expr) (string, []any, error) {
	switch v := e.(type) {
	case filter.Equals:
		column, err := columnFor(v.Field)
		if err != nil {
			return "", nil, err
		}
		return column + " = ?", []any{v.Value}, nil
	case filter.Cmp:
		column, err := columnFor(v.Field)
		if err != nil {
			return "", nil, err
		}
		switch v.Op {
		case ">", ">=", "<", "<=":
		default:
			return "", nil, fmt.Errorf("store: bad comparison op %q", v.Op)
		}
		return fmt.Sprintf("%s %s ?", column, v.Op), []any{v.Value}, nil
	case filter.Range:
		column, err := columnFor(v.Field)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s >= ? AND %s <= ?", column, column), []any{v.Min, v.Max}, nil
	case filter.Contains:
		column, err := columnFor(v.Field)
		if err != nil {
			return "", nil, err
		}
		if v.CaseInsensitive {
			return fmt.Sprintf("instr(lower(%s), lower(?)) > 0", column), []any{v.Value}, nil
		}
		return fmt.Sprintf("instr(%s, ?) > 0", column), []any{v.Value}, nil
	case filter.Not:
		inner, args, err := renderExpr(v.Expr)
		if err != nil {
			return "", nil, err
		}
		// SQL three-valued logic: a NULL operand must not satisfy the
		// negation, matching the absent-field semantics of the grammar.
		return fmt.Sprintf("COALESCE((%s), 0) = 0", inner), args, nil
	case filter.And:
		return renderJunction(v.Exprs, " AND ")
	case filter.Or:
		return renderJunction(v.Exprs, " OR ")
	default:
		return "", nil, fmt.Errorf("store: unknown expr %T", e)
	}
}

func renderJunction(exprs []filter.Expr, sep string) (string, []any, error) {
	parts := make([]string, 0, len(exprs))
	var args []any
	for _, e := range exprs {
		sql, exprArgs, err := renderExpr(e)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		args = append(args, exprArgs...)
	}
	return strings.Join(parts, sep), args, nil
}
