package filter

var skillFields = []struct {
	name     string
	selected func(SkillIconCriteria) bool
}{
	{"willpower", func(s SkillIconCriteria) bool { return s.Willpower }},
	{"intellect", func(s SkillIconCriteria) bool { return s.Intellect }},
	{"combat", func(s SkillIconCriteria) bool { return s.Combat }},
	{"agility", func(s SkillIconCriteria) bool { return s.Agility }},
	{"wild", func(s SkillIconCriteria) bool { return s.Wild }},
}

// Compile turns a criteria snapshot into an ordered list of query clauses
// with AND semantics. Each builder contributes clauses only when its axis is
// active; clause order is builder declaration order and does not change the
// result set. Compilation never touches a catalog.
func Compile(c *Criteria) []Expr {
	var query []Expr
	query = appendMultiSelect(query, c.Factions, "faction_code")
	query = appendMultiSelect(query, c.CycleNames, "cycle_name")
	query = appendMultiSelect(query, c.Types, "type_name")
	query = appendMultiSelect(query, c.SubTypes, "subtype_name")
	query = appendPlayerCardFilters(query, c)
	query = appendMultiSelect(query, c.Packs, "pack_name")
	query = appendMultiSelect(query, c.Encounters, "encounter_name")
	query = appendMultiSelect(query, c.Illustrators, "illustrator")
	if c.SkillEnabled {
		query = appendSkillIconFilter(query, c.SkillIcons)
	}
	query = appendMiscFilter(query, c)
	query = appendLevelFilter(query, c)
	query = appendCostFilter(query, c)
	query = appendTraitFilter(query, c)
	query = appendEnemyFilters(query, c)
	query = appendLocationFilters(query, c)
	return query
}

// appendMultiSelect emits an OR-group of equality tests for a multi-select
// axis, or nothing when the selection is empty.
func appendMultiSelect(query []Expr, values []string, field string) []Expr {
	if len(values) == 0 {
		return query
	}
	parts := make([]Expr, 0, len(values))
	for _, v := range values {
		parts = append(parts, Equals{Field: Field{Name: field}, Value: v})
	}
	return append(query, orOf(parts))
}

// rangeExpr degrades to an equality test when the bounds coincide. When the
// field also exists on a linked face, either face qualifying must match.
func rangeExpr(field string, values [2]int, includeLinked bool) Expr {
	f := Field{Name: field}
	var primary, secondary Expr
	if values[0] == values[1] {
		primary = Equals{Field: f, Value: values[0]}
		secondary = Equals{Field: linked(f), Value: values[0]}
	} else {
		primary = Range{Field: f, Min: values[0], Max: values[1]}
		secondary = Range{Field: linked(f), Min: values[0], Max: values[1]}
	}
	if includeLinked {
		return Or{Exprs: []Expr{primary, secondary}}
	}
	return primary
}

// textKeyword matches a rules-text marker on either face.
func textKeyword(value string, caseInsensitive bool) Expr {
	f := Field{Name: "text"}
	return Or{Exprs: []Expr{
		Contains{Field: f, Value: value, CaseInsensitive: caseInsensitive},
		Contains{Field: linked(f), Value: value, CaseInsensitive: caseInsensitive},
	}}
}

func appendPlayerCardFilters(query []Expr, c *Criteria) []Expr {
	if !c.PlayerFiltersEnabled {
		return query
	}
	query = appendMultiSelect(query, c.Slots, "slot")
	query = appendMultiSelect(query, c.Uses, "uses")
	if c.Fast {
		query = append(query, textKeyword("Fast.", false))
	}
	if c.Permanent {
		query = append(query, textKeyword("Permanent.", false))
	}
	if c.Exile {
		query = append(query, textKeyword("exile", true))
	}
	if c.Unique {
		// Uniqueness on enemies is not player-relevant.
		unique := Field{Name: "is_unique"}
		query = append(query, And{Exprs: []Expr{
			Or{Exprs: []Expr{
				Equals{Field: unique, Value: true},
				Equals{Field: linked(unique), Value: true},
			}},
			Not{Expr: Equals{Field: Field{Name: "type_code"}, Value: "enemy"}},
		}})
	}
	return query
}

func appendSkillIconFilter(query []Expr, icons SkillIconCriteria) []Expr {
	matchAll := icons.DoubleIcons
	for _, s := range skillFields {
		if s.selected(icons) {
			matchAll = false
			break
		}
	}

	threshold := 0
	if icons.DoubleIcons {
		threshold = 1
	}
	var parts []Expr
	for _, s := range skillFields {
		if matchAll || s.selected(icons) {
			parts = append(parts, Cmp{Field: Field{Name: "skill_" + s.name}, Op: ">", Value: threshold})
		}
	}
	if len(parts) == 0 {
		return query
	}
	// Investigators re-use the skill fields for their stats and by definition
	// cannot have commit icons.
	query = append(query, Not{Expr: Equals{Field: Field{Name: "type_code"}, Value: "investigator"}})
	return append(query, orOf(parts))
}

func appendMiscFilter(query []Expr, c *Criteria) []Expr {
	if c.Victory {
		victory := Field{Name: "victory"}
		query = append(query, Or{Exprs: []Expr{
			Cmp{Field: victory, Op: ">=", Value: 0},
			Cmp{Field: linked(victory), Op: ">=", Value: 0},
		}})
	}
	return query
}

func appendLevelFilter(query []Expr, c *Criteria) []Expr {
	if !c.LevelEnabled {
		return query
	}
	query = append(query, rangeExpr("xp", c.Level, false))
	if c.Exceptional && !c.NonExceptional {
		query = append(query, textKeyword("Exceptional.", false))
	}
	if c.NonExceptional && !c.Exceptional {
		query = append(query, Not{Expr: textKeyword("Exceptional.", false)})
	}
	return query
}

func appendCostFilter(query []Expr, c *Criteria) []Expr {
	if !c.CostEnabled {
		return query
	}
	return append(query, rangeExpr("cost", c.Cost, false))
}

func appendTraitFilter(query []Expr, c *Criteria) []Expr {
	if len(c.Traits) == 0 {
		return query
	}
	f := Field{Name: "traits_normalized"}
	var parts []Expr
	for _, t := range c.Traits {
		parts = append(parts, Contains{Field: f, Value: t, CaseInsensitive: true})
	}
	for _, t := range c.Traits {
		parts = append(parts, Contains{Field: linked(f), Value: t, CaseInsensitive: true})
	}
	return append(query, Or{Exprs: parts})
}

// traitOnFace matches cards of the given type on one face that lack a trait,
// used for the non-elite style negative keyword filters.
func typedWithoutTrait(trait string, onLinked bool) Expr {
	typeField := Field{Name: "type_code", Linked: onLinked}
	traitsField := Field{Name: "traits_normalized", Linked: onLinked}
	return And{Exprs: []Expr{
		Equals{Field: typeField, Value: "enemy"},
		Not{Expr: Contains{Field: traitsField, Value: trait, CaseInsensitive: true}},
	}}
}

func typedWithoutText(text string, onLinked bool) Expr {
	typeField := Field{Name: "type_code", Linked: onLinked}
	textField := Field{Name: "text", Linked: onLinked}
	return And{Exprs: []Expr{
		Equals{Field: typeField, Value: "enemy"},
		Not{Expr: Contains{Field: textField, Value: text}},
	}}
}

func appendEnemyFilters(query []Expr, c *Criteria) []Expr {
	oldLength := len(query)
	if c.EnemyKeywordsEnabled {
		if c.EnemyElite && !c.EnemyNonElite {
			f := Field{Name: "traits_normalized"}
			query = append(query, Or{Exprs: []Expr{
				Contains{Field: f, Value: "elite", CaseInsensitive: true},
				Contains{Field: linked(f), Value: "elite", CaseInsensitive: true},
			}})
		}
		if c.EnemyNonElite && !c.EnemyElite {
			query = append(query, Or{Exprs: []Expr{
				typedWithoutTrait("elite", false),
				typedWithoutTrait("elite", true),
			}})
		}
		if c.EnemyRetaliate {
			query = append(query, textKeyword("Retaliate.", false))
		}
		if c.EnemyAlert {
			query = append(query, textKeyword("Alert.", false))
		}
		if c.EnemyHunter && !c.EnemyNonHunter {
			query = append(query, textKeyword("Hunter.", false))
		}
		if c.EnemyNonHunter && !c.EnemyHunter {
			query = append(query, Or{Exprs: []Expr{
				typedWithoutText("Hunter.", false),
				typedWithoutText("Hunter.", true),
			}})
		}
		if c.EnemySpawn {
			query = append(query, textKeyword("Spawn", false))
		}
		if c.EnemyPrey {
			query = append(query, textKeyword("Prey", false))
		}
		if c.EnemyAloof {
			query = append(query, textKeyword("Aloof.", false))
		}
		if c.EnemyParley {
			query = append(query, textKeyword("Parley.", false))
		}
		if c.EnemyMassive {
			query = append(query, textKeyword("Massive.", false))
		}
	}
	if c.EnemyFightEnabled {
		query = append(query, rangeExpr("enemy_fight", c.EnemyFight, true))
	}
	if c.EnemyEvadeEnabled {
		query = append(query, rangeExpr("enemy_evade", c.EnemyEvade, true))
	}
	if c.EnemyDamageEnabled {
		query = append(query, rangeExpr("enemy_damage", c.EnemyDamage, true))
	}
	if c.EnemyHorrorEnabled {
		query = append(query, rangeExpr("enemy_horror", c.EnemyHorror, true))
	}
	if c.EnemyHealthEnabled {
		query = append(query, rangeExpr("health", c.EnemyHealth, true))
		query = append(query, Or{Exprs: []Expr{
			And{Exprs: []Expr{
				Equals{Field: Field{Name: "type_code"}, Value: "enemy"},
				Equals{Field: Field{Name: "health_per_investigator"}, Value: c.EnemyHealthPerInvestigator},
			}},
			And{Exprs: []Expr{
				Equals{Field: Field{Name: "type_code", Linked: true}, Value: "enemy"},
				Equals{Field: Field{Name: "health_per_investigator", Linked: true}, Value: c.EnemyHealthPerInvestigator},
			}},
		}})
	}
	// A set-and-cancelled keyword pair contributes no clause but still means
	// the user was filtering enemies, so the type guard applies either way.
	if len(query) != oldLength ||
		(c.EnemyHunter && c.EnemyNonHunter) ||
		(c.EnemyElite && c.EnemyNonElite) {
		query = append(query, typeGuard("enemy"))
	}
	return query
}

func appendLocationFilters(query []Expr, c *Criteria) []Expr {
	oldLength := len(query)
	if c.ShroudEnabled {
		query = append(query, rangeExpr("shroud", c.Shroud, true))
	}
	if c.CluesEnabled {
		query = append(query, rangeExpr("clues", c.Clues, true))
		if c.Clues[0] != c.Clues[1] || c.Clues[0] != 0 {
			f := Field{Name: "clues_fixed"}
			query = append(query, Or{Exprs: []Expr{
				Equals{Field: f, Value: c.CluesFixed},
				Equals{Field: linked(f), Value: c.CluesFixed},
			}})
		}
	}
	if len(query) != oldLength {
		query = append(query, typeGuard("location"))
	}
	return query
}

func typeGuard(typeCode string) Expr {
	f := Field{Name: "type_code"}
	return Or{Exprs: []Expr{
		Equals{Field: f, Value: typeCode},
		Equals{Field: linked(f), Value: typeCode},
	}}
}

func orOf(parts []Expr) Expr {
	if len(parts) == 1 {
		return parts[0]
	}
	return Or{Exprs: parts}
}
