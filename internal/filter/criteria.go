package filter

// SkillIconCriteria selects cards by commit icons. DoubleIcons with no skill
// selected means "any skill with two or more icons".
type SkillIconCriteria struct {
	Willpower   bool
	Intellect   bool
	Combat      bool
	Agility     bool
	Wild        bool
	DoubleIcons bool
}

// Criteria is a flat snapshot of every filter axis the search UI exposes.
// Every numeric range has a paired Enabled flag; the bounds are inert unless
// the flag is set.
type Criteria struct {
	Factions     []string
	Uses         []string
	Types        []string
	SubTypes     []string
	Traits       []string
	Packs        []string
	CycleNames   []string
	Encounters   []string
	Illustrators []string

	// Player card filters, gated behind one master flag.
	PlayerFiltersEnabled bool
	Slots                []string
	Unique               bool
	Fast                 bool
	Permanent            bool
	Exile                bool

	LevelEnabled   bool
	Level          [2]int
	Exceptional    bool
	NonExceptional bool

	CostEnabled bool
	Cost        [2]int

	Victory bool

	SkillEnabled bool
	SkillIcons   SkillIconCriteria

	ShroudEnabled bool
	Shroud        [2]int
	CluesEnabled  bool
	Clues         [2]int
	CluesFixed    bool

	EnemyKeywordsEnabled bool
	EnemyElite           bool
	EnemyNonElite        bool
	EnemyHunter          bool
	EnemyNonHunter       bool
	EnemyParley          bool
	EnemyRetaliate       bool
	EnemyAlert           bool
	EnemySpawn           bool
	EnemyPrey            bool
	EnemyAloof           bool
	EnemyMassive         bool

	EnemyHealthEnabled         bool
	EnemyHealth                [2]int
	EnemyHealthPerInvestigator bool
	EnemyDamageEnabled         bool
	EnemyDamage                [2]int
	EnemyHorrorEnabled         bool
	EnemyHorror                [2]int
	EnemyFightEnabled          bool
	EnemyFight                 [2]int
	EnemyEvadeEnabled          bool
	EnemyEvade                 [2]int
}

// DefaultCriteria returns the filter state the search screen starts from:
// nothing selected, every range at its full span and disabled.
func DefaultCriteria() *Criteria {
	return &Criteria{
		Level:       [2]int{0, 5},
		Cost:        [2]int{0, 6},
		Shroud:      [2]int{0, 6},
		Clues:       [2]int{0, 6},
		EnemyHealth: [2]int{0, 10},
		EnemyDamage: [2]int{0, 5},
		EnemyHorror: [2]int{0, 5},
		EnemyFight:  [2]int{0, 6},
		EnemyEvade:  [2]int{0, 6},
	}
}
