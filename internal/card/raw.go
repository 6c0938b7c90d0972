package card

// RawCard is one catalog entry as it appears in the published card JSON.
// Optional numeric fields are pointers so that "absent" and "zero" stay
// distinguishable through normalization.
type RawCard struct {
	Code     string `json:"code"`
	PackCode string `json:"pack_code"`
	PackName string `json:"pack_name"`
	Position int    `json:"position"`

	TypeCode    string `json:"type_code"`
	TypeName    string `json:"type_name"`
	SubtypeCode string `json:"subtype_code,omitempty"`
	SubtypeName string `json:"subtype_name,omitempty"`
	FactionCode string `json:"faction_code,omitempty"`
	FactionName string `json:"faction_name,omitempty"`
	Slot        string `json:"slot,omitempty"`

	Name     string `json:"name"`
	RealName string `json:"real_name"`
	Subname  string `json:"subname,omitempty"`

	EncounterCode     string `json:"encounter_code,omitempty"`
	EncounterName     string `json:"encounter_name,omitempty"`
	EncounterPosition *int   `json:"encounter_position,omitempty"`

	Illustrator string `json:"illustrator,omitempty"`
	Text        string `json:"text,omitempty"`
	RealText    string `json:"real_text,omitempty"`
	Flavor      string `json:"flavor,omitempty"`
	BackName    string `json:"back_name,omitempty"`
	BackText    string `json:"back_text,omitempty"`
	BackFlavor  string `json:"back_flavor,omitempty"`

	Cost    *int `json:"cost,omitempty"`
	XP      *int `json:"xp,omitempty"`
	Victory *int `json:"victory,omitempty"`
	Stage   *int `json:"stage,omitempty"`

	Clues      *int `json:"clues,omitempty"`
	Shroud     *int `json:"shroud,omitempty"`
	CluesFixed bool `json:"clues_fixed,omitempty"`
	Doom       *int `json:"doom,omitempty"`

	Health                *int `json:"health,omitempty"`
	HealthPerInvestigator bool `json:"health_per_investigator,omitempty"`
	Sanity                *int `json:"sanity,omitempty"`

	EnemyDamage *int `json:"enemy_damage,omitempty"`
	EnemyHorror *int `json:"enemy_horror,omitempty"`
	EnemyFight  *int `json:"enemy_fight,omitempty"`
	EnemyEvade  *int `json:"enemy_evade,omitempty"`

	SkillWillpower *int `json:"skill_willpower,omitempty"`
	SkillIntellect *int `json:"skill_intellect,omitempty"`
	SkillCombat    *int `json:"skill_combat,omitempty"`
	SkillAgility   *int `json:"skill_agility,omitempty"`
	SkillWild      *int `json:"skill_wild,omitempty"`

	DeckLimit  *int   `json:"deck_limit,omitempty"`
	Quantity   *int   `json:"quantity,omitempty"`
	Traits     string `json:"traits,omitempty"`
	RealTraits string `json:"real_traits,omitempty"`

	IsUnique    bool `json:"is_unique,omitempty"`
	Exile       bool `json:"exile,omitempty"`
	Hidden      bool `json:"hidden,omitempty"`
	Permanent   bool `json:"permanent,omitempty"`
	DoubleSided bool `json:"double_sided,omitempty"`
	Exceptional bool `json:"exceptional,omitempty"`
	Spoiler     bool `json:"spoiler,omitempty"`

	URL          string `json:"url,omitempty"`
	OctgnID      string `json:"octgn_id,omitempty"`
	ImageSrc     string `json:"imagesrc,omitempty"`
	BackImageSrc string `json:"backimagesrc,omitempty"`

	LinkedToCode string `json:"linked_to_code,omitempty"`
	LinkedToName string `json:"linked_to_name,omitempty"`

	DeckRequirements *RawDeckRequirements `json:"deck_requirements,omitempty"`
	DeckOptions      []RawDeckOption      `json:"deck_options,omitempty"`
	Restrictions     *RawRestrictions     `json:"restrictions,omitempty"`
	LinkedCard       *RawCard             `json:"linked_card,omitempty"`
}

// RawDeckRequirements mirrors the nested deck_requirements object. The card
// map is keyed by the required code; the inner map keys list that code plus
// any acceptable alternates (the inner values carry no information).
type RawDeckRequirements struct {
	Size   int                       `json:"size"`
	Card   map[string]map[string]any `json:"card,omitempty"`
	Random []RawRandomRequirement    `json:"random,omitempty"`
}

type RawRandomRequirement struct {
	Target string `json:"target"`
	Value  string `json:"value"`
}

type RawDeckOption struct {
	Faction []string            `json:"faction,omitempty"`
	Uses    []string            `json:"uses,omitempty"`
	Text    []string            `json:"text,omitempty"`
	Trait   []string            `json:"trait,omitempty"`
	Limit   *int                `json:"limit,omitempty"`
	Error   string              `json:"error,omitempty"`
	Not     bool                `json:"not,omitempty"`
	Level   *RawDeckOptionLevel `json:"level,omitempty"`
	AtLeast *RawDeckAtLeast     `json:"atleast,omitempty"`
}

type RawDeckOptionLevel struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type RawDeckAtLeast struct {
	Factions int `json:"factions"`
	Min      int `json:"min"`
}

// RawRestrictions marks a card as usable only by specific investigators.
type RawRestrictions struct {
	Investigator map[string]string `json:"investigator,omitempty"`
}

// Pack is one entry of the pack lookup table handed to the normalizer.
type Pack struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Position      int    `json:"position"`
	CyclePosition int    `json:"cycle_position"`
}
