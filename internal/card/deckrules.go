package card

import "sort"

// CardRequirement names one required card plus the codes accepted in its place.
type CardRequirement struct {
	Code       string
	Alternates []string
}

// RandomRequirement asks for a randomly drawn card whose Target field equals
// Value (e.g. target "subtype", value "basicweakness").
type RandomRequirement struct {
	Target string
	Value  string
}

// DeckRequirement is an investigator's structural deck contract: required
// signature cards, random draws, and the required deck size.
type DeckRequirement struct {
	Card   []CardRequirement
	Random []RandomRequirement
	Size   int
}

// DeckOptionLevel is an inclusive XP range attached to a deck option.
type DeckOptionLevel struct {
	Min int
	Max int
}

// DeckAtLeastOption demands a minimum card count from a number of factions.
type DeckAtLeastOption struct {
	Factions int
	Min      int
}

// DeckOption is one eligibility clause of an investigator's deck-building
// rules. Empty axes are unconstrained; Not turns the clause into a
// prohibition.
type DeckOption struct {
	Faction []string
	Uses    []string
	Text    []string
	Trait   []string
	Limit   *int
	Error   string
	Not     bool
	Level   *DeckOptionLevel
	AtLeast *DeckAtLeastOption
}

// CardRestrictions limits a card to the investigators it names.
type CardRestrictions struct {
	Investigator map[string]string
}

func parseDeckRequirements(raw *RawDeckRequirements) *DeckRequirement {
	dr := &DeckRequirement{Size: raw.Size}

	// Map iteration order is not stable; sort so normalization is
	// deterministic.
	codes := make([]string, 0, len(raw.Card))
	for code := range raw.Card {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		cr := CardRequirement{Code: code}
		for alt := range raw.Card[code] {
			if alt != code {
				cr.Alternates = append(cr.Alternates, alt)
			}
		}
		sort.Strings(cr.Alternates)
		dr.Card = append(dr.Card, cr)
	}

	for _, r := range raw.Random {
		dr.Random = append(dr.Random, RandomRequirement{Target: r.Target, Value: r.Value})
	}
	return dr
}

func parseDeckOptions(raw []RawDeckOption) []DeckOption {
	options := make([]DeckOption, 0, len(raw))
	for _, o := range raw {
		option := DeckOption{
			Faction: append([]string(nil), o.Faction...),
			Uses:    append([]string(nil), o.Uses...),
			Text:    append([]string(nil), o.Text...),
			Trait:   append([]string(nil), o.Trait...),
			Error:   o.Error,
			Not:     o.Not,
		}
		if o.Limit != nil {
			limit := *o.Limit
			option.Limit = &limit
		}
		if o.Level != nil {
			option.Level = &DeckOptionLevel{Min: o.Level.Min, Max: o.Level.Max}
		}
		if o.AtLeast != nil {
			option.AtLeast = &DeckAtLeastOption{Factions: o.AtLeast.Factions, Min: o.AtLeast.Min}
		}
		options = append(options, option)
	}
	return options
}

func parseRestrictions(raw *RawRestrictions) *CardRestrictions {
	restrictions := &CardRestrictions{}
	if len(raw.Investigator) > 0 {
		restrictions.Investigator = make(map[string]string, len(raw.Investigator))
		for code, value := range raw.Investigator {
			restrictions.Investigator[code] = value
		}
	}
	return restrictions
}
