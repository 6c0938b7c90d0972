package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mythosworks/lantern/internal/card"
)

// Reason is a stable machine-readable code for why a deck is illegal.
type Reason string

const (
	TooFewCards      Reason = "too_few_cards"
	TooManyCards     Reason = "too_many_cards"
	TooManyCopies    Reason = "too_many_copies"
	InvalidCards     Reason = "invalid_cards"
	DeckOptionsLimit Reason = "deck_options_limit"
	Investigator     Reason = "investigator"
)

// Messages maps each reason to its user-facing description.
var Messages = map[Reason]string{
	TooFewCards:      "Not enough cards.",
	TooManyCards:     "Too many cards.",
	TooManyCopies:    "Too many copies of a card with the same name.",
	InvalidCards:     "Contains forbidden cards (cards not permitted by Faction)",
	DeckOptionsLimit: "Contains too many limited cards.",
	Investigator:     "Doesn't comply with the Investigator requirements.",
}

// DeckProblem is the first legality violation found in a deck. A nil
// DeckProblem means the deck is legal.
type DeckProblem struct {
	Reason   Reason
	Problems []string
}

// Message returns the user-facing description for the problem's reason.
func (p *DeckProblem) Message() string {
	return Messages[p.Reason]
}

// defaultDeckSize applies when an investigator declares no explicit size.
const defaultDeckSize = 30

// Validator checks decks against one investigator's deck-building rules.
// It holds no mutable state and is safe to reuse across calls.
type Validator struct {
	investigator *card.Card
}

// New builds a validator for the given investigator. Callers must supply a
// normalized investigator card; anything else is a contract violation.
func New(investigator *card.Card) *Validator {
	if investigator == nil {
		panic("validator: nil investigator")
	}
	if investigator.TypeCode != "investigator" {
		panic(fmt.Sprintf("validator: %q is not an investigator card", investigator.Code))
	}
	return &Validator{investigator: investigator}
}

// Validate checks an expanded multiset of chosen cards (one entry per
// physical copy) and returns the first problem found, or nil for a legal
// deck. Checks run in a fixed priority order so the user sees the most
// actionable message, not an exhaustive list. Inputs are never mutated.
func (v *Validator) Validate(cards []*card.Card) *DeckProblem {
	if problem := v.checkSize(cards); problem != nil {
		return problem
	}
	if problem := v.checkCopies(cards); problem != nil {
		return problem
	}
	if problem := v.checkEligibility(cards); problem != nil {
		return problem
	}
	if problem := v.checkRequirements(cards); problem != nil {
		return problem
	}
	return nil
}

// requiredSize returns the deck size the investigator demands.
func (v *Validator) requiredSize() int {
	if dr := v.investigator.DeckRequirements; dr != nil && dr.Size > 0 {
		return dr.Size
	}
	return defaultDeckSize
}

// checkSize counts physical copies against the required deck size. Permanent
// cards do not occupy deck slots.
func (v *Validator) checkSize(cards []*card.Card) *DeckProblem {
	size := v.requiredSize()
	count := 0
	for _, c := range cards {
		if c.Permanent {
			continue
		}
		count++
	}
	if count < size {
		return &DeckProblem{Reason: TooFewCards}
	}
	if count > size {
		return &DeckProblem{Reason: TooManyCards}
	}
	return nil
}

// checkCopies groups copies by printed name, folding requirement alternates
// into their primary, and enforces the lower of the card's own deck limit and
// any matching deck option limit.
func (v *Validator) checkCopies(cards []*card.Card) *DeckProblem {
	names := make(map[string]string)
	counts := make(map[string]int)
	limits := make(map[string]int)
	var order []string

	for _, c := range cards {
		key := v.copyGroupKey(c)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			names[key] = c.RenderName
			limits[key] = v.copyLimit(c)
		}
		counts[key]++
		if limit := v.copyLimit(c); limit < limits[key] {
			limits[key] = limit
		}
	}

	var offending []string
	for _, key := range order {
		if counts[key] > limits[key] {
			offending = append(offending, names[key])
		}
	}
	if len(offending) > 0 {
		return &DeckProblem{Reason: TooManyCopies, Problems: offending}
	}
	return nil
}

// copyGroupKey folds alternate printings of a required card into the primary
// code; everything else groups by printed name.
func (v *Validator) copyGroupKey(c *card.Card) string {
	if dr := v.investigator.DeckRequirements; dr != nil {
		for _, req := range dr.Card {
			for _, alt := range req.Alternates {
				if c.Code == alt {
					return req.Code
				}
			}
			if c.Code == req.Code {
				return req.Code
			}
		}
	}
	name := c.RealName
	if name == "" {
		name = c.Name
	}
	return name
}

// copyLimit is the per-title limit: the card's own deck limit, lowered by
// any matching deck option that carries a limit of its own.
func (v *Validator) copyLimit(c *card.Card) int {
	limit := 2
	if c.DeckLimit != nil {
		limit = *c.DeckLimit
	}
	for i := range v.investigator.DeckOptions {
		option := &v.investigator.DeckOptions[i]
		if option.Limit == nil || option.Not {
			continue
		}
		if matchesOption(option, c) && *option.Limit < limit {
			limit = *option.Limit
		}
	}
	return limit
}

// checkEligibility walks the deck options in declaration order for every
// non-exempt card. A negated option that matches prohibits the card outright;
// an option with a limit only admits cards while its budget lasts, and a card
// that found nothing but exhausted limited options is a limit violation
// rather than a forbidden card.
func (v *Validator) checkEligibility(cards []*card.Card) *DeckProblem {
	options := v.investigator.DeckOptions
	budgets := make([]int, len(options))
	for i := range options {
		if options[i].Limit != nil {
			budgets[i] = *options[i].Limit
		}
	}

	var invalid, overLimit []string
	seenInvalid := make(map[string]bool)
	for _, c := range cards {
		if v.exempt(c) {
			continue
		}
		allowed := false
		exhaustedLimited := false
		for i := range options {
			option := &options[i]
			if option.AtLeast != nil {
				continue
			}
			if !matchesOption(option, c) {
				continue
			}
			if option.Not {
				allowed = false
				exhaustedLimited = false
				break
			}
			if option.Limit != nil {
				if budgets[i] > 0 {
					budgets[i]--
					allowed = true
					break
				}
				exhaustedLimited = true
				continue
			}
			allowed = true
			break
		}
		if allowed {
			continue
		}
		if exhaustedLimited {
			overLimit = append(overLimit, c.RenderName)
		} else if !seenInvalid[c.Code] {
			seenInvalid[c.Code] = true
			invalid = append(invalid, c.RenderName)
		}
	}

	if len(invalid) > 0 {
		return &DeckProblem{Reason: InvalidCards, Problems: invalid}
	}
	if len(overLimit) > 0 {
		return &DeckProblem{Reason: DeckOptionsLimit, Problems: overLimit}
	}
	return nil
}

// exempt cards bypass the deck options: required signature cards, cards
// restricted to this investigator, and weaknesses.
func (v *Validator) exempt(c *card.Card) bool {
	if c.SubtypeCode == "weakness" || c.SubtypeCode == "basicweakness" {
		return true
	}
	if c.RestrictedTo(v.investigator.Code) {
		return true
	}
	if dr := v.investigator.DeckRequirements; dr != nil {
		for _, req := range dr.Card {
			if c.Code == req.Code {
				return true
			}
			for _, alt := range req.Alternates {
				if c.Code == alt {
					return true
				}
			}
		}
	}
	return false
}

// checkRequirements enforces the investigator's structural demands: required
// cards (with alternates), random-selection rules, and cross-faction
// minimums.
func (v *Validator) checkRequirements(cards []*card.Card) *DeckProblem {
	var problems []string

	for i := range v.investigator.DeckOptions {
		option := &v.investigator.DeckOptions[i]
		if option.AtLeast == nil {
			continue
		}
		perFaction := make(map[string]int)
		for _, c := range cards {
			perFaction[c.FactionCode]++
		}
		meeting := 0
		for _, count := range perFaction {
			if count >= option.AtLeast.Min {
				meeting++
			}
		}
		if meeting < option.AtLeast.Factions {
			message := option.Error
			if message == "" {
				message = fmt.Sprintf("Deck must include at least %d cards from %d factions",
					option.AtLeast.Min, option.AtLeast.Factions)
			}
			problems = append(problems, message)
		}
	}

	if dr := v.investigator.DeckRequirements; dr != nil {
		for _, req := range dr.Card {
			if !containsCode(cards, req.Code, req.Alternates) {
				problems = append(problems, fmt.Sprintf("Deck requires card %s", req.Code))
			}
		}
		for _, random := range dr.Random {
			if countMatchingRandom(cards, random) == 0 {
				problems = append(problems, fmt.Sprintf("Deck requires a random %s", random.Value))
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return &DeckProblem{Reason: Investigator, Problems: problems}
	}
	return nil
}

func containsCode(cards []*card.Card, code string, alternates []string) bool {
	for _, c := range cards {
		if c.Code == code {
			return true
		}
		for _, alt := range alternates {
			if c.Code == alt {
				return true
			}
		}
	}
	return false
}

func countMatchingRandom(cards []*card.Card, random card.RandomRequirement) int {
	count := 0
	for _, c := range cards {
		var field string
		switch random.Target {
		case "subtype":
			field = c.SubtypeCode
		case "type":
			field = c.TypeCode
		case "faction":
			field = c.FactionCode
		}
		if field == random.Value {
			count++
		}
	}
	return count
}

// matchesOption tests a card against one deck option clause. Every declared
// axis must hold; empty axes are unconstrained. Not is handled by the caller.
func matchesOption(option *card.DeckOption, c *card.Card) bool {
	if len(option.Faction) == 0 && len(option.Trait) == 0 &&
		len(option.Uses) == 0 && len(option.Text) == 0 && option.Level == nil {
		return false
	}
	if len(option.Faction) > 0 && !containsString(option.Faction, c.FactionCode) {
		return false
	}
	if len(option.Trait) > 0 {
		found := false
		for _, trait := range option.Trait {
			if c.HasTrait(trait) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(option.Uses) > 0 && !containsString(option.Uses, c.Uses) {
		return false
	}
	if len(option.Text) > 0 {
		found := false
		text := strings.ToLower(c.RealText)
		for _, fragment := range option.Text {
			if fragment != "" && strings.Contains(text, strings.ToLower(fragment)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if option.Level != nil {
		level := c.Level()
		if level < option.Level.Min || level > option.Level.Max {
			return false
		}
	}
	return true
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
