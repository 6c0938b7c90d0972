package deck

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mythosworks/lantern/internal/card"
	"github.com/mythosworks/lantern/internal/catalog"
)

// Deck is a saved deck: an investigator plus card slots (code -> copy count).
// Decks are stored as TOML files.
type Deck struct {
	ID           string         `toml:"id"`
	Name         string         `toml:"name"`
	Investigator string         `toml:"investigator"`
	Slots        map[string]int `toml:"slots"`
}

// New creates an empty deck for the given investigator code.
func New(name, investigatorCode string) *Deck {
	return &Deck{
		ID:           uuid.NewString(),
		Name:         name,
		Investigator: investigatorCode,
		Slots:        make(map[string]int),
	}
}

// Load reads a saved deck file.
func Load(path string) (*Deck, error) {
	var d Deck
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("error parsing deck file %s: %w", path, err)
	}
	if d.Investigator == "" {
		return nil, fmt.Errorf("deck file %s names no investigator", path)
	}
	if d.Slots == nil {
		d.Slots = make(map[string]int)
	}
	return &d, nil
}

// Save writes the deck to a TOML file, creating or replacing it.
func (d *Deck) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating deck file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("error encoding deck: %w", err)
	}
	return nil
}

// SetSlot sets the copy count for a card code; zero or negative removes it.
func (d *Deck) SetSlot(code string, count int) {
	if count <= 0 {
		delete(d.Slots, code)
		return
	}
	d.Slots[code] = count
}

// Size returns the total number of physical copies in the deck.
func (d *Deck) Size() int {
	total := 0
	for _, count := range d.Slots {
		total += count
	}
	return total
}

// Cards expands the slots into a multiset of normalized cards, one entry per
// physical copy, ordered by card code. Unknown codes are an error: a deck
// cannot be judged against a catalog that does not contain its cards.
func (d *Deck) Cards(cat *catalog.Catalog) ([]*card.Card, error) {
	codes := make([]string, 0, len(d.Slots))
	for code := range d.Slots {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var cards []*card.Card
	for _, code := range codes {
		c, ok := cat.Get(code)
		if !ok {
			return nil, fmt.Errorf("card %s not in catalog", code)
		}
		for i := 0; i < d.Slots[code]; i++ {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// InvestigatorCard resolves the deck's investigator against the catalog.
func (d *Deck) InvestigatorCard(cat *catalog.Catalog) (*card.Card, error) {
	c, ok := cat.Get(d.Investigator)
	if !ok {
		return nil, fmt.Errorf("investigator %s not in catalog", d.Investigator)
	}
	if c.TypeCode != "investigator" {
		return nil, fmt.Errorf("card %s is not an investigator", d.Investigator)
	}
	return c, nil
}

// yamlDeckFile is the import format: a deck list with per-card copy counts.
type yamlDeckFile struct {
	Name         string `yaml:"name"`
	Investigator string `yaml:"investigator"`
	Cards        []struct {
		Code  string `yaml:"code"`
		Count int    `yaml:"count"`
	} `yaml:"cards"`
}

// ImportYAML reads a YAML deck list and converts it into a saved deck.
// Repeated codes accumulate; a missing count means one copy.
func ImportYAML(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df yamlDeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	if df.Investigator == "" {
		return nil, fmt.Errorf("deck list %s names no investigator", path)
	}

	d := New(df.Name, df.Investigator)
	for _, entry := range df.Cards {
		count := entry.Count
		if count == 0 {
			count = 1
		}
		d.Slots[entry.Code] += count
	}
	return d, nil
}
