package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mythosworks/lantern/internal/card"
)

// Cycle is one release cycle entry from the cycles JSON.
type Cycle struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Catalog is an immutable snapshot of the normalized card catalog. It is
// rebuilt wholesale on every (re)load; nothing mutates it in place, so it is
// safe to share read-only across the deck-editing and search flows.
type Catalog struct {
	Cards      []*card.Card
	Packs      map[string]card.Pack
	CycleNames map[int]string

	byCode map[string]*card.Card
}

// Load reads the raw catalog files and normalizes every record. Malformed
// optional fields and unknown pack codes are never fatal; only unreadable or
// syntactically invalid files are.
func Load(cardsPath, packsPath, cyclesPath string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	var packs []card.Pack
	if err := readJSON(packsPath, &packs); err != nil {
		return nil, fmt.Errorf("loading packs: %w", err)
	}
	var cycles []Cycle
	if err := readJSON(cyclesPath, &cycles); err != nil {
		return nil, fmt.Errorf("loading cycles: %w", err)
	}
	var raws []*card.RawCard
	if err := readJSON(cardsPath, &raws); err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}

	packsByCode := make(map[string]card.Pack, len(packs))
	for _, p := range packs {
		packsByCode[p.Code] = p
	}
	cycleNames := make(map[int]string, len(cycles))
	for _, c := range cycles {
		cycleNames[c.Position] = c.Name
	}

	catalog := &Catalog{
		Cards:      make([]*card.Card, 0, len(raws)),
		Packs:      packsByCode,
		CycleNames: cycleNames,
		byCode:     make(map[string]*card.Card, len(raws)),
	}
	for _, raw := range raws {
		c := card.NewCard(raw, packsByCode, cycleNames)
		catalog.Cards = append(catalog.Cards, c)
		catalog.byCode[c.Code] = c
	}

	logger.Info("catalog loaded",
		zap.Int("cards", len(catalog.Cards)),
		zap.Int("packs", len(packsByCode)),
		zap.Int("cycles", len(cycleNames)),
		zap.Duration("elapsed", time.Since(start)))
	return catalog, nil
}

// Get looks up a normalized card by its code.
func (c *Catalog) Get(code string) (*card.Card, bool) {
	found, ok := c.byCode[code]
	return found, ok
}

// Investigators returns the investigator cards in catalog order.
func (c *Catalog) Investigators() []*card.Card {
	var investigators []*card.Card
	for _, entry := range c.Cards {
		if entry.TypeCode == "investigator" {
			investigators = append(investigators, entry)
		}
	}
	return investigators
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
