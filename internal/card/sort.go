package card

// TypeHeaderOrder is the fixed bucket order used when search results are
// grouped by card type. SortByType is an index into this list.
var TypeHeaderOrder = []string{
	"Investigator",
	"Asset: Hand",
	"Asset: Hand x2",
	"Asset: Accessory",
	"Asset: Ally",
	"Asset: Arcane",
	"Asset: Arcane x2",
	"Asset: Body",
	"Asset: Permanent",
	"Asset: Other",
	"Event",
	"Skill",
	"Basic Weakness",
	"Weakness",
	"Scenario",
	"Story",
}

// FactionHeaderOrder is the fixed bucket order used when search results are
// grouped by faction. SortByFaction is an index into this list.
var FactionHeaderOrder = []string{
	"Guardian",
	"Seeker",
	"Mystic",
	"Rogue",
	"Survivor",
	"Neutral",
	"Weakness",
	"Mythos",
}

// TypeSortHeader buckets a raw card for type-ordered display. Spoiler
// assets/events/skills sort as story cards, and permanent or double-sided
// assets sort ahead of the slot buckets.
func TypeSortHeader(raw *RawCard) string {
	switch raw.SubtypeCode {
	case "basicweakness":
		return "Basic Weakness"
	case "weakness":
		return "Weakness"
	}
	switch raw.TypeCode {
	case "asset":
		if raw.Spoiler {
			return "Story"
		}
		if raw.Permanent || raw.DoubleSided {
			return "Asset: Permanent"
		}
		switch raw.Slot {
		case "Hand":
			return "Asset: Hand"
		case "Hand x2":
			return "Asset: Hand x2"
		case "Accessory":
			return "Asset: Accessory"
		case "Ally":
			return "Asset: Ally"
		case "Arcane":
			return "Asset: Arcane"
		case "Arcane x2":
			return "Asset: Arcane x2"
		case "Body":
			return "Asset: Body"
		default:
			return "Asset: Other"
		}
	case "event":
		if raw.Spoiler {
			return "Story"
		}
		return "Event"
	case "skill":
		if raw.Spoiler {
			return "Story"
		}
		return "Skill"
	case "investigator":
		return "Investigator"
	default:
		return "Scenario"
	}
}

// FactionSortHeader buckets a raw card for faction-ordered display.
func FactionSortHeader(raw *RawCard) string {
	if raw.Spoiler {
		return "Mythos"
	}
	switch raw.SubtypeCode {
	case "basicweakness", "weakness":
		return "Weakness"
	default:
		return raw.FactionName
	}
}

func headerIndex(order []string, header string) int {
	for i, h := range order {
		if h == header {
			return i
		}
	}
	return -1
}
