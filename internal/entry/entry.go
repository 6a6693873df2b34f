// Package entry defines the structured records extracted from rulebook
// text. Entries are immutable after construction; Record returns the
// canonical serializable form with a "type" discriminator, omitting unset
// optional fields so persisted JSON stays compact.
package entry

// Entry is one structured record extracted from text.
type Entry interface {
	// EntryType returns the type discriminator used in serialized records.
	EntryType() string
	// Record returns the canonical map form of the entry.
	Record() map[string]any
}

// Records converts a slice of entries into their serializable map forms.
func Records(entries []Entry) []map[string]any {
	records := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record())
	}
	return records
}

// putProvenance attaches optional page/source fields when set. Page numbers
// are 1-based, so zero means unknown.
func putProvenance(rec map[string]any, page int, source string) {
	if page > 0 {
		rec["page"] = page
	}
	if source != "" {
		rec["source"] = source
	}
}

// Talent is a talent definition with optional prerequisites.
type Talent struct {
	Name          string
	Prerequisites []string
	Description   string
	Page          int
	Source        string
}

func (t *Talent) EntryType() string { return "talent" }

func (t *Talent) Record() map[string]any {
	rec := map[string]any{
		"type":        "talent",
		"name":        t.Name,
		"description": t.Description,
	}
	if len(t.Prerequisites) > 0 {
		rec["prerequisites"] = t.Prerequisites
	}
	putProvenance(rec, t.Page, t.Source)
	return rec
}

// Advance is a purchasable career upgrade row from an advances table.
// Career and Rank are advisory metadata attached when a surrounding
// section header identifies them; they are never required.
type Advance struct {
	Name          string
	Cost          int
	AdvanceType   string
	Prerequisites []string
	Career        string
	Rank          string
	Page          int
	Source        string
}

func (a *Advance) EntryType() string { return "advance" }

func (a *Advance) Record() map[string]any {
	rec := map[string]any{
		"type":         "advance",
		"name":         a.Name,
		"cost":         a.Cost,
		"advance_type": a.AdvanceType,
	}
	if len(a.Prerequisites) > 0 {
		rec["prerequisites"] = a.Prerequisites
	}
	if a.Career != "" {
		rec["career"] = a.Career
	}
	if a.Rank != "" {
		rec["rank"] = a.Rank
	}
	putProvenance(rec, a.Page, a.Source)
	return rec
}

// CharacteristicAdvance is the XP cost of one characteristic at one tier.
type CharacteristicAdvance struct {
	Characteristic string
	Tier           string
	Cost           int
	Career         string
	Page           int
	Source         string
}

func (c *CharacteristicAdvance) EntryType() string { return "characteristic_advance" }

func (c *CharacteristicAdvance) Record() map[string]any {
	rec := map[string]any{
		"type":           "characteristic_advance",
		"characteristic": c.Characteristic,
		"tier":           c.Tier,
		"cost":           c.Cost,
	}
	if c.Career != "" {
		rec["career"] = c.Career
	}
	putProvenance(rec, c.Page, c.Source)
	return rec
}

// DivinationResult is a single row of a divination table. Quote and Effect
// may be empty but are always serialized.
type DivinationResult struct {
	RollMin int
	RollMax int
	Quote   string
	Effect  string
	Page    int
	Source  string
}

func (d *DivinationResult) EntryType() string { return "divination" }

func (d *DivinationResult) Record() map[string]any {
	rec := map[string]any{
		"type":     "divination",
		"roll_min": d.RollMin,
		"roll_max": d.RollMax,
		"quote":    d.Quote,
		"effect":   d.Effect,
	}
	putProvenance(rec, d.Page, d.Source)
	return rec
}

// PsychicPower is a psychic power definition. Threshold is mandatory at
// parse time; the remaining metadata strings may be empty.
type PsychicPower struct {
	Name        string
	Threshold   int
	FocusTime   string
	Sustain     string
	Range       string
	Description string
	Page        int
	Source      string
}

func (p *PsychicPower) EntryType() string { return "psychic_power" }

func (p *PsychicPower) Record() map[string]any {
	rec := map[string]any{
		"type":        "psychic_power",
		"name":        p.Name,
		"threshold":   p.Threshold,
		"focus_time":  p.FocusTime,
		"sustain":     p.Sustain,
		"range":       p.Range,
		"description": p.Description,
	}
	putProvenance(rec, p.Page, p.Source)
	return rec
}

// Block is a generic parsed block with optional structured attributes.
// RawText preserves the original block verbatim for audit and clean-up.
type Block struct {
	Kind        string
	Name        string
	Description string
	Attributes  map[string]string
	RawText     string
}

func (b *Block) EntryType() string { return b.Kind }

func (b *Block) Record() map[string]any {
	return map[string]any{
		"type":        b.Kind,
		"name":        b.Name,
		"description": b.Description,
		"attributes":  b.Attributes,
		"raw_text":    b.RawText,
	}
}
