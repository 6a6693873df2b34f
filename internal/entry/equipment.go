package entry

// RangedWeapon is one row of a ranged weapons table. All stat columns stay
// strings because rulebooks mix numbers with annotations ("S/2/–", "30m").
type RangedWeapon struct {
	Name            string
	Class           string
	Range           string
	RoF             string
	Damage          string
	Penetration     string
	Clip            string
	Reload          string
	Special         string
	Weight          string
	Cost            string
	Availability    string
	Page            int
	Source          string
	FullDescription string
}

func (w *RangedWeapon) EntryType() string { return "ranged_weapon" }

func (w *RangedWeapon) Record() map[string]any {
	rec := map[string]any{
		"type":         "ranged_weapon",
		"name":         w.Name,
		"class":        w.Class,
		"range":        w.Range,
		"rof":          w.RoF,
		"damage":       w.Damage,
		"penetration":  w.Penetration,
		"clip":         w.Clip,
		"reload":       w.Reload,
		"special":      w.Special,
		"weight":       w.Weight,
		"cost":         w.Cost,
		"availability": w.Availability,
	}
	if w.FullDescription != "" {
		rec["full_description"] = w.FullDescription
	}
	putProvenance(rec, w.Page, w.Source)
	return rec
}

// MeleeWeapon is one row of a melee weapons table. Range is kept for
// melee/thrown hybrids.
type MeleeWeapon struct {
	Name            string
	Class           string
	Range           string
	Damage          string
	Penetration     string
	Special         string
	Weight          string
	Cost            string
	Availability    string
	Page            int
	Source          string
	FullDescription string
}

func (w *MeleeWeapon) EntryType() string { return "melee_weapon" }

func (w *MeleeWeapon) Record() map[string]any {
	rec := map[string]any{
		"type":         "melee_weapon",
		"name":         w.Name,
		"class":        w.Class,
		"range":        w.Range,
		"damage":       w.Damage,
		"penetration":  w.Penetration,
		"special":      w.Special,
		"weight":       w.Weight,
		"cost":         w.Cost,
		"availability": w.Availability,
	}
	if w.FullDescription != "" {
		rec["full_description"] = w.FullDescription
	}
	putProvenance(rec, w.Page, w.Source)
	return rec
}

// Armour is one row of an armour table.
type Armour struct {
	Name            string
	ArmourType      string
	Locations       string
	AP              string
	Weight          string
	Cost            string
	Availability    string
	Page            int
	Source          string
	FullDescription string
}

func (a *Armour) EntryType() string { return "armour" }

func (a *Armour) Record() map[string]any {
	rec := map[string]any{
		"type":         "armour",
		"name":         a.Name,
		"armour_type":  a.ArmourType,
		"locations":    a.Locations,
		"ap":           a.AP,
		"weight":       a.Weight,
		"cost":         a.Cost,
		"availability": a.Availability,
	}
	if a.FullDescription != "" {
		rec["full_description"] = a.FullDescription
	}
	putProvenance(rec, a.Page, a.Source)
	return rec
}
