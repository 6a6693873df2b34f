package character

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document is the JSON form of a character sheet.
type Document struct {
	Name      string             `json:"name"`
	Career    string             `json:"career"`
	XPTotal   int                `json:"xp_total"`
	Purchases []PurchaseDocument `json:"purchases"`
}

// PurchaseDocument is the JSON form of one recorded purchase.
type PurchaseDocument struct {
	Name   string `json:"name"`
	XPCost int    `json:"xp_cost"`
	Page   int    `json:"page"`
}

// ToDocument converts a character into its serializable form.
func ToDocument(ch *Character) Document {
	doc := Document{
		Name:      ch.Name,
		Career:    ch.Career.Name,
		XPTotal:   ch.XPTotal,
		Purchases: make([]PurchaseDocument, 0, len(ch.Purchases)),
	}
	for _, p := range ch.Purchases {
		doc.Purchases = append(doc.Purchases, PurchaseDocument{Name: p.Name, XPCost: p.XPCost, Page: p.Page})
	}
	return doc
}

// FromDocument rebuilds a character, resolving the career against the
// registry and re-validating every purchase against current career rules.
// The first invalid purchase fails the load, naming the advance.
func FromDocument(doc Document, registry *Registry) (*Character, error) {
	career, err := registry.Get(doc.Career)
	if err != nil {
		return nil, err
	}
	ch := &Character{
		Name:    doc.Name,
		Career:  career,
		XPTotal: doc.XPTotal,
	}
	for _, p := range doc.Purchases {
		adv, err := career.GetAdvance(p.Name)
		if err != nil {
			return nil, err
		}
		owned := make([]string, 0, len(ch.Purchases))
		for _, prev := range ch.Purchases {
			owned = append(owned, prev.Name)
		}
		if missing := adv.MissingPrerequisites(owned); len(missing) > 0 {
			return nil, fmt.Errorf("advance %q is missing prerequisites: %v", adv.Name, missing)
		}
		if ch.PurchaseCount(adv.Name) >= adv.maxPurchases() {
			return nil, fmt.Errorf("advance %q exceeds its purchase limit of %d", adv.Name, adv.maxPurchases())
		}
		ch.Purchases = append(ch.Purchases, AdvancePurchase{Name: adv.Name, XPCost: adv.XPCost, Page: p.Page})
	}
	if ch.XPSpent() > ch.XPTotal {
		return nil, fmt.Errorf("character spends %d XP but only has %d", ch.XPSpent(), ch.XPTotal)
	}
	return ch, nil
}

// Save writes a character sheet to path as indented JSON.
func Save(ch *Character, path string) error {
	data, err := json.MarshalIndent(ToDocument(ch), "", "  ")
	if err != nil {
		return fmt.Errorf("encode character: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create character directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write character file: %w", err)
	}
	return nil
}

// Load reads and validates a character sheet from path.
func Load(path string, registry *Registry) (*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read character file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode character file %s: %w", path, err)
	}
	return FromDocument(doc, registry)
}
