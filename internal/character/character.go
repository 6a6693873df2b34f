// Package character models the progression ledger: careers made of
// purchasable advances, and characters with XP accounting. All mutation
// points enforce the ledger invariants (prerequisites owned, XP spent
// never exceeding XP total, repeat limits respected).
package character

import (
	"fmt"
	"strings"
)

// PrerequisiteError reports an advance purchase that violates career rules.
type PrerequisiteError struct {
	Advance string
	Reason  string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("advance %q: %s", e.Advance, e.Reason)
}

// Advance is an upgrade available to a career. MaxPurchases above one
// marks a repeatable advance; the zero value means a single purchase.
type Advance struct {
	Name          string
	XPCost        int
	Page          int
	Prerequisites []string
	MaxPurchases  int
}

func (a Advance) maxPurchases() int {
	if a.MaxPurchases < 1 {
		return 1
	}
	return a.MaxPurchases
}

// MissingPrerequisites returns the prerequisites not present in owned,
// compared case-insensitively by name.
func (a Advance) MissingPrerequisites(owned []string) []string {
	ownedSet := make(map[string]bool, len(owned))
	for _, name := range owned {
		ownedSet[strings.ToLower(name)] = true
	}
	var missing []string
	for _, name := range a.Prerequisites {
		if !ownedSet[strings.ToLower(name)] {
			missing = append(missing, name)
		}
	}
	return missing
}

// AdvancePurchase records one purchased advance on a character sheet.
type AdvancePurchase struct {
	Name   string
	XPCost int
	Page   int
}

// Career defines the advances available to characters following it.
type Career struct {
	Name     string
	advances map[string]Advance
	order    []string
}

// NewCareer creates a career from its advance list.
func NewCareer(name string, advances []Advance) *Career {
	c := &Career{
		Name:     name,
		advances: make(map[string]Advance, len(advances)),
	}
	for _, adv := range advances {
		key := strings.ToLower(adv.Name)
		if _, exists := c.advances[key]; !exists {
			c.order = append(c.order, key)
		}
		c.advances[key] = adv
	}
	return c
}

// GetAdvance looks up an advance by name, case-insensitively.
func (c *Career) GetAdvance(name string) (Advance, error) {
	adv, ok := c.advances[strings.ToLower(name)]
	if !ok {
		return Advance{}, fmt.Errorf("advance %q not found for career %q", name, c.Name)
	}
	return adv, nil
}

// Advances returns the career's advances in definition order.
func (c *Career) Advances() []Advance {
	out := make([]Advance, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.advances[key])
	}
	return out
}

// Character tracks a named character's career, XP pool, and purchases.
type Character struct {
	Name      string
	Career    *Career
	XPTotal   int
	Purchases []AdvancePurchase
}

// PurchaseCount returns how many times the named advance has been bought.
func (ch *Character) PurchaseCount(name string) int {
	count := 0
	for _, p := range ch.Purchases {
		if strings.EqualFold(p.Name, name) {
			count++
		}
	}
	return count
}

// HasAdvance reports whether the named advance has been bought at least
// once.
func (ch *Character) HasAdvance(name string) bool {
	return ch.PurchaseCount(name) > 0
}

// XPSpent is the sum of all purchase costs.
func (ch *Character) XPSpent() int {
	total := 0
	for _, p := range ch.Purchases {
		total += p.XPCost
	}
	return total
}

// XPAvailable is the XP left to spend.
func (ch *Character) XPAvailable() int {
	return ch.XPTotal - ch.XPSpent()
}

func (ch *Character) validatePurchase(adv Advance) error {
	if count := ch.PurchaseCount(adv.Name); count >= adv.maxPurchases() {
		if adv.maxPurchases() == 1 {
			return &PrerequisiteError{Advance: adv.Name, Reason: "already purchased"}
		}
		return &PrerequisiteError{
			Advance: adv.Name,
			Reason:  fmt.Sprintf("already purchased %d of %d times", count, adv.maxPurchases()),
		}
	}

	owned := make([]string, 0, len(ch.Purchases))
	for _, p := range ch.Purchases {
		owned = append(owned, p.Name)
	}
	if missing := adv.MissingPrerequisites(owned); len(missing) > 0 {
		return &PrerequisiteError{
			Advance: adv.Name,
			Reason:  "missing prerequisites: " + strings.Join(missing, ", "),
		}
	}

	if adv.XPCost > ch.XPAvailable() {
		return &PrerequisiteError{
			Advance: adv.Name,
			Reason:  fmt.Sprintf("not enough XP: cost %d, available %d", adv.XPCost, ch.XPAvailable()),
		}
	}
	return nil
}

// PurchaseAdvance buys the named advance from the character's career. On
// any rule violation the purchase list is left unchanged. pageOverride
// replaces the advance's rulebook page when positive.
func (ch *Character) PurchaseAdvance(name string, pageOverride int) (AdvancePurchase, error) {
	adv, err := ch.Career.GetAdvance(name)
	if err != nil {
		return AdvancePurchase{}, err
	}
	if err := ch.validatePurchase(adv); err != nil {
		return AdvancePurchase{}, err
	}

	page := adv.Page
	if pageOverride > 0 {
		page = pageOverride
	}
	purchase := AdvancePurchase{Name: adv.Name, XPCost: adv.XPCost, Page: page}
	ch.Purchases = append(ch.Purchases, purchase)
	return purchase, nil
}

// Summary renders a human-readable character sheet.
func (ch *Character) Summary() string {
	lines := []string{
		"Name: " + ch.Name,
		"Career: " + ch.Career.Name,
		fmt.Sprintf("XP Total: %d", ch.XPTotal),
		fmt.Sprintf("XP Spent: %d", ch.XPSpent()),
		fmt.Sprintf("XP Available: %d", ch.XPAvailable()),
		"Advances:",
	}
	if len(ch.Purchases) == 0 {
		lines = append(lines, "  (none)")
	} else {
		for _, p := range ch.Purchases {
			lines = append(lines, fmt.Sprintf("  - %s (XP %d, page %d)", p.Name, p.XPCost, p.Page))
		}
	}
	return strings.Join(lines, "\n")
}
