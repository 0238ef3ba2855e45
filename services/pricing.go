package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-ordering/models"
)

// OptionPolicy decides what happens to a modifier selection that does not
// resolve to an option of the requested item.
type OptionPolicy string

const (
	// OptionPolicyStrict rejects the order with ModifierOptionNotFound.
	OptionPolicyStrict OptionPolicy = "strict"
	// OptionPolicyLenient prices the selection at zero and drops it.
	OptionPolicyLenient OptionPolicy = "lenient"
)

// ParseOptionPolicy reads the MODIFIER_OPTION_POLICY setting.
func ParseOptionPolicy(s string) (OptionPolicy, error) {
	switch OptionPolicy(s) {
	case OptionPolicyStrict, OptionPolicyLenient:
		return OptionPolicy(s), nil
	}
	return "", fmt.Errorf("unknown modifier option policy %q", s)
}

// ModifierSelection picks Quantity units of one modifier option for a line.
type ModifierSelection struct {
	ModifierOptionID uint
	Quantity         int
}

// LineRequest is one unpriced cart line as submitted by the customer.
type LineRequest struct {
	ItemID    uint
	Quantity  int
	Modifiers []ModifierSelection
	Notes     string
}

// Catalog is a snapshot of items keyed by id, with modifiers and options loaded.
type Catalog map[uint]models.Item

func NewCatalog(items []models.Item) Catalog {
	c := make(Catalog, len(items))
	for _, it := range items {
		c[it.ID] = it
	}
	return c
}

// PricedModifier is a resolved selection with its price snapshot.
type PricedModifier struct {
	Option     models.ModifierOption
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// PricedLine is one line with its unit price and line total fixed.
type PricedLine struct {
	Item       models.Item
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Modifiers  []PricedModifier
	Notes      string
}

// PricedOrder holds the priced lines and their sum.
type PricedOrder struct {
	Lines []PricedLine
	Total decimal.Decimal
}

// PricingEngine turns line requests into snapshotted prices. It never touches
// storage: everything it needs comes from the Catalog.
type PricingEngine struct {
	OptionPolicy OptionPolicy
}

// Price computes every line as (unit + Σ option × optionQty) × qty and the
// order total as the sum of lines. Catalog prices are taken at two decimals so
// snapshotted unit prices always multiply out to the stored totals. Any
// unavailable item rejects the whole set.
func (e PricingEngine) Price(catalog Catalog, lines []LineRequest) (*PricedOrder, error) {
	if len(lines) == 0 {
		return nil, newValidationError("items", "at least one item is required")
	}

	out := &PricedOrder{
		Lines: make([]PricedLine, 0, len(lines)),
		Total: decimal.Zero,
	}

	for i, line := range lines {
		priced, err := e.priceLine(catalog, i, line)
		if err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, *priced)
		out.Total = out.Total.Add(priced.TotalPrice)
	}

	return out, nil
}

func (e PricingEngine) priceLine(catalog Catalog, index int, line LineRequest) (*PricedLine, error) {
	if line.Quantity <= 0 {
		return nil, newValidationError(fmt.Sprintf("items[%d].quantity", index), "must be a positive integer")
	}

	item, ok := catalog[line.ItemID]
	if !ok || !item.IsAvailable {
		return nil, &ItemUnavailableError{ItemID: line.ItemID}
	}
	if item.Price.IsNegative() {
		return nil, fmt.Errorf("item %d has negative price %s", item.ID, item.Price)
	}

	unit := item.Price.Round(2)
	extras := decimal.Zero
	modifiers := make([]PricedModifier, 0, len(line.Modifiers))

	for j, sel := range line.Modifiers {
		if sel.Quantity <= 0 {
			return nil, newValidationError(fmt.Sprintf("items[%d].modifiers[%d].quantity", index, j), "must be a positive integer")
		}

		option, found := findOption(item, sel.ModifierOptionID)
		if !found {
			if e.OptionPolicy == OptionPolicyLenient {
				continue
			}
			return nil, &ModifierOptionNotFoundError{ItemID: item.ID, OptionID: sel.ModifierOptionID}
		}
		if option.Price.IsNegative() {
			return nil, fmt.Errorf("modifier option %d has negative price %s", option.ID, option.Price)
		}

		optionPrice := option.Price.Round(2)
		qty := decimal.NewFromInt(int64(sel.Quantity))
		total := optionPrice.Mul(qty)
		extras = extras.Add(total)
		modifiers = append(modifiers, PricedModifier{
			Option:     option,
			Quantity:   sel.Quantity,
			UnitPrice:  optionPrice,
			TotalPrice: total,
		})
	}

	lineTotal := unit.Add(extras).Mul(decimal.NewFromInt(int64(line.Quantity)))

	return &PricedLine{
		Item:       item,
		Quantity:   line.Quantity,
		UnitPrice:  unit,
		TotalPrice: lineTotal,
		Modifiers:  modifiers,
		Notes:      line.Notes,
	}, nil
}

func findOption(item models.Item, optionID uint) (models.ModifierOption, bool) {
	for _, m := range item.Modifiers {
		for _, o := range m.Options {
			if o.ID == optionID {
				return o, true
			}
		}
	}
	return models.ModifierOption{}, false
}
