package models

import "strings"

// CategoryKind enumerates the closed set of expense categories.
type CategoryKind int

const (
	CategoryFood CategoryKind = iota
	CategoryTransport
	CategoryRent
	CategoryUtilities
	CategoryEntertainment
	CategoryShopping
	CategoryHealth
	CategoryEducation
	CategorySubscriptions
	CategoryOther
)

var categoryNames = []string{
	"Food",
	"Transport",
	"Rent",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Health",
	"Education",
	"Subscriptions",
	"Other",
}

// Category is a tagged union: one of the fixed kinds, where CategoryOther
// carries a freeform label. Keeping the set closed lets aggregation code
// switch over kinds exhaustively instead of matching open strings.
type Category struct {
	Kind  CategoryKind
	Other string
}

// CategoryNames returns the display names of every kind, in form order.
func CategoryNames() []string {
	out := make([]string, len(categoryNames))
	copy(out, categoryNames)
	return out
}

// CategoryFromKind builds a Category for a fixed kind. The custom label is
// only retained for CategoryOther.
func CategoryFromKind(kind CategoryKind, custom string) Category {
	if kind == CategoryOther {
		return Category{Kind: CategoryOther, Other: custom}
	}
	return Category{Kind: kind}
}

// ParseCategory matches the fixed names case-insensitively. The serialized
// form Other(label) restores its payload, and any unmatched text becomes
// Other carrying that text verbatim. It never fails.
func ParseCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	for i, name := range categoryNames {
		if strings.EqualFold(trimmed, name) {
			return CategoryFromKind(CategoryKind(i), "")
		}
	}
	if inner, ok := strings.CutPrefix(trimmed, "Other("); ok {
		if inner, ok := strings.CutSuffix(inner, ")"); ok {
			return Category{Kind: CategoryOther, Other: inner}
		}
	}
	return Category{Kind: CategoryOther, Other: trimmed}
}

// String renders the canonical display name, which is also the CSV form.
func (c Category) String() string {
	if c.Kind == CategoryOther {
		if c.Other == "" {
			return "Other"
		}
		return "Other(" + c.Other + ")"
	}
	return categoryNames[c.Kind]
}

// BudgetLabel is the fixed name a budget row keys on. Custom Other text is
// not budget-trackable; every Other variant folds into the plain label.
func (c Category) BudgetLabel() string {
	return categoryNames[c.Kind]
}

// Equal compares kind and, for Other, the payload.
func (c Category) Equal(o Category) bool {
	return c.Kind == o.Kind && (c.Kind != CategoryOther || c.Other == o.Other)
}
