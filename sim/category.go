package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned when a category label does not map onto one of
// the three known categories.
var ErrInvalidCategory = errors.New("invalid category")

// Category determines which shelf levels a pallet may occupy.
type Category string

const (
	// BottomOnly pallets may only be stored on the bottom level.
	BottomOnly Category = "A"
	// TopOnly pallets may only be stored on the top level.
	TopOnly Category = "B"
	// Any pallets may be stored on every level.
	Any Category = "C"
)

// Categories lists every category in canonical order.
var Categories = []Category{BottomOnly, TopOnly, Any}

// categoryAliases maps accepted (lower-cased) labels to categories.
var categoryAliases = map[string]Category{
	"a":           BottomOnly,
	"category a":  BottomOnly,
	"bottom-only": BottomOnly,
	"b":           TopOnly,
	"category b":  TopOnly,
	"top-only":    TopOnly,
	"c":           Any,
	"category c":  Any,
	"any":         Any,
}

// ParseCategory maps a label onto a Category. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseCategory(label string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, label)
	}
	return c, nil
}

// String returns the human-readable name of the category.
func (c Category) String() string {
	switch c {
	case BottomOnly:
		return "bottom-only"
	case TopOnly:
		return "top-only"
	case Any:
		return "any"
	default:
		return fmt.Sprintf("Category(%q)", string(c))
	}
}

// CanAccept reports whether a shelf at the given level may hold a pallet of the
// category. The rule depends only on the level: the bottom level takes
// BottomOnly and Any, the top level takes TopOnly and Any, the levels in
// between take Any only.
func CanAccept(level int, c Category) bool {
	if level < 0 || level >= ShelvesPerBay {
		return false
	}
	switch c {
	case BottomOnly:
		return level == 0
	case TopOnly:
		return level == ShelvesPerBay-1
	case Any:
		return true
	default:
		return false
	}
}

// Pallet is a unit load. Pallets of the same category are interchangeable.
type Pallet struct {
	Category Category
}
