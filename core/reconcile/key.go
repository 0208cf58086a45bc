package reconcile

import (
	"golang.org/x/text/cases"
)

// NoCategory stands in for the category of elements that have none.
const NoCategory = "(no category)"

// legacyNoCategory is the placeholder written by the desktop exporter.
const legacyNoCategory = "Без категории"

const keySeparator = "|"

// CompositeKey is the normalized identity of a type across catalogs.
type CompositeKey string

// String returns the key text.
func (k CompositeKey) String() string {
	return string(k)
}

// CategoryLabel returns category, or NoCategory when it is empty or the
// legacy placeholder.
func CategoryLabel(category string) string {
	if category == "" || category == legacyNoCategory {
		return NoCategory
	}
	return category
}

// Normalize builds the composite key for a category and type name.
// Folding is applied to the joined string, so normalizing an already
// normalized key is a no-op.
func Normalize(category, typeName string) CompositeKey {
	return CompositeKey(foldString(category + keySeparator + typeName))
}

// foldString applies Unicode case folding. A Caser keeps state between
// calls, so each call gets its own.
func foldString(s string) string {
	return cases.Fold().String(s)
}

// HasCode reports whether a code value counts as set. Export and index
// building must agree on it.
func HasCode(code string) bool {
	return code != ""
}

// Identifier renders the display form of a category and type name.
func Identifier(category, typeName string) string {
	return category + keySeparator + typeName
}
