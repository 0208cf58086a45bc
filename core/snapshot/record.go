package snapshot

// TypeRecord is one snapshot entry: the code assigned to a type in a category.
type TypeRecord struct {
	// Category is the category label, or the no-category placeholder.
	Category string `json:"Category" yaml:"Category"`
	// TypeName is the name of the element type.
	TypeName string `json:"TypeName" yaml:"TypeName"`
	// Code is the classification code.
	Code string `json:"Code" yaml:"Code"`
}
