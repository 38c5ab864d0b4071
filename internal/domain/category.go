package domain

// CategoryKey identifies a category in the registry.
type CategoryKey string

// Category is registry reference data.
type Category struct {
	Key  CategoryKey `json:"key" yaml:"key"`
	Name string      `json:"name" yaml:"name"`
	Icon string      `json:"icon" yaml:"icon"`
}

// CategoryRegistry resolves category keys to display data.
type CategoryRegistry interface {
	Lookup(key CategoryKey) (Category, bool)
	All() []Category
}

// CategorySelection is either a chosen category or no choice at all.
// The zero value is NoCategory.
type CategorySelection struct {
	key      CategoryKey
	selected bool
}

// NoCategory is the selection before the user picks a category.
func NoCategory() CategorySelection {
	return CategorySelection{}
}

// SelectCategory returns a selection holding key.
func SelectCategory(key CategoryKey) CategorySelection {
	return CategorySelection{key: key, selected: true}
}

// Key returns the selected key and whether a category was chosen.
func (s CategorySelection) Key() (CategoryKey, bool) {
	return s.key, s.selected
}
