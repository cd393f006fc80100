package domain

// CategoryAll disables category filtering.
const CategoryAll = "All"

// Categories lists the storefront traditions offered as category filters.
var Categories = []string{CategoryAll, "Japanese", "Korean", "Ayurvedic"}

// ProductTypeTags is the closed vocabulary of the product-type tag dimension.
var ProductTypeTags = []string{"Japanese", "Korean", "Ayurvedic", "Natural"}

// SkinTypeTags is the closed vocabulary of the skin-type tag dimension.
var SkinTypeTags = []string{"Oily", "Dry", "Sensitive", "Combination", "Normal"}

// InVocabulary reports whether tag belongs to vocab.
func InVocabulary(vocab []string, tag string) bool {
	for _, v := range vocab {
		if v == tag {
			return true
		}
	}
	return false
}
