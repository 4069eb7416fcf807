// Package billing implements the bill field normalization and
// categorization engine: sanitizing untrusted extraction output,
// classifying bills into the category taxonomy and normalizing
// HOA (consorcio) sub-fields.
package billing

// Category is the closed set of bill categories.
type Category string

const (
	CategoryElectricity Category = "electricity"
	CategoryWater       Category = "water"
	CategoryGas         Category = "gas"
	CategoryInternet    Category = "internet"
	CategoryHoa         Category = "hoa"
	CategoryHealth      Category = "health"
	CategoryCreditCard  Category = "credit_card"
	CategoryOther       Category = "other"
)

// Categories lists all valid categories in dashboard display order.
var Categories = []Category{
	CategoryElectricity,
	CategoryWater,
	CategoryGas,
	CategoryInternet,
	CategoryHoa,
	CategoryHealth,
	CategoryCreditCard,
	CategoryOther,
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}
	return set
}()

// Valid reports whether c is a member of the category set.
func (c Category) Valid() bool {
	_, ok := categorySet[c]
	return ok
}
