package model

// Category is the enumerated spending or earning category of a transaction.
type Category string

// Category constants. Their declaration order is the canonical enum order.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategorySalary        Category = "salary"
	CategoryOther         Category = "other"
)

// Categories lists every category in enum order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategorySalary,
	CategoryOther,
}

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	return c.Rank() >= 0
}

// Rank returns the position of c in enum order, or -1 if unknown.
func (c Category) Rank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// NormalizeCategory maps unknown values to CategoryOther.
func NormalizeCategory(c Category) Category {
	if c.IsValid() {
		return c
	}
	return CategoryOther
}
