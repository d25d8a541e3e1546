package ofx

import (
	"strings"

	"github.com/Veraticus/finanzas/internal/model"
)

// keywordRule maps merchant name fragments to a category. Rules are tried
// in order and the first match wins.
type keywordRule struct {
	category model.Category
	keywords []string
}

var expenseRules = []keywordRule{
	{category: model.CategoryFood, keywords: []string{
		"RESTAUR", "STARBUCKS", "CAFE", "PIZZA", "BURGER", "FOODS", "MARKET", "GROCERY",
		"SUPERMERCADO", "EXITO", "CARULLA", "D1", "ARA", "RAPPI",
	}},
	{category: model.CategoryTransport, keywords: []string{
		"UBER", "LYFT", "TAXI", "DIDI", "CABIFY", "SHELL", "TERPEL", "GASOLINA", "PARKING", "PEAJE", "TRANSMILENIO",
	}},
	{category: model.CategoryUtilities, keywords: []string{
		"ELECTRIC", "WATER", "ENERGIA", "ACUEDUCTO", "ENEL", "EPM", "CLARO", "MOVISTAR", "TIGO", "INTERNET", "COMCAST", "VERIZON",
	}},
	{category: model.CategoryEntertainment, keywords: []string{
		"NETFLIX", "SPOTIFY", "DISNEY", "HBO", "CINE", "CINEMA", "STEAM", "PLAYSTATION", "XBOX",
	}},
	{category: model.CategoryShopping, keywords: []string{
		"AMAZON", "MERCADOLIBRE", "FALABELLA", "ZARA", "TARGET", "WALMART", "EBAY",
	}},
	{category: model.CategoryHealth, keywords: []string{
		"PHARM", "FARMACIA", "DROGUERIA", "CLINIC", "HOSPITAL", "MEDIC", "DENTAL", "CVS",
	}},
}

var payrollKeywords = []string{"PAYROLL", "NOMINA", "NÓMINA", "SALARY", "SALARIO"}

// Categorize guesses a category from the transaction direction, the OFX
// transaction type and the merchant name. Unmatched lines are other.
func Categorize(txType model.TransactionType, trnType, merchant string) model.Category {
	upper := strings.ToUpper(merchant)

	if txType.IsIncome() {
		if trnType == "DIRECTDEP" || containsAny(upper, payrollKeywords) {
			return model.CategorySalary
		}
		return model.CategoryOther
	}

	for _, rule := range expenseRules {
		if containsAny(upper, rule.keywords) {
			return rule.category
		}
	}
	return model.CategoryOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(s, kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether kw occurs in s. Keywords of three letters or
// fewer must stand alone so "ARA" does not match "PARAMOUNT".
func containsWord(s, kw string) bool {
	if len(kw) > 3 {
		return strings.Contains(s, kw)
	}
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		if field == kw {
			return true
		}
	}
	return false
}
