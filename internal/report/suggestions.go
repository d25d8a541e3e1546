package report

import (
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/shopspring/decimal"
)

// SuggestionKind distinguishes the suggestion cards.
type SuggestionKind string

const (
	// SuggestionAttention flags the category taking the largest share.
	SuggestionAttention SuggestionKind = "attention"
	// SuggestionSavingsRule is the fixed savings reminder.
	SuggestionSavingsRule SuggestionKind = "savings_rule"
)

// SavingsRuleTitle and SavingsRuleTip make up the fixed savings card.
const (
	SavingsRuleTitle = "Regla 50/30/20"
	SavingsRuleTip   = "Intenta destinar el 20% de tus ingresos al ahorro. Es un buen hábito para empezar."
)

// Suggestion is one advice card. Category, Amount and Percentage are only
// set for attention cards.
type Suggestion struct {
	Kind       SuggestionKind
	Category   model.Category
	Amount     decimal.Decimal
	Tip        string
	Percentage int
}

var categoryTips = map[model.Category]string{
	model.CategoryFood:          "Estás gastando mucho en comida. Prueba cocinar más en casa esta semana.",
	model.CategoryTransport:     "Tus gastos en transporte son altos. ¿Podrías compartir viaje o usar transporte público?",
	model.CategoryUtilities:     "Altos gastos en servicios. Recuerda apagar luces y dispositivos que no uses.",
	model.CategoryEntertainment: "¡Mucha diversión! Pero considera actividades gratuitas para equilibrar.",
	model.CategoryShopping:      "Compras impulsivas detectadas. Prueba la regla de esperar 24h antes de comprar.",
	model.CategoryHealth:        "La salud es prioridad, pero revisa si hay genéricos o alternativas más económicas.",
	model.CategoryOther:         "Revisa tus gastos 'Varios' para identificar fugas de dinero.",
}

// TipFor returns the spending tip for c, falling back to the other tip.
func TipFor(c model.Category) string {
	if tip, ok := categoryTips[c]; ok {
		return tip
	}
	return categoryTips[model.CategoryOther]
}

// Suggestions builds the advice cards for a subset. Without expenses there
// is nothing to suggest and the result is empty.
func Suggestions(txns []model.Transaction) []Suggestion {
	b := CategoryBreakdown(txns)
	sorted := b.Sorted()
	if len(sorted) == 0 {
		return []Suggestion{}
	}

	top := sorted[0]
	return []Suggestion{
		{
			Kind:       SuggestionAttention,
			Category:   top.Category,
			Amount:     top.Amount,
			Percentage: PercentageOfTotal(top.Amount, b.Total()),
			Tip:        TipFor(top.Category),
		},
		{
			Kind: SuggestionSavingsRule,
			Tip:  SavingsRuleTip,
		},
	}
}
