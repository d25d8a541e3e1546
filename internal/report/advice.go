package report

import "github.com/shopspring/decimal"

// AdviceKind classifies a balance.
type AdviceKind int

const (
	// AdviceBreakEven means income exactly matched expenses.
	AdviceBreakEven AdviceKind = iota
	// AdviceSurplus means income exceeded expenses.
	AdviceSurplus
	// AdviceDeficit means expenses exceeded income.
	AdviceDeficit
)

var adviceMessages = map[AdviceKind]string{
	AdviceSurplus:   "¡Superávit logrado! Buen mes para ahorrar.",
	AdviceDeficit:   "Déficit detectado. Ajusta tus gastos el próximo mes.",
	AdviceBreakEven: "Equilibrio exacto. Intenta reducir gastos variables.",
}

// Advice classifies balance.
func Advice(balance decimal.Decimal) AdviceKind {
	switch balance.Sign() {
	case 1:
		return AdviceSurplus
	case -1:
		return AdviceDeficit
	default:
		return AdviceBreakEven
	}
}

// Message is the fixed text shown for k.
func (k AdviceKind) Message() string {
	return adviceMessages[k]
}

// String names the kind.
func (k AdviceKind) String() string {
	switch k {
	case AdviceSurplus:
		return "surplus"
	case AdviceDeficit:
		return "deficit"
	default:
		return "break-even"
	}
}
