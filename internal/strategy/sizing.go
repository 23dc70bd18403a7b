package strategy

// SizingMethod selects how a strategy converts capital into a position
// quantity.
type SizingMethod string

const (
	SizeContract      SizingMethod = "contract_size"
	SizeEquityPercent SizingMethod = "equity_percent"
	SizeShares        SizingMethod = "shares"
	SizeDollarAmount  SizingMethod = "dollar_amount"
)

// Sizing is the shared position-sizing policy. The zero value is not
// useful; use DefaultSizing or build one explicitly.
type Sizing struct {
	Method SizingMethod
	Value  float64
}

// DefaultSizing invests the full equity at each entry.
func DefaultSizing() Sizing {
	return Sizing{Method: SizeEquityPercent, Value: 100}
}

// Size returns the quantity to open for the given capital and price.
func (s Sizing) Size(capital, price float64) float64 {
	if price <= 0 {
		return 0
	}
	switch s.Method {
	case SizeContract:
		return s.Value
	case SizeEquityPercent:
		return (capital * s.Value / 100) / price
	case SizeShares:
		return s.Value
	case SizeDollarAmount:
		return s.Value / price
	}
	return 0
}

// SizingFromParams builds a Sizing from strategy parameters, keeping
// the percent-of-equity default when unspecified.
func SizingFromParams(p Params) Sizing {
	s := DefaultSizing()
	if m, ok := p["sizing_method"].(string); ok {
		s.Method = SizingMethod(m)
	}
	s.Value = p.Float("sizing_value", s.Value)
	return s
}
