package model

// Period is a validated history range accepted by the fetcher. The values
// double as Yahoo Finance chart-API range parameters.
type Period string

const (
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
)

// DefaultPeriod is six months of history.
const DefaultPeriod = Period6Mo

var validPeriods = map[Period]struct{}{
	Period1Mo: {},
	Period3Mo: {},
	Period6Mo: {},
	Period1Y:  {},
	Period2Y:  {},
}

// Valid reports whether p is a supported history range.
func (p Period) Valid() bool {
	_, ok := validPeriods[p]
	return ok
}

func (p Period) String() string { return string(p) }
