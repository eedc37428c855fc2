package model

// TickerRecord is one row of the ticker directory: a symbol and the
// company it identifies. Immutable once loaded.
type TickerRecord struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
}
