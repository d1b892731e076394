package search

import (
	"icon-generator/models"
)

// Engine resolves a free-typed query to ranked reference entries.
type Engine interface {
	Search(query string) []Match
}

// Match points back into the indexed collection. Score is a normalized
// distance: 0 is an exact match, 1 is no match at all. Results are ordered
// best first.
type Match struct {
	Pos   int     `json:"-"`
	Score float64 `json:"score"`
}

// Field is one searchable key of the indexed documents. Weight skews ranking
// between keys; a higher weight makes matches on that key dominate.
type Field struct {
	Name   string
	Weight float64
}

// Options tune the ranking contract of an Index.
type Options struct {
	// Threshold is the normalized score cutoff. Zero means the default 0.3.
	Threshold float64
	// Limit truncates the ranked result set. Zero means the default 5.
	Limit int
	// EmptyAll makes an empty query return the whole collection unranked
	// instead of nothing.
	EmptyAll bool
}

// NewCurrencyIndex builds the interactive-search index over the forex
// dataset. Code, name and country aliases carry equal weight.
func NewCurrencyIndex(currencies []models.Currency) (*Index, error) {
	docs := make([]Document, len(currencies))
	for i, c := range currencies {
		docs[i] = Document{Fields: map[string][]string{
			"code":      {c.Code},
			"name":      {c.Name},
			"countries": c.Countries,
		}}
	}
	fields := []Field{
		{Name: "code", Weight: 1.0},
		{Name: "name", Weight: 1.0},
		{Name: "countries", Weight: 1.0},
	}
	return NewIndex(docs, fields, Options{})
}

// NewCryptoIndex builds the interactive-search index over the crypto
// manifest. Symbol matches dominate ranking over name matches.
func NewCryptoIndex(cryptos []models.Crypto) (*Index, error) {
	docs := make([]Document, len(cryptos))
	for i, c := range cryptos {
		docs[i] = Document{Fields: map[string][]string{
			"symbol": {c.Symbol},
			"name":   {c.Name},
		}}
	}
	fields := []Field{
		{Name: "symbol", Weight: 0.7},
		{Name: "name", Weight: 0.3},
	}
	return NewIndex(docs, fields, Options{})
}
