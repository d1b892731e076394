package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"icon-generator/icon"
	"icon-generator/models"
	"icon-generator/search"
)

type Handler struct {
	Currencies    []models.Currency
	Cryptos       []models.Crypto
	CurrencyIndex search.Engine
	CryptoIndex   search.Engine
	Brands        []string
	Generator     *icon.Generator
}

func NewHandler(currencies []models.Currency, cryptos []models.Crypto,
	currencyIndex, cryptoIndex search.Engine, brands []string, generator *icon.Generator) *Handler {
	return &Handler{
		Currencies:    currencies,
		Cryptos:       cryptos,
		CurrencyIndex: currencyIndex,
		CryptoIndex:   cryptoIndex,
		Brands:        brands,
		Generator:     generator,
	}
}

type currencySuggestion struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Icon  string  `json:"icon"`
	Score float64 `json:"score"`
}

type cryptoSuggestion struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Score  float64 `json:"score"`
}

// SearchCurrencies serves interactive autocompletion over the forex dataset.
// It never fails; an empty query yields the index's configured empty-query
// behavior.
func (h *Handler) SearchCurrencies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	matches := h.CurrencyIndex.Search(query)

	suggestions := make([]currencySuggestion, 0, len(matches))
	for _, m := range matches {
		c := h.Currencies[m.Pos]
		suggestions = append(suggestions, currencySuggestion{
			Code:  c.Code,
			Name:  c.Name,
			Icon:  c.Icon,
			Score: m.Score,
		})
	}

	writeJSON(w, suggestions)
}

func (h *Handler) SearchCryptos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	matches := h.CryptoIndex.Search(query)

	suggestions := make([]cryptoSuggestion, 0, len(matches))
	for _, m := range matches {
		c := h.Cryptos[m.Pos]
		color := c.Color
		if color == "" {
			color = "#" + icon.DeriveColor(c.Symbol)
		}
		suggestions = append(suggestions, cryptoSuggestion{
			Symbol: c.Symbol,
			Name:   c.Name,
			Color:  color,
			Score:  m.Score,
		})
	}

	writeJSON(w, suggestions)
}

func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Brands)
}

// GenerateFlags produces the full variant matrix for a currency pair. The
// response is all six variants or an error status, never a partial set.
func (h *Handler) GenerateFlags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code1 := r.FormValue("currency1")
	code2 := r.FormValue("currency2")
	if code1 == "" || code2 == "" {
		http.Error(w, "Missing currency1 or currency2", http.StatusBadRequest)
		return
	}
	brand := r.FormValue("brand")
	if brand == "" {
		brand = "Default"
	}

	result, err := h.Generator.GenerateFlagAssets(r.Context(), code1, code2, brand)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) GenerateCrypto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	symbol := r.FormValue("symbol")
	if symbol == "" {
		http.Error(w, "Missing symbol", http.StatusBadRequest)
		return
	}
	brand := r.FormValue("brand")
	if brand == "" {
		brand = "Default"
	}

	result, err := h.Generator.GenerateCryptoAssets(r.Context(), symbol, brand)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) writeGenerationError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrAssetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrFetchFailed):
		status = http.StatusBadGateway
	case errors.Is(err, models.ErrRenderFailed):
		// A render failure means the composition itself is broken, not the
		// request. Keep these loud in the logs.
		log.Printf("render failure: %v", err)
	default:
		// Unclassified failures stay 500 but must not vanish silently.
		log.Printf("internal failure: %v", err)
	}
	if status != http.StatusInternalServerError {
		log.Printf("generation failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
