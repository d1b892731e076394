package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"icon-generator/models"
)

// currencyDetails mirrors one entry of the forex dataset:
//
//	currencies:
//	  - USD:
//	      Name: US Dollar
//	      Icon: https://hatscripts.github.io/circle-flags/flags/us.svg
//	      Countries: [United States]
type currencyDetails struct {
	Name      string   `yaml:"Name"`
	Icon      string   `yaml:"Icon"`
	Countries []string `yaml:"Countries"`
}

type forexFile struct {
	Currencies []map[string]currencyDetails `yaml:"currencies"`
}

// LoadCurrencies reads the forex YAML dataset. Collection order follows the
// file, which is what the search index uses for tie-breaking.
func LoadCurrencies(filePath string) ([]models.Currency, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var file forexFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse forex data: %v", err)
	}

	var currencies []models.Currency
	for _, entry := range file.Currencies {
		// Each list item is a single-key map: code -> details.
		for code, details := range entry {
			currencies = append(currencies, models.Currency{
				Code:      code,
				Name:      details.Name,
				Icon:      details.Icon,
				Countries: details.Countries,
			})
		}
	}

	if len(currencies) == 0 {
		return nil, fmt.Errorf("no currencies found in %s", filePath)
	}
	return currencies, nil
}

// LoadCryptos reads the cryptocurrency manifest (JSON array of
// {symbol, name, color} objects).
func LoadCryptos(filePath string) ([]models.Crypto, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cryptos []models.Crypto
	if err := json.NewDecoder(f).Decode(&cryptos); err != nil {
		return nil, fmt.Errorf("failed to parse crypto manifest: %v", err)
	}

	if len(cryptos) == 0 {
		return nil, fmt.Errorf("no cryptos found in %s", filePath)
	}
	return cryptos, nil
}

// ListBrands enumerates the brands available in the badge asset directory.
// Each brand is a subdirectory holding its badge SVGs.
func ListBrands(badgeDir string) ([]string, error) {
	entries, err := os.ReadDir(badgeDir)
	if err != nil {
		return nil, err
	}

	var brands []string
	for _, e := range entries {
		if e.IsDir() {
			brands = append(brands, e.Name())
		}
	}
	sort.Strings(brands)
	return brands, nil
}
