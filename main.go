package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"icon-generator/api"
	"icon-generator/assets"
	"icon-generator/icon"
	"icon-generator/loader"
	"icon-generator/search"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dataDir := flag.String("data", "data", "reference dataset directory")
	badgeDir := flag.String("badges", "badges", "badge asset directory")
	artDir := flag.String("art", filepath.Join("art", "crypto"), "local crypto art directory")
	flag.Parse()

	// Load reference datasets.
	currencies, err := loader.LoadCurrencies(filepath.Join(*dataDir, "forex.yaml"))
	if err != nil {
		log.Fatalf("Failed to load forex data: %v", err)
	}
	fmt.Printf("Loaded %d currencies.\n", len(currencies))

	cryptos, err := loader.LoadCryptos(filepath.Join(*dataDir, "cryptos.json"))
	if err != nil {
		log.Fatalf("Failed to load crypto manifest: %v", err)
	}
	fmt.Printf("Loaded %d cryptos.\n", len(cryptos))

	brands, err := loader.ListBrands(*badgeDir)
	if err != nil {
		log.Fatalf("Failed to list badge brands: %v", err)
	}
	fmt.Printf("Found %d brands: %v\n", len(brands), brands)

	// Build the interactive search indexes.
	currencyIndex, err := search.NewCurrencyIndex(currencies)
	if err != nil {
		log.Fatalf("Failed to build currency index: %v", err)
	}
	defer currencyIndex.Close()

	cryptoIndex, err := search.NewCryptoIndex(cryptos)
	if err != nil {
		log.Fatalf("Failed to build crypto index: %v", err)
	}
	defer cryptoIndex.Close()

	// Wire the generation pipeline.
	generator := icon.NewGenerator(currencies, cryptos,
		assets.NewFlagFetcher(),
		assets.NewBadgeStore(*badgeDir),
		assets.NewArtStore(*artDir))

	handler := api.NewHandler(currencies, cryptos, currencyIndex, cryptoIndex, brands, generator)

	// Setup routes
	http.HandleFunc("/api/search-currencies", handler.SearchCurrencies)
	http.HandleFunc("/api/search-cryptos", handler.SearchCryptos)
	http.HandleFunc("/api/brands", handler.ListBrands)
	http.HandleFunc("/api/generate", handler.GenerateFlags)
	http.HandleFunc("/api/generate-crypto", handler.GenerateCrypto)

	fmt.Printf("Server starting on %s...\n", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
