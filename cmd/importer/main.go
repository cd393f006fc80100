package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/importer"
)

// importer converts a catalog CSV export into the JSON served by GET /products,
// reporting tags outside the storefront vocabularies.
func main() {
	var (
		filePath string
		outPath  string
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV export")
	flag.StringVar(&outPath, "out", "", "Write product JSON here (stdout when empty)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	products, err := importer.NewCSVImporter(f).Run(context.Background())
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	for _, p := range products {
		for _, tag := range p.ProductType {
			if !domain.InVocabulary(domain.ProductTypeTags, tag) {
				log.Printf("product %s: unknown product type %q", p.ID, tag)
			}
		}
		for _, tag := range p.SkinType {
			if !domain.InVocabulary(domain.SkinTypeTags, tag) {
				log.Printf("product %s: unknown skin type %q", p.ID, tag)
			}
		}
	}

	out := os.Stdout
	if outPath != "" {
		if out, err = os.Create(outPath); err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer out.Close()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		log.Fatalf("write json: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d products in %s\n", len(products), time.Since(start).Truncate(time.Millisecond))
}
