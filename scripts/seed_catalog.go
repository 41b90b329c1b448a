// seed_catalog.go — standalone script to load a candidate CSV and create a
// catalog via the rigfit API.
//
// Usage:
//
//	go run scripts/seed_catalog.go -csv /path/to/catalog.csv -api http://localhost:8700 -name "summer lineup"
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/rigfit/rigfit/internal/catalog"
)

// demoRows seeds a small spread of configurations when no CSV is given.
var demoRows = []catalog.Candidate{
	{Model: "office-mini", CPUScore: 45, GPUScore: 12, RAMGB: 8, StorageGB: 256, Price: 65000},
	{Model: "dev-station", CPUScore: 110, GPUScore: 40, RAMGB: 32, StorageGB: 1024, Price: 180000},
	{Model: "gamer-mid", CPUScore: 75, GPUScore: 95, RAMGB: 16, StorageGB: 512, Price: 160000},
	{Model: "gamer-max", CPUScore: 95, GPUScore: 130, RAMGB: 32, StorageGB: 2048, Price: 320000},
	{Model: "creator-pro", CPUScore: 100, GPUScore: 80, RAMGB: 64, StorageGB: 2048, Price: 290000},
	{Model: "allrounder", CPUScore: 80, GPUScore: 60, RAMGB: 16, StorageGB: 512, Price: 120000},
}

func main() {
	csvPath := flag.String("csv", "", "path to candidate CSV (uses built-in demo rows when empty)")
	apiURL := flag.String("api", "http://localhost:8700", "rigfit API base URL")
	name := flag.String("name", "seeded catalog", "catalog name")
	dryRun := flag.Bool("dry-run", false, "print candidates without posting")
	flag.Parse()

	rows := demoRows
	if *csvPath != "" {
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatalf("open csv: %v", err)
		}
		rows, err = catalog.ReadCSV(f)
		f.Close()
		if err != nil {
			log.Fatalf("parse csv: %v", err)
		}
	}
	if err := catalog.ValidateCandidates(rows); err != nil {
		log.Fatalf("invalid candidates: %v", err)
	}

	log.Printf("loaded %d candidates", len(rows))

	if *dryRun {
		for i, r := range rows {
			fmt.Printf("[%d] %s (cpu=%g, gpu=%g, ram=%g, ssd=%g, price=%g)\n",
				i+1, r.Model, r.CPUScore, r.GPUScore, r.RAMGB, r.StorageGB, r.Price)
		}
		return
	}

	payload := map[string]interface{}{"name": *name, "candidates": rows}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(*apiURL+"/api/v1/catalogs", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("post catalog: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create catalog: status %d", resp.StatusCode)
	}

	var created catalog.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	log.Printf("created catalog %s (%s) with %d candidates", created.ID, created.Name, len(created.Candidates))
}
