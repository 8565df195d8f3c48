// Command demo writes a deterministic sample sales CSV for trying the
// dashboard without real data.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"salesboard/internal/testkit"
)

func main() {
	out := flag.String("out", "demo_sales.csv", "output file path")
	rows := flag.Int("rows", 500, "number of sales rows")
	seed := flag.Int64("seed", 42, "generator seed")
	flag.Parse()

	config := testkit.DefaultSalesConfig()
	config.RowCount = *rows
	config.Seed = *seed
	config.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	config.EndDate = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	gen := testkit.NewSalesDataGenerator(config)
	if err := os.WriteFile(*out, gen.GenerateCSV(), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d sales rows to %s", *rows, *out)
}
