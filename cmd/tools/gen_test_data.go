package main

import (
	"disaster-response/fixtures"
	"flag"
	"fmt"
	"os"
)

func main() {
	outputDir := flag.String("out", "./test_data", "Destination directory")
	rows := flag.Int("rows", 500, "Number of messages to generate")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	messages, categories, err := fixtures.Generate(*outputDir, *rows, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to generate test data: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Test data ready:\n    MESSAGES: %s\n    CATEGORIES: %s\n", messages, categories)
}
