// Package fixtures writes synthetic disaster message files shaped like the
// real messages and categories exports.
package fixtures

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Categories follow the order of the real export. child_alone is always 0.
var Categories = []string{"related", "request", "offer", "aid_related", "medical_help", "water", "food", "shelter", "child_alone", "fire"}

type topic struct {
	labels    []string
	templates []string
}

var topics = []topic{
	{
		labels:    []string{"related", "request", "aid_related", "water"},
		templates: []string{"We need clean water in %s", "No drinking water left in %s, please help", "Water shortage near %s"},
	},
	{
		labels:    []string{"related", "request", "aid_related", "food"},
		templates: []string{"People are hungry in %s, we need food", "Send food aid to %s", "No food since three days in %s"},
	},
	{
		labels:    []string{"related", "aid_related", "shelter"},
		templates: []string{"Families sleeping outside in %s need tents", "Emergency shelter needed in %s"},
	},
	{
		labels:    []string{"related", "aid_related", "medical_help"},
		templates: []string{"Injured people in %s need a doctor", "Medical help required at the hospital of %s"},
	},
	{
		labels:    []string{"related", "fire"},
		templates: []string{"A fire destroyed the market of %s", "Houses burning in %s"},
	},
	{
		labels:    nil,
		templates: []string{"Weather update for %s tomorrow", "Thanks for the news about %s"},
	},
}

var places = []string{"Carrefour", "Leogane", "Jacmel", "Port-au-Prince", "Petionville", "Gonaives"}

// Generate writes messages.csv and categories.csv with n messages into dir.
// A few rows carry the known defects: related-2 values and a duplicated id.
func Generate(dir string, n int, seed int64) (messagesPath, categoriesPath string, err error) {
	if n < 1 {
		return "", "", fmt.Errorf("at least one message is required, got %d", n)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	rng := rand.New(rand.NewSource(seed))

	messages := [][]string{{"id", "message", "original", "genre"}}
	categories := [][]string{{"id", "categories"}}
	for i := 0; i < n; i++ {
		id := strconv.Itoa(i + 2)
		t := topics[rng.Intn(len(topics))]
		text := fmt.Sprintf(t.templates[rng.Intn(len(t.templates))], places[rng.Intn(len(places))])
		genre := []string{"direct", "news", "social"}[rng.Intn(3)]
		messages = append(messages, []string{id, text, "", genre})

		related := "0"
		if len(t.labels) > 0 {
			related = "1"
		}
		if i%17 == 5 {
			related = "2"
		}
		categories = append(categories, []string{id, encode(t.labels, related)})
		if i%23 == 7 {
			categories = append(categories, categories[len(categories)-1])
		}
	}

	messagesPath = filepath.Join(dir, "messages.csv")
	categoriesPath = filepath.Join(dir, "categories.csv")
	if err := writeCSV(messagesPath, messages); err != nil {
		return "", "", err
	}
	if err := writeCSV(categoriesPath, categories); err != nil {
		return "", "", err
	}
	return messagesPath, categoriesPath, nil
}

func encode(labels []string, related string) string {
	pairs := make([]string, len(Categories))
	for i, c := range Categories {
		value := "0"
		if c == "related" {
			value = related
		} else {
			for _, l := range labels {
				if l == c {
					value = "1"
				}
			}
		}
		pairs[i] = c + "-" + value
	}
	return strings.Join(pairs, ";")
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
