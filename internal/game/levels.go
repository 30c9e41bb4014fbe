package game

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// LevelRequirement is one tier of the rank table: how many learned words a
// given rank requires.
type LevelRequirement struct {
	Level         int
	WordsRequired int
}

// DefaultLevelTable is the built-in 5-tier table used when the external
// resource cannot be loaded or parsed.
var DefaultLevelTable = []LevelRequirement{
	{Level: 1, WordsRequired: 0},
	{Level: 2, WordsRequired: 10},
	{Level: 3, WordsRequired: 25},
	{Level: 4, WordsRequired: 50},
	{Level: 5, WordsRequired: 100},
}

// ParseLevelTable reads a `level,words_required` CSV. Rows with the wrong
// column count, an empty leading field, or non-numeric values are skipped
// rather than failing the whole table.
func ParseLevelTable(r io.Reader) ([]LevelRequirement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read level table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("level table: empty resource")
	}

	var table []LevelRequirement
	// First record is the header.
	for _, record := range records[1:] {
		if len(record) != 2 {
			continue
		}
		levelField := strings.TrimSpace(record[0])
		wordsField := strings.TrimSpace(record[1])
		if levelField == "" {
			continue
		}
		level, err := strconv.Atoi(levelField)
		if err != nil {
			continue
		}
		words, err := strconv.Atoi(wordsField)
		if err != nil {
			continue
		}
		table = append(table, LevelRequirement{Level: level, WordsRequired: words})
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("level table: no usable rows")
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Level < table[j].Level })
	return table, nil
}

// FetchLevelTable downloads and parses the level table, substituting the
// built-in fallback on any failure. Load failure is never fatal.
func FetchLevelTable(ctx context.Context, client *http.Client, url string) []LevelRequirement {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("level table: bad url %q: %v, using fallback", url, err)
		return DefaultLevelTable
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("level table: fetch failed: %v, using fallback", err)
		return DefaultLevelTable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("level table: unexpected status %d, using fallback", resp.StatusCode)
		return DefaultLevelTable
	}
	table, err := ParseLevelTable(resp.Body)
	if err != nil {
		log.Printf("level table: %v, using fallback", err)
		return DefaultLevelTable
	}
	return table
}
