package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when the dataset lacks a required column.
var ErrMissingColumn = errors.New("missing columns in the dataset")

// RequiredColumns must be present in every CSV catalog.
var RequiredColumns = []string{"name", "id", "desc", "atk", "def", "level", "archetype", "type"}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cat, nil
}

// LoadCSV parses a card dataset. When every effect keyword column is present
// (the preprocessed 0/1 flags), effect points are summed from them; otherwise
// they are computed from the desc text. Any bad row aborts the whole load.
func LoadCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	flagColumns := true
	for _, k := range EffectKeywords {
		if _, ok := cols[k.Keyword]; !ok {
			flagColumns = false
			break
		}
	}

	var cards []*Card
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		card, err := parseRecord(field, flagColumns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cards = append(cards, card)
	}

	return New(cards)
}

func parseRecord(field func(string) string, flagColumns bool) (*Card, error) {
	name := field("name")
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidRecord)
	}

	category, err := ParseCategory(field("type"))
	if err != nil {
		return nil, err
	}

	id, err := parseID(field("id"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: id %q", ErrInvalidRecord, name, field("id"))
	}

	stats := make(map[string]int, 3)
	for _, col := range []string{"atk", "def", "level"} {
		v, err := parseStat(field(col))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s %q", ErrInvalidRecord, name, col, field(col))
		}
		stats[col] = v
	}

	card := &Card{
		ID:          id,
		Name:        name,
		Category:    category,
		Archetype:   cleanArchetype(field("archetype")),
		Description: field("desc"),
		ATK:         stats["atk"],
		DEF:         stats["def"],
		Level:       stats["level"],
		ImageURL:    field("card_images"),
	}

	if flagColumns {
		for _, k := range EffectKeywords {
			if isSet(field(k.Keyword)) {
				card.EffectPoints += k.Points
			}
		}
	} else {
		card.EffectPoints = EffectPoints(card.Description)
	}
	return card, nil
}

func parseID(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// parseStat accepts integers, pandas-style floats ("2500.0") and blanks/NaN,
// which are treated as 0 (Spells and Traps have no stats).
func parseStat(s string) (int, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return int(f), nil
}

func isSet(s string) bool {
	switch strings.ToLower(s) {
	case "1", "1.0", "true", "yes":
		return true
	}
	return false
}

func cleanArchetype(s string) string {
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}
