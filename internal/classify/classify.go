// Package classify assigns financial categories to account records by
// keyword-matching their name and parent group. This is a heuristic, not an
// authoritative classification: derived reports are only as correct as the
// account names are descriptive. Consumers must treat the output accordingly.
package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the result of classifying an account. It is recomputed on
// every call and never stored on the entity itself.
type Category string

const (
	Debtor       Category = "debtor"
	Creditor     Category = "creditor"
	Asset        Category = "asset"
	Liability    Category = "liability"
	Income       Category = "income"
	Expense      Category = "expense"
	Unclassified Category = "unclassified"
)

// priority is the match order. Debtor and creditor outrank the broad
// categories so "Sundry Debtors" never lands in asset via "sundry".
var priority = []Category{Debtor, Creditor, Asset, Liability, Income, Expense}

// Table maps categories to their keyword sets. Matching is case-insensitive
// substring containment over the account name and its parent group.
type Table struct {
	keywords map[Category][]string
}

// DefaultTable returns the built-in keyword table.
func DefaultTable() *Table {
	return &Table{keywords: map[Category][]string{
		Debtor:    {"debtor"},
		Creditor:  {"creditor"},
		Asset:     {"asset", "cash", "bank", "inventory", "stock"},
		Liability: {"liability", "payable", "loan", "capital"},
		Income:    {"income", "sales", "revenue"},
		Expense:   {"expense", "cost", "rent", "salary"},
	}}
}

// tableFile is the YAML shape of a keyword table override.
type tableFile struct {
	Categories []struct {
		Category string   `yaml:"category"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// LoadTable reads a keyword table from a YAML file. Categories absent from
// the file keep their built-in keywords, so an override only needs to name
// what it changes.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword table: %w", err)
	}
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing keyword table: %w", err)
	}

	t := DefaultTable()
	for _, c := range file.Categories {
		cat := Category(strings.ToLower(c.Category))
		if _, known := t.keywords[cat]; !known {
			return nil, fmt.Errorf("unknown category %q in keyword table", c.Category)
		}
		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kws = append(kws, strings.ToLower(kw))
		}
		t.keywords[cat] = kws
	}
	return t, nil
}

// Save writes the table to a YAML file, for seeding an editable override.
func (t *Table) Save(path string) error {
	var file tableFile
	for _, cat := range priority {
		file.Categories = append(file.Categories, struct {
			Category string   `yaml:"category"`
			Keywords []string `yaml:"keywords"`
		}{Category: string(cat), Keywords: t.keywords[cat]})
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling keyword table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keyword table: %w", err)
	}
	return nil
}

// Classify returns the first category in priority order whose keyword set
// matches name or parent. No match yields Unclassified.
func (t *Table) Classify(name, parent string) Category {
	haystack := strings.ToLower(name) + "\x00" + strings.ToLower(parent)
	for _, cat := range priority {
		for _, kw := range t.keywords[cat] {
			if kw != "" && strings.Contains(haystack, kw) {
				return cat
			}
		}
	}
	return Unclassified
}

// Matches reports whether name or parent contains any of the given keywords,
// independent of the category tables. Used by report routines that filter on
// ad hoc vocabulary (cash-flow account selection, for instance).
func Matches(name, parent string, keywords ...string) bool {
	haystack := strings.ToLower(name) + "\x00" + strings.ToLower(parent)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
