package entity

import (
	"sort"
	"strings"
)

// SourceKind identifies the storage that backs a city's trip records.
type SourceKind string

const (
	SourceCSV    SourceKind = "csv"
	SourceS3     SourceKind = "s3"
	SourceSQLite SourceKind = "sqlite"
)

// SourceLocation tells a record source where to find a city's trips.
type SourceLocation struct {
	Kind   SourceKind `json:"kind"`
	Path   string     `json:"path,omitempty"`
	Bucket string     `json:"bucket,omitempty"`
	Key    string     `json:"key,omitempty"`
	Table  string     `json:"table,omitempty"`
}

// City is an entry of the capability table.
type City struct {
	Name         string         `json:"name"`
	Aliases      []string       `json:"aliases,omitempty"`
	Source       SourceLocation `json:"source"`
	HasGender    bool           `json:"has_gender"`
	HasBirthYear bool           `json:"has_birth_year"`
}

// Title returns the display name of the city.
func (c City) Title() string {
	words := strings.Fields(c.Name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CityTable is the fixed mapping from city identifier to its source and capabilities.
type CityTable struct {
	cities map[string]City
	lookup map[string]string
}

// NewCityTable builds a table from the given cities. Names and aliases are matched case-insensitively.
func NewCityTable(cities ...City) *CityTable {
	t := &CityTable{
		cities: make(map[string]City),
		lookup: make(map[string]string),
	}
	for _, c := range cities {
		c.Name = normalize(c.Name)
		t.cities[c.Name] = c
		t.lookup[c.Name] = c.Name
		for _, alias := range c.Aliases {
			t.lookup[normalize(alias)] = c.Name
		}
	}
	return t
}

// DefaultCityTable returns the three bikeshare cities with their CSV files.
func DefaultCityTable() *CityTable {
	return NewCityTable(
		City{
			Name:         "chicago",
			Source:       SourceLocation{Kind: SourceCSV, Path: "chicago.csv"},
			HasGender:    true,
			HasBirthYear: true,
		},
		City{
			Name:         "new york city",
			Aliases:      []string{"new york", "nyc"},
			Source:       SourceLocation{Kind: SourceCSV, Path: "new_york_city.csv"},
			HasGender:    true,
			HasBirthYear: true,
		},
		City{
			Name:   "washington",
			Source: SourceLocation{Kind: SourceCSV, Path: "washington.csv"},
		},
	)
}

// Lookup resolves a city name or alias.
func (t *CityTable) Lookup(name string) (City, bool) {
	canonical, ok := t.lookup[normalize(name)]
	if !ok {
		return City{}, false
	}
	return t.cities[canonical], true
}

// Names returns the canonical city names in alphabetical order.
func (t *CityTable) Names() []string {
	names := make([]string, 0, len(t.cities))
	for name := range t.cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Accepted returns every input that resolves to a city: names plus aliases.
func (t *CityTable) Accepted() []string {
	accepted := make([]string, 0, len(t.lookup))
	for key := range t.lookup {
		accepted = append(accepted, key)
	}
	sort.Strings(accepted)
	return accepted
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
