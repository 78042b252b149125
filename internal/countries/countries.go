// Package countries resolves common country names to the codes the rest of
// the pipeline needs: the numeric Census Bureau CTY_CODE used by the
// statistics API and the ISO alpha-3 code used by the map layer.
package countries

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownCountry = errors.New("countries: unsupported country")

type Country struct {
	Name       string
	CensusCode string
	ISO3       string
}

// Supported set. Census reports names in ALL CAPS and with its own
// spellings; aliases below fold those onto the canonical names.
var table = []Country{
	{Name: "Canada", CensusCode: "1220", ISO3: "CAN"},
	{Name: "Mexico", CensusCode: "2010", ISO3: "MEX"},
	{Name: "Brazil", CensusCode: "3510", ISO3: "BRA"},
	{Name: "United Kingdom", CensusCode: "4120", ISO3: "GBR"},
	{Name: "France", CensusCode: "4279", ISO3: "FRA"},
	{Name: "Germany", CensusCode: "4280", ISO3: "DEU"},
	{Name: "Russia", CensusCode: "4621", ISO3: "RUS"},
	{Name: "India", CensusCode: "5330", ISO3: "IND"},
	{Name: "Vietnam", CensusCode: "5520", ISO3: "VNM"},
	{Name: "China", CensusCode: "5700", ISO3: "CHN"},
	{Name: "South Korea", CensusCode: "5800", ISO3: "KOR"},
	{Name: "Japan", CensusCode: "5880", ISO3: "JPN"},
	{Name: "Australia", CensusCode: "6021", ISO3: "AUS"},
}

var aliases = map[string]string{
	"korea, south":       "South Korea",
	"korea south":        "South Korea",
	"russian federation": "Russia",
	"viet nam":           "Vietnam",
	"great britain":      "United Kingdom",
	"uk":                 "United Kingdom",
}

var (
	byName       map[string]Country
	byCensusCode map[string]Country
	byISO3       map[string]Country
)

func init() {
	byName = make(map[string]Country, len(table))
	byCensusCode = make(map[string]Country, len(table))
	byISO3 = make(map[string]Country, len(table))
	for _, c := range table {
		byName[strings.ToLower(c.Name)] = c
		byCensusCode[c.CensusCode] = c
		byISO3[c.ISO3] = c
	}
}

// Resolve maps a common country name to its codes. The match is
// case-insensitive and tolerates the Census Bureau's own spellings.
func Resolve(name string) (Country, error) {
	key := normalize(name)
	if key == "" {
		return Country{}, fmt.Errorf("%w: empty name", ErrUnknownCountry)
	}
	if canonical, ok := aliases[key]; ok {
		key = strings.ToLower(canonical)
	}
	if c, ok := byName[key]; ok {
		return c, nil
	}
	return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, name)
}

func ByCensusCode(code string) (Country, bool) {
	c, ok := byCensusCode[strings.TrimSpace(code)]
	return c, ok
}

func ByISO3(iso3 string) (Country, bool) {
	c, ok := byISO3[strings.ToUpper(strings.TrimSpace(iso3))]
	return c, ok
}

// All returns the supported set sorted by canonical name.
func All() []Country {
	out := make([]Country, len(table))
	copy(out, table)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), " ")
}
