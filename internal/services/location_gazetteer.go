package services

import (
	"strings"

	"voya/internal/models/response_models"
)

type gazetteerEntry struct {
	name, description, kind string
}

var gazetteer = []gazetteerEntry{
	{"Paris", "France", "City"},
	{"London", "United Kingdom", "City"},
	{"Rome", "Italy", "City"},
	{"Barcelona", "Spain", "City"},
	{"Lisbon", "Portugal", "City"},
	{"Amsterdam", "Netherlands", "City"},
	{"Berlin", "Germany", "City"},
	{"Prague", "Czechia", "City"},
	{"Vienna", "Austria", "City"},
	{"Istanbul", "Türkiye", "City"},
	{"Marrakech", "Morocco", "City"},
	{"Cairo", "Egypt", "City"},
	{"Cape Town", "South Africa", "City"},
	{"Dubai", "United Arab Emirates", "City"},
	{"Tokyo", "Japan", "City"},
	{"Kyoto", "Japan", "City"},
	{"Seoul", "South Korea", "City"},
	{"Bangkok", "Thailand", "City"},
	{"Singapore", "Singapore", "City"},
	{"Bali", "Indonesia", "State/Province"},
	{"Sydney", "NSW, Australia", "City"},
	{"Queenstown", "New Zealand", "City"},
	{"New York", "NY, USA", "City"},
	{"San Francisco", "CA, USA", "City"},
	{"Los Angeles", "CA, USA", "City"},
	{"Mexico City", "Mexico", "City"},
	{"Rio de Janeiro", "Brazil", "City"},
	{"Buenos Aires", "Argentina", "City"},
	{"Reykjavik", "Iceland", "City"},
	{"Japan", "", "Country"},
	{"Italy", "", "Country"},
	{"Iceland", "", "Country"},
	{"Swiss Alps", "Switzerland", "Natural Feature"},
	{"Tuscany", "Italy", "Region"},
}

// SearchGazetteer matches query case-insensitively against entry names and
// descriptions, returning at most ten suggestions.
func SearchGazetteer(query string) []response_models.Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]response_models.Suggestion, 0, maxSuggestions)
	for _, e := range gazetteer {
		if !strings.Contains(strings.ToLower(e.name), q) && !strings.Contains(strings.ToLower(e.description), q) {
			continue
		}
		full := e.name
		if e.description != "" {
			full = e.name + ", " + e.description
		}
		out = append(out, response_models.Suggestion{
			ID:              "static-" + strings.ReplaceAll(strings.ToLower(e.name), " ", "-"),
			Name:            e.name,
			Description:     e.description,
			Type:            e.kind,
			FullDescription: full,
		})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
