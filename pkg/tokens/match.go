package tokens

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
)

// Match scans every entry of db in document order and appends a provenance
// line for setCode to each entry matching rec. It returns the number of
// matched entries; zero means rec is a new token.
//
// An entry matches when its name starts with rec.Name and its text, type,
// colors and power/toughness equal the record's. Missing optional elements
// compare as empty. The prefix rule lets "Goblin A" in the catalog match an
// upstream "Goblin", but not the other way around.
func Match(db *cockatrice.Database, rec Record, setCode string) int {
	return match(db, rec, setCode, false)
}

func match(db *cockatrice.Database, rec Record, setCode string, skipExistingSet bool) int {
	code := setLineCode(setCode)
	matches := 0
	for _, card := range db.All() {
		if !Matches(card, rec) {
			continue
		}
		matches++
		if skipExistingSet && card.HasSet(code) {
			continue
		}
		card.AddSet(cockatrice.Set{Code: code, PicURL: rec.Image})
	}
	return matches
}

// Matches reports whether the catalog entry describes the same token as rec.
func Matches(card *cockatrice.Card, rec Record) bool {
	return strings.HasPrefix(card.Name, rec.Name) &&
		card.TextValue() == rec.Text &&
		card.Prop.Type == rec.Type &&
		slices.Equal(card.ColorList(), rec.Colors) &&
		card.PTValue() == rec.PT
}

// setLineCode is the set code as written on provenance lines.
func setLineCode(setCode string) string {
	return cases.Upper(language.Und).String(setCode)
}
