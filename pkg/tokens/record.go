package tokens

import (
	"slices"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/scryfall"
)

// Record is the canonical attribute set compared against catalog entries.
// Colors is always sorted and never nil; PT is either empty or "P/T".
type Record struct {
	Name   string
	Text   string
	Type   string
	Colors []string
	PT     string
	Image  string
}

// Normalize extracts a Record from a single-faced card or one face of a
// double-faced card. A face without a large image cannot be used and yields
// a *errors.MissingImageError.
func Normalize(face scryfall.Face) (Record, error) {
	if face.ImageURIs == nil || face.ImageURIs.Large == "" {
		return Record{}, &errors.MissingImageError{Name: face.Name}
	}

	rec := Record{
		Name:   face.Name,
		Type:   face.TypeLine,
		Colors: sortedColors(face.Colors),
		Image:  face.ImageURIs.Large,
	}
	if face.OracleText != nil {
		rec.Text = *face.OracleText
	}
	if face.Power != nil && face.Toughness != nil {
		rec.PT = *face.Power + "/" + *face.Toughness
	}
	return rec, nil
}

func sortedColors(colors []string) []string {
	out := make([]string, len(colors))
	copy(out, colors)
	slices.Sort(out)
	return out
}
