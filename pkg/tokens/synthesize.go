package tokens

import (
	"slices"
	"strings"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

// SubtypeSeparator divides the card types from the subtypes on a type line.
const SubtypeSeparator = " — "

// ShortTypes are bare type lines that never carry a mana value line.
var ShortTypes = []string{"Emblem", "Dungeon", "Card", "Token"}

// Synthesize builds a complete catalog entry for a token the catalog does
// not have yet. It never consults the catalog.
//
// The entry is always returned. When the type line matches no
// classification rule the entry is classified for manual review and a
// *errors.UnclassifiableTypeError is returned alongside it.
func Synthesize(rec Record, setCode string) (*cockatrice.Card, error) {
	card := &cockatrice.Card{Name: rec.Name}

	if rec.Text != "" {
		text := cockatrice.Text(rec.Text)
		card.Text = &text
	}

	if len(rec.Colors) > 0 {
		colors := strings.Join(sortedColors(rec.Colors), "")
		card.Prop.Colors = &colors
	}

	card.Prop.Type = rec.Type

	var diag error
	mainType, ok := Classify(rec.Type)
	if !ok {
		diag = &errors.UnclassifiableTypeError{Name: rec.Name, TypeLine: rec.Type}
	}
	card.Prop.MainType = mainType

	// Generic tokens are named after their subtype; Cockatrice lists them as "<Subtype> Token".
	if subtype, found := Subtype(rec.Type); found && subtype == rec.Name {
		card.Name += " Token"
	}

	if !slices.Contains(ShortTypes, rec.Type) {
		cmc := "0"
		card.Prop.CMC = &cmc
	}

	if rec.PT != "" {
		pt := rec.PT
		card.Prop.PT = &pt
	}

	card.Sets = []cockatrice.Set{{Code: setLineCode(setCode), PicURL: rec.Image}}

	if strings.Contains(rec.Text, "transform") || strings.Contains(rec.Text, "Transform") {
		card.Related = []cockatrice.Related{{}}
	}
	card.ReverseRelated = []cockatrice.Related{{}}

	card.Token = "1"
	card.TableRow = mainType.TableRow()

	return card, diag
}

// Subtype returns the text after the last subtype separator of a type line.
func Subtype(typeLine string) (string, bool) {
	i := strings.LastIndex(typeLine, SubtypeSeparator)
	if i < 0 {
		return "", false
	}
	return typeLine[i+len(SubtypeSeparator):], true
}
