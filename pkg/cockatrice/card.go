// Package cockatrice models the Cockatrice token database: the persisted
// XML catalog that the synchronizer amends and extends.
//
// Entries are typed structures with named optional slots. Serialization walks
// the struct field order, so a card is always written as
//
//	name, text?, prop, set+, related*, reverse-related*, token, tablerow, <other>
//
// regardless of which optional fields are present. Elements and attributes
// the model does not know about are carried through unchanged.
package cockatrice

import (
	"encoding/xml"
	"slices"
	"strings"
)

// MainType is the coarse classification Cockatrice uses to group cards.
type MainType string

const (
	MainTypeCreature    MainType = "Creature"
	MainTypeArtifact    MainType = "Artifact"
	MainTypeEnchantment MainType = "Enchantment"
	MainTypeEmblem      MainType = "Emblem"
	MainTypeDungeon     MainType = "Dungeon"
	// MainTypeManualReview marks an entry whose type line matched no known
	// classification. The value is written verbatim so it stands out in the file.
	MainTypeManualReview MainType = "Please edit manually"
)

// TableRow returns the table-row hint for the classification: creatures sit
// on row 2, everything else on row 1.
func (m MainType) TableRow() string {
	if m == MainTypeCreature {
		return "2"
	}
	return "1"
}

// Text is character data written with literal newlines instead of the
// &#xA; references encoding/xml emits for plain string fields.
type Text string

// MarshalXML implements xml.Marshaler.
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if t != "" {
		if err := e.EncodeToken(xml.CharData(t)); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Card is one catalog entry.
type Card struct {
	XMLName        xml.Name  `xml:"card"`
	Name           string    `xml:"name"`
	Text           *Text     `xml:"text"`
	Prop           Prop      `xml:"prop"`
	Sets           []Set     `xml:"set"`
	Related        []Related `xml:"related"`
	ReverseRelated []Related `xml:"reverse-related"`
	Token          string    `xml:"token,omitempty"`
	TableRow       string    `xml:"tablerow,omitempty"`
	Extra          []Node    `xml:",any"`

	// Comments are the XML comments that preceded the entry in the cards container.
	Comments []string `xml:"-"`
}

// Prop holds the game attributes of a card.
type Prop struct {
	Colors   *string  `xml:"colors"`
	Type     string   `xml:"type"`
	MainType MainType `xml:"maintype,omitempty"`
	CMC      *string  `xml:"cmc"`
	PT       *string  `xml:"pt"`
	Extra    []Node   `xml:",any"`
}

// Set is a provenance line: the release that printed the token and the
// image Cockatrice downloads for it.
type Set struct {
	Code   string     `xml:",chardata"`
	PicURL string     `xml:"picURL,attr,omitempty"`
	Attrs  []xml.Attr `xml:",any,attr"`
}

// Related is a link to another card by name.
type Related struct {
	Name  string     `xml:",chardata"`
	Attrs []xml.Attr `xml:",any,attr"`
}

// TextValue returns the rules text, or "" when the entry has none.
func (c *Card) TextValue() string {
	if c.Text == nil {
		return ""
	}
	return string(*c.Text)
}

// ColorList returns the entry's color letters sorted ascending. An absent
// colors element yields an empty list.
func (c *Card) ColorList() []string {
	if c.Prop.Colors == nil {
		return []string{}
	}
	colors := strings.Split(strings.TrimSpace(*c.Prop.Colors), "")
	slices.Sort(colors)
	return colors
}

// PTValue returns the power/toughness, or "" when absent.
func (c *Card) PTValue() string {
	if c.Prop.PT == nil {
		return ""
	}
	return *c.Prop.PT
}

// AddSet records a new provenance line. It is placed directly after the
// prop block, ahead of the existing set lines.
func (c *Card) AddSet(set Set) {
	c.Sets = slices.Insert(c.Sets, 0, set)
}

// HasSet reports whether the entry already has a provenance line for code.
func (c *Card) HasSet(code string) bool {
	for _, s := range c.Sets {
		if strings.EqualFold(strings.TrimSpace(s.Code), code) {
			return true
		}
	}
	return false
}
