// Package scryfall defines the upstream card records returned by the
// Scryfall search API. Only the fields the token synchronizer reads are
// modelled; everything else in the payload is ignored on decode.
package scryfall

// Layout is the Scryfall layout tag of a card object.
type Layout string

const (
	// LayoutToken is a regular single-faced token.
	LayoutToken Layout = "token"
	// LayoutEmblem is a planeswalker emblem.
	LayoutEmblem Layout = "emblem"
	// LayoutDoubleFacedToken is a token with two printed faces. Each face
	// is synchronized as its own catalog entry.
	LayoutDoubleFacedToken Layout = "double_faced_token"
)

// IsDoubleFaced reports whether records with this layout carry per-face data.
func (l Layout) IsDoubleFaced() bool {
	return l == LayoutDoubleFacedToken
}

// ImageURIs holds the image renditions Scryfall publishes for a card or face.
type ImageURIs struct {
	Small      string `json:"small,omitempty"`
	Normal     string `json:"normal,omitempty"`
	Large      string `json:"large,omitempty"`
	PNG        string `json:"png,omitempty"`
	ArtCrop    string `json:"art_crop,omitempty"`
	BorderCrop string `json:"border_crop,omitempty"`
}

// Face is one printed face of a card. Top-level single-faced cards share
// the same shape, see Card.Face.
type Face struct {
	Name       string     `json:"name"`
	OracleText *string    `json:"oracle_text,omitempty"`
	TypeLine   string     `json:"type_line"`
	Colors     []string   `json:"colors,omitempty"`
	Power      *string    `json:"power,omitempty"`
	Toughness  *string    `json:"toughness,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// Card is a Scryfall card object as returned by /cards/search.
type Card struct {
	Object          string     `json:"object"`
	ID              string     `json:"id"`
	Set             string     `json:"set"`
	CollectorNumber string     `json:"collector_number"`
	Layout          Layout     `json:"layout"`
	Name            string     `json:"name"`
	OracleText      *string    `json:"oracle_text,omitempty"`
	TypeLine        string     `json:"type_line"`
	Colors          []string   `json:"colors,omitempty"`
	Power           *string    `json:"power,omitempty"`
	Toughness       *string    `json:"toughness,omitempty"`
	ImageURIs       *ImageURIs `json:"image_uris,omitempty"`
	CardFaces       []Face     `json:"card_faces,omitempty"`
}

// Face projects the top-level attributes of the card onto a Face.
func (c *Card) Face() Face {
	return Face{
		Name:       c.Name,
		OracleText: c.OracleText,
		TypeLine:   c.TypeLine,
		Colors:     c.Colors,
		Power:      c.Power,
		Toughness:  c.Toughness,
		ImageURIs:  c.ImageURIs,
	}
}

// Faces returns the faces to synchronize for this card: the printed faces
// of a double-faced token, or the card itself otherwise.
func (c *Card) Faces() []Face {
	if c.Layout.IsDoubleFaced() {
		return c.CardFaces
	}
	return []Face{c.Face()}
}
