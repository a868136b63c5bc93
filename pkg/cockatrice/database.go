package cockatrice

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/constants"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

const (
	// RootName is the root element of a Cockatrice card database.
	RootName = "cockatrice_carddatabase"
	// NewTokensRootName is the root element of the new-entries document.
	NewTokensRootName = "newtokens"
)

// Database is a catalog document. The root element name is preserved, so the
// same type serves the full token database and the new-entries file.
type Database struct {
	XMLName xml.Name
	// Prolog holds the comments written between the declaration and the root element.
	Prolog  []string   `xml:"-"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Info    *Node      `xml:"info"`
	SetList *Node      `xml:"sets"`
	Cards   CardList   `xml:"cards"`
	Extra   []Node     `xml:",any"`
}

// CardList is the cards container. Comments between entries stay attached
// to the entry that follows them; Trailing keeps those after the last one.
type CardList struct {
	Cards    []*Card
	Trailing []string
}

// UnmarshalXML implements xml.Unmarshaler.
func (l *CardList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var pending []string
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment:
			pending = append(pending, string(t))
		case xml.StartElement:
			if t.Name.Local != "card" {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			card := &Card{}
			if err := d.DecodeElement(card, &t); err != nil {
				return err
			}
			card.Comments = pending
			pending = nil
			l.Cards = append(l.Cards, card)
		case xml.EndElement:
			l.Trailing = pending
			return nil
		}
	}
}

// MarshalXML implements xml.Marshaler.
func (l CardList) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, card := range l.Cards {
		if err := encodeComments(e, card.Comments); err != nil {
			return err
		}
		if err := e.EncodeElement(card, xml.StartElement{Name: xml.Name{Local: "card"}}); err != nil {
			return err
		}
	}
	if err := encodeComments(e, l.Trailing); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func encodeComments(e *xml.Encoder, comments []string) error {
	for _, c := range comments {
		if err := e.EncodeToken(xml.Comment(c)); err != nil {
			return err
		}
	}
	return nil
}

// NewDatabase returns an empty document with the given root element.
func NewDatabase(root string) *Database {
	return &Database{XMLName: xml.Name{Local: root}}
}

// NewTokens returns an empty new-entries document.
func NewTokens() *Database {
	return NewDatabase(NewTokensRootName)
}

// All returns the entries in document order.
func (db *Database) All() []*Card {
	return db.Cards.Cards
}

// Append adds an entry at the end of the cards container.
func (db *Database) Append(card *Card) {
	db.Cards.Cards = append(db.Cards.Cards, card)
}

// Len returns the number of entries.
func (db *Database) Len() int {
	return len(db.Cards.Cards)
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	db, err := Parse(f)
	if err != nil {
		return nil, errors.WrapParse("xml", path, err)
	}
	return db, nil
}

// Parse decodes a catalog document from r. Comments ahead of the root
// element are kept in Prolog.
func Parse(r io.Reader) (*Database, error) {
	var db Database
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.Comment:
			db.Prolog = append(db.Prolog, string(t))
		case xml.StartElement:
			if err := dec.DecodeElement(&db, &t); err != nil {
				return nil, err
			}
			db.normalize()
			return &db, nil
		}
	}
}

func (db *Database) normalize() {
	db.XMLName.Space = ""
	db.Attrs = plainAttrs(db.Attrs)
	for _, n := range []*Node{db.Info, db.SetList} {
		if n != nil {
			trimNode(n)
		}
	}
	trimBlank(db.Extra)
	for _, c := range db.Cards.Cards {
		c.XMLName = xml.Name{Local: "card"}
		trimBlank(c.Extra)
		trimBlank(c.Prop.Extra)
	}
}

// Write encodes db to w with four-space indentation. The XML declaration is
// written only when declaration is true. Quotes in character data are
// written literally.
func Write(w io.Writer, db *Database, declaration bool) error {
	var buf bytes.Buffer
	if declaration {
		buf.WriteString(xml.Header)
	}
	for _, c := range db.Prolog {
		if strings.Contains(c, "-->") {
			return fmt.Errorf("xml: comment containing --> marker")
		}
		buf.WriteString("<!--" + c + "-->\n")
	}

	var body bytes.Buffer
	enc := xml.NewEncoder(&body)
	enc.Indent("", constants.XMLIndent)
	if err := enc.Encode(db); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	buf.Write(tidy(body.Bytes(), constants.XMLIndent))
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// Save writes db to path through a temporary file in the same directory,
// so a failed write never leaves a truncated catalog behind.
func Save(path string, db *Database, declaration bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tokens_*.xml")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, db, declaration); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
