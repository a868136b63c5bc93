package cockatrice

import (
	"encoding/xml"
	"strings"
)

// Node is an element the typed model does not cover. It is kept as a small
// tree so it can be re-indented on output.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []Node     `xml:",any"`
}

// trimNode drops the whitespace-only text between child elements that the
// decoder collects as character data, so the encoder can re-indent cleanly.
func trimNode(n *Node) {
	if len(n.Nodes) > 0 && strings.TrimSpace(n.Text) == "" {
		n.Text = ""
	}
	trimBlank(n.Nodes)
}

func trimBlank(nodes []Node) {
	for i := range nodes {
		trimNode(&nodes[i])
	}
}

// plainAttrs rewrites namespaced attributes to their literal prefixed form.
// encoding/xml resolves prefixes on decode but cannot restore them on
// encode, which would otherwise mangle xmlns declarations on the root.
func plainAttrs(attrs []xml.Attr) []xml.Attr {
	prefixes := make(map[string]string)
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			prefixes[a.Value] = a.Name.Local
		}
	}

	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		switch {
		case a.Name.Space == "":
			out = append(out, a)
		case a.Name.Space == "xmlns":
			out = append(out, xml.Attr{Name: xml.Name{Local: "xmlns:" + a.Name.Local}, Value: a.Value})
		case prefixes[a.Name.Space] != "":
			out = append(out, xml.Attr{Name: xml.Name{Local: prefixes[a.Name.Space] + ":" + a.Name.Local}, Value: a.Value})
		case a.Name.Space == "xml":
			out = append(out, xml.Attr{Name: xml.Name{Local: "xml:" + a.Name.Local}, Value: a.Value})
		default:
			out = append(out, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
		}
	}
	return out
}
