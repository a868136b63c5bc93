package cockatrice

import (
	"bytes"
	"strings"
)

var (
	commentOpen  = []byte("<!--")
	commentClose = []byte("-->")
	aposRef      = []byte("&#39;")
	quotRef      = []byte("&#34;")
)

// tidy post-processes encoder output so an amended catalog diffs cleanly
// against its source. encoding/xml escapes every quote and writes comments
// without indentation; tidy restores literal quotes in character data and
// apostrophes in attributes (which are always double-quoted), and moves each
// comment onto its own indented line.
func tidy(src []byte, indent string) []byte {
	var out bytes.Buffer
	out.Grow(len(src))

	depth, inTag := 0, false
	for i := 0; i < len(src); {
		rest := src[i:]

		if bytes.HasPrefix(rest, commentOpen) {
			n := bytes.Index(rest, commentClose)
			if n < 0 {
				out.Write(rest)
				break
			}
			n += len(commentClose)
			if b := out.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
				out.WriteByte('\n')
				out.WriteString(strings.Repeat(indent, depth))
			}
			out.Write(rest[:n])
			i += n
			continue
		}

		switch rest[0] {
		case '<':
			inTag = true
			if len(rest) > 1 && rest[1] == '/' {
				depth--
			} else {
				depth++
			}
		case '>':
			inTag = false
			if i > 0 && src[i-1] == '/' {
				depth--
			}
		case '&':
			if bytes.HasPrefix(rest, aposRef) {
				out.WriteByte('\'')
				i += len(aposRef)
				continue
			}
			if !inTag && bytes.HasPrefix(rest, quotRef) {
				out.WriteByte('"')
				i += len(quotRef)
				continue
			}
		}
		out.WriteByte(rest[0])
		i++
	}
	return out.Bytes()
}
