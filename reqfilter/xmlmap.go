package reqfilter

import (
	"bytes"
	"encoding/xml"
	"io"
)

// decodeXMLMap decodes an XML document into a generic map with a single key,
// the root element's name, holding its decoded content: repeated child element names become a
// []any, elements with only character data become their string content,
// and elements with children become nested maps. No third-party XML
// library exists anywhere in the reference corpus; encoding/xml's
// token-stream reader is the only available tool for turning arbitrary
// XML into a schemaless map.
func decodeXMLMap(raw []byte) (map[string]any, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return map[string]any{}, nil
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			children, err := decodeXMLElement(dec)
			if err != nil {
				return nil, err
			}
			return map[string]any{start.Name.Local: children}, nil
		}
	}
}

func decodeXMLElement(dec *xml.Decoder) (any, error) {
	children := map[string]any{}
	var text string

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			value, err := decodeXMLElement(dec)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			if existing, ok := children[name]; ok {
				if list, ok := existing.([]any); ok {
					children[name] = append(list, value)
				} else {
					children[name] = []any{existing, value}
				}
			} else {
				children[name] = value
			}
		case xml.CharData:
			text += string(t)
		case xml.EndElement:
			if len(children) == 0 {
				return trimmed(text), nil
			}
			return children, nil
		}
	}
}

func trimmed(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
