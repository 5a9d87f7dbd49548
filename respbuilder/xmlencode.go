package respbuilder

import (
	"encoding/xml"
	"fmt"

	"github.com/whitesnakegang/ouroboros/internal/maputil"
	"github.com/whitesnakegang/ouroboros/oasmodel"
)

// wrapXMLRoot wraps an arbitrary synthesized value (maps, ordered maps,
// slices, scalars) as an xml.Marshaler rooted under a single "response"
// element, since encoding/xml cannot marshal a bare map or interface value
// on its own.
func wrapXMLRoot(v any) xml.Marshaler {
	return xmlValue{name: "response", value: v}
}

// xmlValue recursively renders a generic Go value as XML elements. No
// third-party XML serializer appears anywhere in the reference corpus, so
// this walks encoding/xml's token encoder by hand rather than reaching for
// struct tags, which do not exist for schemaless synthesized data.
type xmlValue struct {
	name  string
	value any
}

func (x xmlValue) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: x.name}}

	switch v := x.value.(type) {
	case nil:
		return enc.EncodeElement("", start)
	case map[string]any:
		return encodeXMLMap(enc, start, sortedEntries(v))
	case *oasmodel.OrderedMap[any]:
		entries := make([]xmlEntry, 0, v.Len())
		v.Range(func(k string, val any) bool {
			entries = append(entries, xmlEntry{k, val})
			return true
		})
		return encodeXMLMap(enc, start, entries)
	case []any:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, item := range v {
			if err := enc.Encode(xmlValue{name: "item", value: item}); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	default:
		return enc.EncodeElement(fmt.Sprintf("%v", v), start)
	}
}

type xmlEntry struct {
	key   string
	value any
}

func sortedEntries(m map[string]any) []xmlEntry {
	keys := maputil.SortedKeys(m)
	entries := make([]xmlEntry, len(keys))
	for i, k := range keys {
		entries[i] = xmlEntry{k, m[k]}
	}
	return entries
}

func encodeXMLMap(enc *xml.Encoder, start xml.StartElement, entries []xmlEntry) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, e := range entries {
		if err := enc.Encode(xmlValue{name: e.key, value: e.value}); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
