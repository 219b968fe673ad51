package docx

import "encoding/xml"

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style styleRefXML `xml:"pStyle"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// runItemKind distinguishes the ordered children of a run.
type runItemKind int

const (
	itemText runItemKind = iota
	itemBreak
	itemTab
	itemDrawing
)

// runItem is one child of a run, in document order. Order matters: a soft
// line break between two text nodes splits the paragraph into logical lines,
// and struct-based unmarshaling would lose that interleaving.
type runItem struct {
	Kind  runItemKind
	Text  string // itemText
	Embed string // itemDrawing: relationship ID of the image
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Properties runPropsXML
	Items      []runItem
}

// UnmarshalXML decodes a run preserving the order of its text, break, tab,
// and drawing children.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var txt textXML
				if err := d.DecodeElement(&txt, &t); err != nil {
					return err
				}
				r.Items = append(r.Items, runItem{Kind: itemText, Text: txt.Value})
			case "br":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Items = append(r.Items, runItem{Kind: itemBreak})
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Items = append(r.Items, runItem{Kind: itemTab})
			case "drawing":
				var dr drawingXML
				if err := d.DecodeElement(&dr, &t); err != nil {
					return err
				}
				if embed := dr.embed(); embed != "" {
					r.Items = append(r.Items, runItem{Kind: itemDrawing, Embed: embed})
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}

		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold boolXML `xml:"b"`
}

// boolXML represents an OOXML boolean element: presence means true unless
// val is "false" or "0".
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// present reports whether the element appeared at all.
func (b boolXML) present() bool {
	return b.XMLName.Local != ""
}

// value returns the boolean value, assuming present() is true.
func (b boolXML) value() bool {
	return b.Val != "false" && b.Val != "0"
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Value   string   `xml:",chardata"`
}

// drawingXML represents an embedded drawing/image.
type drawingXML struct {
	XMLName xml.Name   `xml:"drawing"`
	Inline  *inlineXML `xml:"inline"`
	Anchor  *inlineXML `xml:"anchor"`
}

// embed returns the relationship ID of the drawing's image, if any.
func (d drawingXML) embed() string {
	if d.Inline != nil && d.Inline.Blip != nil {
		return d.Inline.Blip.Embed
	}
	if d.Anchor != nil && d.Anchor.Blip != nil {
		return d.Anchor.Blip.Embed
	}
	return ""
}

// inlineXML represents an inline or anchored image container.
type inlineXML struct {
	Blip *blipXML `xml:"graphic>graphicData>pic>blipFill>blip"`
}

// blipXML represents an image reference.
type blipXML struct {
	Embed string `xml:"embed,attr"`
}

// stylesXML represents word/styles.xml, trimmed to what bold resolution needs.
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a single style definition.
type styleDefXML struct {
	Type    string      `xml:"type,attr"`
	StyleID string      `xml:"styleId,attr"`
	BasedOn styleRefXML `xml:"basedOn"`
	RPr     runPropsXML `xml:"rPr"`
}

// relationshipsXML represents word/_rels/document.xml.rels.
type relationshipsXML struct {
	XMLName xml.Name          `xml:"Relationships"`
	Rels    []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship entry.
type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// contentTypesXML represents [Content_Types].xml.
type contentTypesXML struct {
	XMLName  xml.Name        `xml:"Types"`
	Defaults []ctDefaultXML  `xml:"Default"`
	Override []ctOverrideXML `xml:"Override"`
}

// ctDefaultXML maps a file extension to a content type.
type ctDefaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ctOverrideXML maps an explicit part name to a content type.
type ctOverrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}
