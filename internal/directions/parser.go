package directions

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"simple-directions/internal/types"
)

// Element names of the directions-response schema. Matching is case-sensitive and
// only un-prefixed names match.
const (
	elemResponse     = "DirectionsResponse"
	elemRoute        = "route"
	elemLeg          = "leg"
	elemStep         = "step"
	elemStart        = "start_location"
	elemEnd          = "end_location"
	elemInstructions = "html_instructions"
	elemLat          = "lat"
	elemLng          = "lng"
)

// Parse reads one directions-response document from r and returns its Route.
//
// Only DirectionsResponse/route/leg/step and, inside a step, start_location,
// end_location and html_instructions are examined; every other element is skipped
// together with its subtree. Steps of all routes and legs are concatenated in
// document order.
//
// A nil reader or a stream with no content yields ErrEmptyInput. Malformed XML,
// a stream that ends inside an element, and non-numeric coordinates yield a
// *ParseError. No partial Route is returned on failure.
func Parse(r io.Reader) (*Route, error) {
	if r == nil {
		return nil, ErrEmptyInput
	}

	br := bufio.NewReader(r)
	if err := skipLeadingSpace(br); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, &ParseError{Element: "document", Err: err}
	}

	p := &parser{dec: xml.NewDecoder(br)}
	if err := p.readDocument(); err != nil {
		return nil, err
	}
	return p.route.build(), nil
}

// ParseBytes parses a document held in memory.
func ParseBytes(data []byte) (*Route, error) {
	return Parse(bytes.NewReader(data))
}

// ParseString parses a document held in a string.
func ParseString(s string) (*Route, error) {
	return Parse(strings.NewReader(s))
}

func skipLeadingSpace(br *bufio.Reader) error {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return err
		}
		if !isSpace(c) {
			return br.UnreadByte()
		}
	}
}

type parser struct {
	dec   *xml.Decoder
	route routeBuilder
}

// fail wraps err as a ParseError positioned at the decoder's current line.
func (p *parser) fail(element string, err error) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		return err
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	line, _ := p.dec.InputPos()
	return &ParseError{Element: element, Line: line, Err: err}
}

// token returns the next raw token. CharData is only valid until the next call.
func (p *parser) token() (xml.Token, error) {
	return p.dec.Token()
}

// nextTag returns the next start or end element, discarding text, comments and
// processing instructions in between.
func (p *parser) nextTag() (xml.Token, error) {
	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement, xml.EndElement:
			return tok, nil
		}
	}
}

func (p *parser) readDocument() error {
	for {
		tok, err := p.token()
		if err != nil {
			return p.fail("document", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !is(t, elemResponse) {
				return p.fail(t.Name.Local, fmt.Errorf("unexpected root element <%s>, want <%s>", t.Name.Local, elemResponse))
			}
			if err := p.readResponse(); err != nil {
				return err
			}
			return p.readEpilogue()
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fail("document", errors.New("text before root element"))
			}
		case xml.EndElement:
			return p.fail("document", fmt.Errorf("unexpected end element </%s>", t.Name.Local))
		}
	}
}

// readEpilogue consumes everything after the root element's end tag. Only
// whitespace, comments and processing instructions may follow the root.
func (p *parser) readEpilogue() error {
	for {
		tok, err := p.token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return p.fail("document", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return p.fail("document", fmt.Errorf("unexpected element <%s> after root element", t.Name.Local))
		case xml.EndElement:
			return p.fail("document", fmt.Errorf("unexpected end element </%s> after root element", t.Name.Local))
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fail("document", errors.New("text after root element"))
			}
		}
	}
}

// readChildren consumes the children of the element named parent, whose start tag has
// already been read, handing each child start tag to visit. It returns once the
// parent's end tag has been consumed.
func (p *parser) readChildren(parent string, visit func(xml.StartElement) error) error {
	for {
		tok, err := p.nextTag()
		if err != nil {
			return p.fail(parent, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := visit(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) readResponse() error {
	return p.readChildren(elemResponse, func(el xml.StartElement) error {
		if is(el, elemRoute) {
			return p.readRoute()
		}
		return p.skip(el)
	})
}

func (p *parser) readRoute() error {
	return p.readChildren(elemRoute, func(el xml.StartElement) error {
		if is(el, elemLeg) {
			return p.readLeg()
		}
		return p.skip(el)
	})
}

func (p *parser) readLeg() error {
	return p.readChildren(elemLeg, func(el xml.StartElement) error {
		if is(el, elemStep) {
			return p.readStep()
		}
		return p.skip(el)
	})
}

// readStep appends the step's locations to the polyline in the order they appear
// and its instruction text to the step list.
func (p *parser) readStep() error {
	return p.readChildren(elemStep, func(el xml.StartElement) error {
		switch {
		case is(el, elemStart), is(el, elemEnd):
			c, err := p.readLocation(el.Name.Local)
			if err != nil {
				return err
			}
			p.route.addPoint(c)
			return nil
		case is(el, elemInstructions):
			text, err := p.readInstructions()
			if err != nil {
				return err
			}
			p.route.addStep(StripMarkup(text))
			return nil
		default:
			return p.skip(el)
		}
	})
}

// readLocation reads a start_location or end_location. A missing lat or lng stays 0.
func (p *parser) readLocation(name string) (types.Coords, error) {
	var lat, lng float64
	err := p.readChildren(name, func(el xml.StartElement) error {
		var err error
		switch {
		case is(el, elemLat):
			lat, err = p.readFloat(elemLat)
		case is(el, elemLng):
			lng, err = p.readFloat(elemLng)
		default:
			err = p.skip(el)
		}
		return err
	})
	if err != nil {
		return types.Coords{}, err
	}
	return types.NewCoords(lat, lng), nil
}

func (p *parser) readFloat(name string) (float64, error) {
	text, err := p.readText(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, p.fail(name, fmt.Errorf("invalid number %q: %w", text, err))
	}
	return v, nil
}

// readInstructions returns the content of html_instructions as markup text. Child
// elements are written back as bare tags so StripMarkup removes them the same way
// as escaped markup, keeping the text inside them.
func (p *parser) readInstructions() (string, error) {
	var sb strings.Builder
	depth := 0
	for {
		tok, err := p.token()
		if err != nil {
			return "", p.fail(elemInstructions, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
			sb.WriteString("<" + t.Name.Local + ">")
		case xml.EndElement:
			if depth == 0 {
				return sb.String(), nil
			}
			depth--
			sb.WriteString("</" + t.Name.Local + ">")
		}
	}
}

// readText returns the character data of the element named name up to its end tag.
// Child elements nested inside are skipped.
func (p *parser) readText(name string) (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.token()
		if err != nil {
			return "", p.fail(name, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := p.skip(t); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

// skip discards the subtree opened by el. Depth starts at one for el itself, every
// nested start tag adds one and every end tag removes one.
func (p *parser) skip(el xml.StartElement) error {
	depth := 1
	for depth > 0 {
		tok, err := p.nextTag()
		if err != nil {
			return p.fail(el.Name.Local, err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func is(el xml.StartElement, name string) bool {
	return el.Name.Space == "" && el.Name.Local == name
}
