package directions

import "strings"

var entities = []struct {
	name  string
	value string
}{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&apos;", "'"},
	{"&nbsp;", " "},
}

// Tags that start a new line when rendered; removing them must not glue words together.
var blockTags = map[string]bool{
	"div": true,
	"br":  true,
	"p":   true,
	"li":  true,
}

// StripMarkup removes HTML tags from s and decodes the common entities, leaving plain
// text: "<b>Turn</b> left" becomes "Turn left". A "<" that does not open a tag is
// kept, and an unterminated tag is dropped through the end of the input. Text with
// no tags and no entities is returned unchanged.
//
// Passes repeat until the text stops changing, so markup hidden behind entities
// ("&amp;lt;b&amp;gt;") is removed too and stripping twice equals stripping once.
// Every pass that changes the text shortens it, which bounds the loop.
func StripMarkup(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripOnce(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false

	write := func(text string) {
		if pendingSpace && b.Len() > 0 && !isSpace(lastByte(&b)) && !isSpace(text[0]) {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteString(text)
	}

	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '<' && opensTag(s, i):
			var tag string
			if end := strings.IndexByte(s[i:], '>'); end >= 0 {
				tag = s[i+1 : i+end]
				i += end + 1
			} else {
				tag = s[i+1:]
				i = len(s)
			}
			if blockTags[tagName(tag)] {
				pendingSpace = true
			}
		case c == '&':
			if value, n := decodeEntity(s[i:]); n > 0 {
				write(value)
				i += n
				continue
			}
			write("&")
			i++
		default:
			// Copy the whole run up to the next special byte.
			j := i + 1
			for j < len(s) && s[j] != '<' && s[j] != '&' {
				j++
			}
			write(s[i:j])
			i = j
		}
	}
	return b.String()
}

func opensTag(s string, i int) bool {
	if i+1 >= len(s) {
		return false
	}
	c := s[i+1]
	return c == '/' || c == '!' || c == '?' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// tagName extracts the lower-cased element name from the inside of a tag, e.g.
// `/DIV` -> "div", `br/` -> "br", `div style="x"` -> "div".
func tagName(tag string) string {
	tag = strings.TrimPrefix(tag, "/")
	end := strings.IndexAny(tag, " \t\r\n/")
	if end >= 0 {
		tag = tag[:end]
	}
	return strings.ToLower(tag)
}

func decodeEntity(s string) (string, int) {
	for _, e := range entities {
		if strings.HasPrefix(s, e.name) {
			return e.value, len(e.name)
		}
	}
	return "", 0
}

func lastByte(b *strings.Builder) byte {
	s := b.String()
	return s[len(s)-1]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
