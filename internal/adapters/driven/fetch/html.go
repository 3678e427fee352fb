package fetch

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// Elements whose content is dropped entirely.
var skipTags = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true,
	"svg": true, "template": true,
}

// Elements rendered as their own paragraph.
var blockTags = map[string]bool{
	"p": true, "div": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "section": true, "article": true,
	"header": true, "footer": true, "figure": true, "figcaption": true,
}

// isHTML reports whether a media type names an HTML or XHTML document.
func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// HTMLText renders an HTML document as plain text: one paragraph per block
// element, separated by blank lines, with <pre> line breaks kept. The
// character set comes from contentType when it names one, otherwise from
// a BOM or <meta> tag, falling back to windows-1252 for non-UTF-8 bytes.
func HTMLText(r io.Reader, contentType string) (string, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to detect charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var tr textRenderer
	tr.walk(doc.Contents())
	tr.flush()

	text := strings.TrimSpace(tr.out.String())
	if text == "" {
		return "", nil
	}
	return norm.NFC.String(text + "\n"), nil
}

// textRenderer accumulates rendered lines in out and the pending line in line.
type textRenderer struct {
	out  strings.Builder
	line strings.Builder
	pre  int
}

func (r *textRenderer) walk(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.TextNode:
			r.text(node.Data)
		case html.ElementNode:
			r.element(goquery.NodeName(s), s)
		case html.DocumentNode:
			r.walk(s.Contents())
		}
	})
}

func (r *textRenderer) element(name string, s *goquery.Selection) {
	switch {
	case skipTags[name]:
	case name == "br":
		r.flush()
	case name == "hr":
		r.flush()
		r.blank()
	case blockTags[name]:
		r.flush()
		r.blank()
		if name == "pre" {
			r.pre++
		}
		r.walk(s.Contents())
		if name == "pre" {
			r.pre--
		}
		r.flush()
		r.blank()
	default:
		r.walk(s.Contents())
	}
}

// text appends a text node. Inside <pre> every newline ends a line and an
// empty line becomes a paragraph break.
func (r *textRenderer) text(s string) {
	if r.pre == 0 {
		r.line.WriteString(s)
		return
	}
	for i, part := range strings.Split(s, "\n") {
		if i > 0 && !r.flush() {
			r.blank()
		}
		r.line.WriteString(part)
	}
}

// flush writes the pending line with its whitespace collapsed. It reports
// whether anything was written.
func (r *textRenderer) flush() bool {
	line := strings.Join(strings.Fields(r.line.String()), " ")
	r.line.Reset()
	if line == "" {
		return false
	}
	r.out.WriteString(line)
	r.out.WriteByte('\n')
	return true
}

// blank ends the current paragraph unless one just ended.
func (r *textRenderer) blank() {
	s := r.out.String()
	if s != "" && !strings.HasSuffix(s, "\n\n") {
		r.out.WriteByte('\n')
	}
}

// ToText converts fetched bytes to text according to their media type.
// HTML goes through HTMLText and everything else through DecodeCharset,
// except EPUB, which must be imported from a local file.
func ToText(data []byte, contentType string) (string, error) {
	if isHTML(contentType) {
		return HTMLText(bytes.NewReader(data), contentType)
	}
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType == "application/epub+zip" {
		return "", fmt.Errorf("%w: download the epub and import the file", domain.ErrUnsupportedSource)
	}
	return DecodeCharset(data, contentType)
}
