package core

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

const OutletMarker = "<!--vue-ssr-outlet-->"

// {{{ key }}} is inserted raw, {{ key }} HTML-escaped.
var placeholderRe = regexp.MustCompile(`\{\{\{([\s\S]+?)\}\}\}|\{\{([\s\S]+?)\}\}`)

// Template is an HTML page split around the outlet marker. It is never
// modified after parsing, so a single value is shared by every request.
type Template struct {
	head         string
	tail         string
	placeholders bool
}

func ParseTemplate(src string) (*Template, error) {
	head, tail, ok := strings.Cut(src, OutletMarker)
	if !ok {
		return nil, fmt.Errorf("template is missing the %s marker", OutletMarker)
	}
	if strings.Contains(tail, OutletMarker) {
		return nil, fmt.Errorf("template contains more than one %s marker", OutletMarker)
	}
	return &Template{
		head:         head,
		tail:         tail,
		placeholders: placeholderRe.MatchString(src),
	}, nil
}

// Head returns the markup before the outlet.
func (t *Template) Head() string { return t.head }

// Tail returns the markup after the outlet.
func (t *Template) Tail() string { return t.tail }

// Assemble fills the template for one render: placeholders from the render
// context, collected head markup before </head>, the app markup and its
// state script in the outlet.
func (t *Template) Assemble(app RenderedApp) string {
	head, tail := t.head, t.tail
	if t.placeholders {
		head = interpolate(head, app.Context)
		tail = interpolate(tail, app.Context)
	}
	if app.Head != "" {
		head = injectHead(head, app.Head)
	}

	var sb strings.Builder
	sb.Grow(len(head) + len(app.HTML) + len(app.State) + len(tail))
	sb.WriteString(head)
	sb.WriteString(app.HTML)
	sb.WriteString(app.State)
	sb.WriteString(tail)
	return sb.String()
}

// interpolate replaces placeholders with context values. Keys missing from
// the context, and expressions other than a plain key, render as empty.
func interpolate(src string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(src, func(m string) string {
		sub := placeholderRe.FindStringSubmatch(m)
		if sub[1] != "" {
			return values[strings.TrimSpace(sub[1])]
		}
		return html.EscapeString(values[strings.TrimSpace(sub[2])])
	})
}

func injectHead(page, extra string) string {
	idx := strings.LastIndex(strings.ToLower(page), "</head>")
	if idx < 0 {
		return page
	}
	return page[:idx] + extra + page[idx:]
}
