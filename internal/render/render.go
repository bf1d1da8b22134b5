// Package render turns country select lists into HTML option and select tags.
package render

import (
	"html/template"
	"strings"

	"github.com/evyataryagoni/countryselect/internal/country"
)

// SeparatorOption is the disabled row placed between priority and other countries
const SeparatorOption = `<option value="" disabled="disabled">-------------</option>`

// Field names the form field a select is bound to
// Object "user" and Method "country" give id="user_country" name="user[country]"
type Field struct {
	Object string
	Method string
}

// ID returns the element id for the field
func (f Field) ID() string {
	if f.Object == "" {
		return f.Method
	}
	return f.Object + "_" + f.Method
}

// Name returns the form parameter name for the field
func (f Field) Name() string {
	if f.Object == "" {
		return f.Method
	}
	return f.Object + "[" + f.Method + "]"
}

// SelectOptions controls the extra rows of a select tag
type SelectOptions struct {
	IncludeBlank bool
	Prompt       string
	Selected     string
}

// Options renders one <option> per entry.
// Consecutive entries are joined by a newline. The separator follows the
// previous entry directly and ends with its own newline.
func Options(items []country.Item, selected string) template.HTML {
	selected = country.CanonicalCode(selected)

	var b strings.Builder
	for i, item := range items {
		switch v := item.(type) {
		case country.Entry:
			if i > 0 {
				if _, prevEntry := items[i-1].(country.Entry); prevEntry {
					b.WriteByte('\n')
				}
			}
			writeOption(&b, v, selected != "" && v.Code == selected)
		case country.Separator:
			b.WriteString(SeparatorOption)
			b.WriteByte('\n')
		}
	}
	return template.HTML(b.String())
}

// Select wraps Options in a select tag bound to field
func Select(field Field, items []country.Item, opts SelectOptions) template.HTML {
	var b strings.Builder
	b.WriteString(`<select id="`)
	b.WriteString(template.HTMLEscapeString(field.ID()))
	b.WriteString(`" name="`)
	b.WriteString(template.HTMLEscapeString(field.Name()))
	b.WriteString(`">`)

	if opts.IncludeBlank {
		b.WriteString("<option value=\"\"></option>\n")
	}
	if opts.Prompt != "" {
		b.WriteString(`<option value="">`)
		b.WriteString(template.HTMLEscapeString(opts.Prompt))
		b.WriteString("</option>\n")
	}

	b.WriteString(string(Options(items, opts.Selected)))
	b.WriteString("</select>")
	return template.HTML(b.String())
}

func writeOption(b *strings.Builder, entry country.Entry, selected bool) {
	b.WriteString(`<option value="`)
	b.WriteString(template.HTMLEscapeString(entry.Code))
	b.WriteByte('"')
	if selected {
		b.WriteString(` selected="selected"`)
	}
	b.WriteByte('>')
	b.WriteString(template.HTMLEscapeString(entry.Name))
	b.WriteString("</option>")
}
