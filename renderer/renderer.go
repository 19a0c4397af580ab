// Package renderer turns barwatch analysis results into markdown
// reports. Each report has a view model built from the library types
// and a text/template that renders it.
package renderer

import (
	"fmt"
	"strings"
	"text/template"
)

// renderTemplate parses and executes a named template over data.
// Template errors end up in the output string rather than aborting the
// report.
func renderTemplate(name, content string, data any) string {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
