package certificate

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/certificate.html
var templateFS embed.FS

// pageTemplate escapes every field contextually, so markup in a value is shown
// as text rather than interpreted.
var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/certificate.html"))

// WriteHTML renders the certificate page for r into w
func WriteHTML(w io.Writer, r Record) error {
	return pageTemplate.Execute(w, r)
}

// Render returns the complete, self-contained certificate page for r. The page
// stamps its own "Verified on" time when viewed.
func Render(r Record) string {
	var b strings.Builder
	// Writes to a strings.Builder cannot fail and the template only reads string fields
	_ = WriteHTML(&b, r)
	return b.String()
}
