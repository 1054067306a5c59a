// Package renderer renders portfolios and positions as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/fundledger"
)

//go:embed *.md
var templates embed.FS

// Portfolio renders the portfolio report on a given day.
func Portfolio(p *fundledger.Portfolio, on fundledger.Date) string {
	return renderTemplate("portfolio", "portfolio.md", NewReport(p, on))
}

// Position renders the ledger of a position, limited to its last n entries
// if n > 0.
func Position(pos *fundledger.Position, n int) string {
	return renderTemplate("position", "position.md", NewHistory(pos, n))
}

// renderTemplate renders a template file with data.
// Errors are rendered in place of the report.
func renderTemplate(templateName, file string, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}

	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// Quote renders the market data of a fund.
func Quote(code string, s fundledger.Snapshot) string {
	return renderTemplate("quote", "quote.md", struct {
		Code string
		fundledger.Snapshot
		Price Price
	}{code, s, Price{s.Price}})
}
