// Package templates renders the generator UI.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/fakedata/internal/region"
)

// PageData holds the initial state of the generator page.
type PageData struct {
	Regions  []region.Info
	Region   string
	Errors   string
	Seed     string
	PageSize int
}

// Page renders the full generator page. Records are loaded by static/app.js.
func Page(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>Fake User Data Generator</title>`)
		b.WriteString(`<link rel="stylesheet" href="/static/app.css"></head><body>`)
		b.WriteString(`<main class="page"><h1>Fake User Data Generator</h1>`)

		b.WriteString(`<form id="controls" class="controls" autocomplete="off">`)
		b.WriteString(`<label for="region">Region</label><select id="region" name="region">`)
		for _, r := range d.Regions {
			selected := ""
			if string(r.Code) == d.Region {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(string(r.Code)), selected, templ.EscapeString(r.Label))
		}
		b.WriteString(`</select>`)

		fmt.Fprintf(&b, `<label for="errors">Errors</label><input id="errors" name="errors" type="text" inputmode="decimal" value="%s">`,
			templ.EscapeString(d.Errors))
		fmt.Fprintf(&b, `<input id="errors-slider" type="range" min="0" max="10" step="0.25" value="%s" aria-label="Errors">`,
			templ.EscapeString(d.Errors))

		fmt.Fprintf(&b, `<label for="seed">Seed</label><input id="seed" name="seed" type="text" value="%s">`,
			templ.EscapeString(d.Seed))
		b.WriteString(`<button id="random-seed" type="button">Random Seed</button>`)
		b.WriteString(`</form>`)

		fmt.Fprintf(&b, `<table id="records" data-page-size="%d"><thead><tr>`, d.PageSize)
		for _, h := range []string{"#", "ID", "Full Name", "Address", "Phone"} {
			fmt.Fprintf(&b, `<th>%s</th>`, templ.EscapeString(h))
		}
		b.WriteString(`</tr></thead><tbody></tbody></table>`)

		b.WriteString(`<p id="loading" class="loading" hidden>Loading...</p>`)
		b.WriteString(`<button id="export-csv" class="export" type="button">Export to CSV</button>`)
		b.WriteString(`</main><script src="/static/app.js" defer></script></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
