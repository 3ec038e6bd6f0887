package render

import (
	"attractions-walker/internal/domain"
	"fmt"
	"html/template"
	"io"
	"strings"
)

var funcs = template.FuncMap{
	"px": func(v float64) string { return fmt.Sprintf("%.1fpx", v) },
	"paragraphs": func(s string) []string {
		return strings.Split(s, "\n\n")
	},
}

var frameTmpl = template.Must(template.New("frame").Funcs(funcs).Parse(`<section class="walk" data-session="{{.SessionID}}" data-state="{{.State}}">
<h1 id="heading">{{.Heading}}</h1>
{{- with .Notice}}
<p id="notice" class="notice">{{.}}</p>
{{- end}}
{{- with .Display}}
<article class="poi" data-place-id="{{.PlaceID}}" data-cursor="{{.Cursor}}">
<h2 id="poi-name">{{.Name}}</h2>
<p id="poi-type">{{.Category}}{{with .OpenStatus}} <span class="open-status">({{.}})</span>{{end}}</p>
<div id="poi-rating" class="stars">{{with .Rating}}<span class="stars-fill" style="width: {{px $.Display.RatingWidth}}" title="{{.}}"></span>{{end}}</div>
<div id="poi-review">{{range paragraphs .Review}}<p>{{.}}</p>{{end}}</div>
<p id="poi-phone">{{with .Phone}}<a href="tel:{{.}}">{{.}}</a>{{end}}</p>
<p id="poi-website">{{with .Website}}<a href="{{.}}" target="_blank" rel="noopener">{{.}}</a>{{end}}</p>
<p id="poi-distance">{{if .Distance}}{{.Distance}} ({{.Duration}} by car){{end}}</p>
</article>
{{- end}}
{{- with .Exhaustion}}
<div id="final-message"><p>{{.Headline}}</p><p>{{.Advice}}</p></div>
{{- end}}
{{- if and (not .Display) (not .Exhaustion)}}
<p id="loading">Looking for places nearby ...</p>
{{- end}}
<button id="next" {{if not .NextEnabled}}disabled{{end}}>Next</button>
</section>
`))

// Frame writes the HTML fragment for one frame.
func Frame(w io.Writer, f domain.Frame) error {
	if err := frameTmpl.Execute(w, f); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	return nil
}
