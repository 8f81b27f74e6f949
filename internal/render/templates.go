package render

import "html/template"

// Built-in fallback markup. Deliberately minimal: themes are expected to
// override presentation; the built-ins guarantee that every render point
// produces an addressable element with the data attributes event handling
// relies on.
const builtinTemplates = `
{{define "facet"}}
<form class="fv-facet" method="post" action="/filter" data-facet-name="{{.Facet.Name}}"{{.Attrs}}>
  <input type="hidden" name="facet" value="{{.Facet.Name}}">
  <h3 class="fv-facet-title">{{.Facet.DisplayName}}</h3>
  <ul class="fv-facet-values">
    {{- range .Facet.Counts}}
    <li><label>
      <input type="checkbox" name="value" value="{{.Value}}"
        data-facet-name="{{$.Facet.Name}}" data-facet-value="{{.Value}}"
        {{- if $.Facet.IsSelected .Value}} checked{{end}}>
      {{.Value}} <span class="fv-count">({{.Count}})</span>
    </label></li>
    {{- end}}
  </ul>
  <button type="submit" class="fv-facet-apply">Apply</button>
</form>
{{end}}

{{define "card"}}
<article class="fv-result" data-result-index="{{.Index}}"{{.Attrs}}>
  <h3 class="fv-result-title"><a href="{{.Link}}">{{.Title}}</a></h3>
  {{- if .Date}}
  <time class="fv-result-date">{{.Date}}</time>
  {{- end}}
  {{- if .Snippets}}
  {{- range .Snippets}}
  <p class="fv-snippet">{{.}}</p>
  {{- end}}
  {{- else if .Description}}
  <p class="fv-description">{{.Description}}</p>
  {{- end}}
  {{- if .Language}}
  <span class="fv-language">{{.Language}}</span>
  {{- end}}
</article>
{{end}}

{{define "results-info"}}
<p class="fv-results-info">{{if .Total}}Results {{.From}}-{{.To}} of {{.Total}}{{else}}No results{{end}}</p>
{{end}}

{{define "pagination"}}
<nav class="fv-pagination">
  {{- if .HasPrev}}
  <a href="/page/{{.Prev}}" data-page="{{.Prev}}" class="fv-page-prev">&laquo;</a>
  {{- end}}
  {{- range .Pages}}
  <a href="/page/{{.Number}}" data-page="{{.Number}}" class="fv-page{{if .Current}} fv-page-current{{end}}">{{.Number}}</a>
  {{- end}}
  {{- if .HasNext}}
  <a href="/page/{{.Next}}" data-page="{{.Next}}" class="fv-page-next">&raquo;</a>
  {{- end}}
</nav>
{{end}}

{{define "didyoumean"}}
{{- if .Suggestions}}
<p class="fv-didyoumean">Did you mean:
  {{- range .Suggestions}}
  <a href="/?q={{.}}" data-suggestion="{{.}}">{{.}}</a>
  {{- end}}
</p>
{{- end}}
{{end}}
`

var builtins = template.Must(template.New("builtin").Parse(builtinTemplates))
