package chi

import "html/template"

// Page-level templates. Fragment markup (facets, cards, pagination) comes
// from the render dispatcher; these templates only lay it out.
const pageTemplates = `
{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{range .Stylesheets}}<link rel="stylesheet" href="{{.}}">
{{end}}</head>
<body{{if .Marker}} class="{{.Marker}}"{{end}}>
<header class="topbar">
  <form class="search-form" method="post" action="/search">
    <input type="search" name="q" value="{{.Query}}" placeholder="Search"{{if .Autocomplete}} data-suggest-url="/suggest"{{end}}>
    <button type="submit">Search</button>
  </form>
  <a class="settings-link" href="/settings">Settings</a>
</header>
{{if .Error}}<div class="error-banner" role="alert">{{.Error}}</div>{{end}}
<main class="content">
<aside class="facets">
{{if .Facets}}{{.Facets}}
<form method="post" action="/reset"><button type="submit">Clear filters</button></form>
{{if .DateFilter}}<form class="date-filter" method="post" action="/filter">
  <label>From <input type="date" name="date_start" value="{{.DateStart}}"></label>
  <label>To <input type="date" name="date_end" value="{{.DateEnd}}"></label>
  <button type="submit">Apply</button>
</form>{{end}}
{{end}}</aside>
<section class="results">
{{.DidYouMean}}
{{.ResultsInfo}}
{{.Results}}
{{.Pagination}}
</section>
</main>
</body>
</html>{{end}}

{{define "settings"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Settings</title></head>
<body>
<section class="settings-overlay">
<h1>Settings</h1>
<form method="post" action="/settings">
  <label>Server URL <input type="url" name="server_url" value="{{.ServerURL}}"></label>
  <label>Index <input type="text" name="index" value="{{.Index}}"></label>
  <label>Theme
    <select name="theme">
    {{range .Themes}}<option value="{{.ID}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
    {{end}}</select>
  </label>
  <button type="submit">Save</button>
  <a href="/">Cancel</a>
</form>
</section>
</body>
</html>{{end}}

{{define "inspector"}}<section class="field-inspector">
<h2>Result {{.Index}}</h2>
<table>
<tbody>
{{range .Fields}}<tr><th>{{.Name}}</th><td>{{.Value}}</td></tr>
{{end}}</tbody>
</table>
<a href="/">Back</a>
</section>{{end}}
`

var pages = template.Must(template.New("pages").Parse(pageTemplates))
