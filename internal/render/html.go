package render

import (
	"html/template"
	"io"
)

// HTMLOptions controls how action controls are linked in the HTML output.
type HTMLOptions struct {
	// ConfirmPath receives ?action=<tag>&id=<id> when a control is followed.
	ConfirmPath string
}

var funcs = template.FuncMap{
	// Cell text is escaped when the tree is built, so it is emitted as-is.
	"trusted": func(s string) template.HTML { return template.HTML(s) },
	"isLink":  func(c Cell) bool { return c.Kind == CellLink },
	"isCode":  func(c Cell) bool { return c.Kind == CellCode },
	"isDesc":  func(c Cell) bool { return c.Kind == CellDescription },
	"isBadge": func(c Cell) bool { return c.Kind == CellBadge },
	"isNone":  func(c Cell) bool { return c.Kind == CellNone },
	"isYes":   func(c Cell) bool { return c.Badge == BadgeYes },
}

var tableTemplate = template.Must(template.New("table").Funcs(funcs).Parse(`
{{- if .Table.Empty -}}
<div class="placeholder">{{ .Table.Placeholder }}</div>
{{- else -}}
<div class="table-header"><h3>{{ .Table.Title }}</h3></div>
<table class="records records-{{ .Table.Kind }}">
  <thead>
    <tr>{{ range .Table.Headers }}<th scope="col">{{ . }}</th>{{ end }}<th scope="col">Actions</th></tr>
  </thead>
  <tbody>
  {{- range .Table.Rows }}
    <tr>
    {{- range .Cells }}
      <td>
      {{- if isLink . }}<a href="{{ .Href }}">{{ trusted .Text }}</a>
      {{- else if isCode . }}<code>{{ trusted .Text }}</code>
      {{- else if isNone . }}<span class="none">{{ .Text }}</span>
      {{- else if isBadge . }}{{ if isYes . }}<span class="badge badge-yes badge-{{ .Tone }}">{{ .Text }}</span>{{ else }}<span class="badge badge-no">{{ .Text }}</span>{{ end }}
      {{- else if isDesc . }}<span class="truncate"{{ if .Truncated }} title="{{ trusted .Tooltip }}"{{ end }}>{{ trusted .Text }}</span>
      {{- else }}{{ trusted .Text }}{{ end -}}
      </td>
    {{- end }}
      <td class="controls">
      {{- range .Controls }}
        <a class="control control-{{ .Tag }}" href="{{ $.ConfirmPath }}?action={{ .Tag }}&id={{ .ID }}" data-action="{{ .Tag }}" data-id="{{ .ID }}">{{ .Label }}</a>
      {{- end }}
      </td>
    </tr>
  {{- end }}
  </tbody>
</table>
{{- end -}}
`))

// HTML writes the table as an HTML fragment.
func HTML(w io.Writer, t Table, opts HTMLOptions) error {
	return tableTemplate.Execute(w, struct {
		Table       Table
		ConfirmPath string
	}{t, opts.ConfirmPath})
}
