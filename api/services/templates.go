package services

import "html/template"

var pages = template.Must(template.New("pages").Parse(`
{{- define "head" -}}
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Admin console</title>
</head>
<body>
<header>
  <h1><a href="{{ .BasePath }}/">Admin console</a></h1>
  <ul class="stats">
    <li>Users <strong id="stat-users">{{ if .StatsLoaded }}{{ .Stats.Users }}{{ else }}-{{ end }}</strong></li>
    <li>Groups <strong id="stat-groups">{{ if .StatsLoaded }}{{ .Stats.Groups }}{{ else }}-{{ end }}</strong></li>
    <li>Projects <strong id="stat-projects">{{ if .StatsLoaded }}{{ .Stats.Projects }}{{ else }}-{{ end }}</strong></li>
  </ul>
</header>
{{- range .Notices }}
<div class="flash flash-{{ .Level }}" role="alert">{{ .Message }}</div>
{{- end }}
{{- end -}}

{{- define "dashboard" -}}
{{ template "head" . }}
<section class="settings">
  {{- range .Flags }}
  <form method="post" action="{{ $.BasePath }}/settings/{{ .Name }}/toggle">
    <input type="hidden" name="current" value="{{ .Enabled }}">
    <input type="hidden" name="list" value="{{ $.List }}">
    <button type="submit" role="switch" id="toggle-{{ .Name }}" aria-checked="{{ .Enabled }}">{{ .Name }}</button>
  </form>
  {{- end }}
</section>
<nav class="tabs">
  {{- range .Tabs }}
  <a id="btn-{{ .Kind }}" href="{{ $.BasePath }}/?list={{ .Kind }}"{{ if .Active }} class="active"{{ end }}>{{ .Label }}</a>
  {{- end }}
</nav>
<main id="result">
{{- if .ListError }}
<div class="error-panel">{{ .ListError }}</div>
{{- else }}
{{ .Table }}
{{- end }}
</main>
</body>
</html>
{{- end -}}

{{- define "confirm" -}}
{{ template "head" . }}
<div class="modal" id="confirm-modal">
  <p id="confirm-message">{{ .Prompt }}</p>
  <form method="post" action="{{ .BasePath }}/actions">
    <input type="hidden" name="action" value="{{ .Action }}">
    <input type="hidden" name="id" value="{{ .ID }}">
    <button type="submit" id="confirm-ok"{{ if not .ConfirmEnabled }} disabled{{ end }}>Confirm</button>
    <a id="confirm-cancel" href="{{ .BasePath }}/?list={{ .List }}">Cancel</a>
  </form>
</div>
</body>
</html>
{{- end -}}
`))
