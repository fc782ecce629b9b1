package api

import (
	"html/template"
	"net/http"
	"time"

	"github.com/Roelanb/wacheck/internal/checker"
)

// Version is reported in the status page footer. Set with -ldflags.
var Version = "dev"

var statusTpl = template.Must(template.New("status").Funcs(template.FuncMap{
	"kind": checker.Classify,
	"icon": checker.Icon,
}).Parse(`
<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if .Status.Running}}<meta http-equiv="refresh" content="2">{{end}}
<title>wacheck mock backend</title>
<style>
body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Ubuntu, Cantarell, Noto Sans, Arial, sans-serif; margin: 0; background: #0b0f14; color: #e6edf3; }
header, footer { padding: 12px 16px; background: #111827; border-bottom: 1px solid #1f2937; }
footer { border-top: 1px solid #1f2937; border-bottom: none; color: #9ca3af; }
.container { padding: 16px; max-width: 1024px; margin: 0 auto; }
h1, h2 { margin: 0 0 12px 0; }
.card { background: #111827; border: 1px solid #1f2937; border-radius: 8px; padding: 12px; margin-bottom: 16px; }
table { width: 100%; border-collapse: collapse; font-size: 14px; }
th, td { border-bottom: 1px solid #1f2937; padding: 8px; text-align: left; }
th { color: #9ca3af; font-weight: 600; }
.badge { display: inline-block; padding: 2px 8px; border-radius: 999px; font-size: 12px; }
.badge.success { background: #065f46; color: #d1fae5; }
.badge.error { background: #7f1d1d; color: #fee2e2; }
.badge.info { background: #374151; color: #e5e7eb; }
progress { width: 100%; }
</style>
</head>
<body>
<header><div class="container"><h1>wacheck mock backend</h1></div></header>
<main class="container">
  <div class="card">
    <h2>Session</h2>
    <span class="badge success">Session Ready</span>
  </div>
  <div class="card">
    <h2>Batch</h2>
    {{if .JobID}}
    <p>Job <code>{{.JobID}}</code> started {{.Started.Format "15:04:05"}} ({{if .Status.Running}}running{{else}}finished{{end}})</p>
    <progress max="100" value="{{printf "%.0f" .Percent}}"></progress>
    <p>{{.Label}}{{if not .Status.Running}} · {{.Summary}}{{end}}</p>
    {{else}}
    <p>No batch submitted yet.</p>
    {{end}}
  </div>
  <div class="card">
    <h2>Results</h2>
    <table>
      <thead><tr><th></th><th>Number</th><th>Result</th></tr></thead>
      <tbody>
      {{range .Status.Results}}
        {{$k := kind .}}
        <tr>
          <td><span class="badge {{$k}}">{{icon $k}}</span></td>
          <td><code>{{.Number}}</code></td>
          <td>{{if .Error}}{{.Error}}{{else}}{{.Message}}{{end}}</td>
        </tr>
      {{else}}
        <tr><td colspan="3">No results to display</td></tr>
      {{end}}
      </tbody>
    </table>
  </div>
</main>
<footer><div class="container">wacheck mock backend v{{.Version}}</div></footer>
</body>
</html>
`))

type statusPage struct {
	JobID   string
	Started time.Time
	Status  checker.BatchStatus
	Percent float64
	Label   string
	Summary checker.Summary
	Version string
}

// mountUI registers the server-rendered status page at /.
func (s *Server) mountUI() {
	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		id, started := s.jobs.Current()
		st := s.jobs.Snapshot()
		data := statusPage{
			JobID:   id,
			Started: started,
			Status:  st,
			Percent: checker.Percent(st.Progress, st.Total),
			Label:   checker.ProgressLabel(st.Progress, st.Total),
			Summary: checker.Summarize(st.Results),
			Version: Version,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := statusTpl.Execute(w, data); err != nil {
			s.log.Errorw("render status page", "error", err)
		}
	}).Methods(http.MethodGet)
}
