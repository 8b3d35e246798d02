package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/OttoBos/Arduino-Alarmclock/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "unknown"
		}
		return s
	},
	"readout": func(snap status.Snapshot) string {
		text := snap.Display
		for len(text) < 4 {
			text += " "
		}
		sep := " "
		if snap.Colon {
			sep = ":"
		}
		return text[:2] + sep + text[2:4]
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Alarm Clock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.readout { font-size: 2.5em; letter-spacing: 0.15em; background: #111; color: #f33; display: inline-block; padding: 0.2em 0.4em; border-radius: 6px; white-space: pre; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
</style>
</head>
<body>
<h1>Alarm Clock</h1>

<p><span class="readout">{{readout .Snapshot}}</span></p>

<h2>State</h2>
<table>
<tr><th>Mode</th><td>{{stateOrUnknown .State}}</td></tr>
<tr><th>Brightness</th><td>{{.Intensity}} / 10</td></tr>
<tr><th>Alarm</th><td class="{{if .Alarm.Enabled}}on{{else}}off{{end}}">{{printf "%02d:%02d" .Alarm.Hour .Alarm.Minute}} {{if .Alarm.Enabled}}on{{else}}off{{end}}</td></tr>
{{if .Melody}}<tr><th>Playing</th><td>{{.Melody}}</td></tr>{{end}}
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Refresh</th><td>{{.Config.RefreshUs}}µs</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Inactivity</th><td>{{.Config.InactivityMs}}ms</td></tr>
{{if .Config.SPIDev}}<tr><th>SPI</th><td>{{.Config.SPIDev}}</td></tr>{{end}}
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> · <a href="/metrics">Metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
