// Package web serves the leaderboard page and the refresh trigger.
package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zilviaxbt/galaboard/internal/services/leaderboard"
	"github.com/zilviaxbt/galaboard/internal/services/refresher"
)

const pageTitle = "GalaChain Leaderboard"

// Server exposes the leaderboard page on GET / and the fire-and-forget
// refresh trigger on POST /refresh.
type Server struct {
	addr     string
	boards   *leaderboard.Service
	launcher refresher.Launcher
	logger   *zap.Logger
	tmpl     *template.Template
}

func NewServer(addr string, boards *leaderboard.Service, launcher refresher.Launcher, logger *zap.Logger) *Server {
	return &Server{
		addr:     addr,
		boards:   boards,
		launcher: launcher,
		logger:   logger,
		tmpl:     template.Must(template.New("index").Funcs(formatters).Parse(indexTemplate)),
	}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/refresh", s.handleRefresh)

	server := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("web server listening", zap.String("addr", s.addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view, err := s.boards.BuildView(r.Context())
	if err != nil {
		s.logger.Error("failed to build leaderboard", zap.Error(err))
		http.Error(w, "balances snapshot is unreadable", http.StatusInternalServerError)
		return
	}

	data := struct {
		Title string
		leaderboard.View
	}{Title: pageTitle, View: view}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render leaderboard", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.launcher.Launch()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

var formatters = template.FuncMap{
	"fmtGala":  func(d decimal.Decimal) string { return d.StringFixed(8) },
	"fmtToken": func(d decimal.Decimal) string { return d.StringFixed(6) },
	"fmtUSD":   func(d decimal.Decimal) string { return d.StringFixed(6) },
	"fmtPct": func(d *decimal.Decimal) string {
		if d == nil {
			return "-"
		}
		return d.StringFixed(2)
	},
	"fmtTime": func(t *time.Time) string {
		if t == nil {
			return "never"
		}
		return t.Local().Format("2006-01-02 15:04:05")
	},
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --panel:#f6f6f6;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    #app {
      width:min(1200px, 96vw);
      margin:0 auto;
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
    }
    header { display:flex; justify-content:space-between; align-items:center; gap:1rem; flex-wrap:wrap; }
    h1 { font-size:1.1rem; text-transform:uppercase; letter-spacing:.15em; margin:0; }
    .meta { font-size:.7rem; color:var(--ink-mid); letter-spacing:.08em; }
    .price {
      border:2px solid var(--ink);
      padding:.4rem .9rem;
      background:#fff;
      box-shadow:4px 4px 0 rgba(0,0,0,.15);
      font-size:.8rem;
    }
    form { display:inline; }
    button {
      font-family:inherit;
      font-size:.75rem;
      text-transform:uppercase;
      letter-spacing:.1em;
      border:2px solid var(--ink);
      background:#fff;
      padding:.5rem 1rem;
      cursor:pointer;
      box-shadow:4px 4px 0 rgba(0,0,0,.15);
    }
    button:active { box-shadow:none; transform:translate(4px,4px); }
    table { width:100%; border-collapse:collapse; margin-top:1.5rem; font-size:.75rem; }
    th, td { border:1px solid var(--ink); padding:.5rem .7rem; text-align:right; }
    th { background:#fff; text-transform:uppercase; letter-spacing:.08em; font-size:.65rem; }
    td.owner, th.owner { text-align:left; word-break:break-all; }
    tr:nth-child(even) td { background:#fdfdfd; }
    .up { color:#1b9aaa; }
    .down { color:#d7263d; }
    .notice {
      margin-top:1rem;
      border:2px dashed var(--ink-mid);
      padding:.8rem;
      font-size:.7rem;
      color:var(--ink-mid);
    }
    .empty { margin-top:2rem; text-align:center; color:var(--ink-mid); font-size:.8rem; }
  </style>
</head>
<body>
  <div id="app">
    <header>
      <div>
        <h1>{{.Title}}</h1>
        <div class="meta">balances updated: {{fmtTime .BalancesUpdatedAt}}</div>
      </div>
      <div class="price">GALA ${{fmtUSD .Price}}</div>
      <form method="post" action="/refresh">
        <button type="submit">Refresh balances</button>
      </form>
    </header>
    {{if not .HasStarting}}
    <div class="notice">No starting balances snapshot found &mdash; change figures are measured against zero and percent change is unavailable.</div>
    {{end}}
    {{if .Rows}}
    <table>
      <thead>
        <tr>
          <th>#</th>
          <th class="owner">Owner</th>
          <th>GALA</th>
          <th>GUSDC</th>
          <th>GUSDT</th>
          <th>Starting $</th>
          <th>Current $</th>
          <th>Change $</th>
          <th>Change %</th>
        </tr>
      </thead>
      <tbody>
        {{range .Rows}}
        <tr>
          <td>{{.Rank}}</td>
          <td class="owner">{{.Owner}}</td>
          <td>{{fmtGala .Gala}}</td>
          <td>{{fmtToken .GUSDC}}</td>
          <td>{{fmtToken .GUSDT}}</td>
          <td>{{fmtUSD .StartingTotal}}</td>
          <td>{{fmtUSD .CurrentTotal}}</td>
          <td class="{{if .Change.IsNegative}}down{{else}}up{{end}}">{{fmtUSD .Change}}</td>
          <td>{{fmtPct .PctChange}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{else}}
    <div class="empty">No balances yet &mdash; trigger a refresh to fetch the first snapshot.</div>
    {{end}}
  </div>
</body>
</html>`
