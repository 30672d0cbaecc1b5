package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

type templates struct {
	base  *template.Template
	page  *template.Template
	game  *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"add": func(a, b int) int { return a + b },
		"mul": func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(baseTemplate))
	// Define the game fragment within the same set so the page can include it
	template.Must(base.New("game").Funcs(funcs()).Parse(gameTemplate))
	// index and page are the "content" of their own base clone; render them via "base".
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1>
<form action="/game" method="post"><button>New game</button></form>`))
	page := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div><form action="/game" method="post"><button>New game</button></form></div>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div sse-swap="game" hx-target="#game" hx-swap="outerHTML">{{template "game" .}}</div>
</div>`))
	// Standalone game template used for fragment rendering
	game := template.Must(template.New("game_only").Funcs(funcs()).Parse(gameTemplate))
	return &templates{base: base, page: page, game: game, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

// gameData feeds the game fragment.
type gameData struct {
	ID     string
	View   domain.View
	Notice string
}

const baseTemplate = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
.game { display: flex; flex-direction: row; }
.game-info { margin-left: 20px; }
.board-row:after { clear: both; content: ""; display: table; }
.square { background: #fff; border: 1px solid #999; float: left; font-size: 24px; font-weight: bold; height: 34px; margin-right: -1px; margin-top: -1px; padding: 0; text-align: center; width: 34px; }
.square.winner { background: #9f9; }
.step-selected { font-weight: bold; }
.alert { color: #a00; }
</style>
</head><body>{{template "content" .}}</body></html>`

const gameTemplate = `
<div id="game" class="game">
  <div class="game-board">
  {{range $r := iter 3}}
    <div class="board-row">
    {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}
      <button class="square{{if index $.View.Winners $i}} winner{{end}}" hx-post="/game/{{$.ID}}/cells/{{$i}}" hx-target="#game" hx-swap="outerHTML">{{index $.View.Board $i}}</button>
    {{end}}
    </div>
  {{end}}
  </div>
  <div class="game-info">
    <div class="status">{{.View.Status}}</div>
    {{if .Notice}}<div class="alert">{{.Notice}}</div>{{end}}
    <ul>
    {{range .View.Moves}}
      <li><button hx-post="/game/{{$.ID}}/jump/{{.Step}}" hx-target="#game" hx-swap="outerHTML"><span{{if .Current}} class="step-selected"{{end}}>{{.Label}}</span> {{.Coordinates}}</button></li>
    {{end}}
    </ul>
  </div>
</div>
`
