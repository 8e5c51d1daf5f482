package web

import (
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"MenuCart/pkg/kit"
)

// The page carries each product as a card with data attributes; the
// detail controller reads those same fields back through the descriptor.
const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Menu</title>
</head>
<body>
  <header>
    <h1>Menu</h1>
    <button id="cart-button" type="button" aria-label="Open cart">
      Cart <span id="cart-badge" aria-live="polite">0</span>
    </button>
  </header>
  <main class="menu">
{{- range .Cards}}
    <article class="card" tabindex="0"
      data-id="{{.ID}}"
      data-name="{{.Name}}"
      {{- if .Description}}
      data-description="{{.Description}}"
      {{- end}}
      {{- if .Image}}
      data-image="{{.Image}}"
      {{- end}}
      {{- if .Price}}
      data-price="{{.Price}}"
      {{- end}}
      {{- if .MultiSize}}
      data-price-normal="{{.Tiers.Normal}}"
      data-price-medium="{{.Tiers.Medium}}"
      data-price-large="{{.Tiers.Large}}"
      data-price-venti="{{.Tiers.Venti}}"
      {{- end}}>
      <img src="{{.Image}}" alt="{{.Name}}">
      <h2>{{.Name}}</h2>
      {{- if .Price}}
      <p class="price">{{.Price}}</p>
      {{- else if .MultiSize}}
      <p class="price">from {{.Tiers.Normal}}</p>
      {{- end}}
    </article>
{{- end}}
  </main>
  <div id="product-modal" hidden></div>
  <div id="cart-modal" hidden></div>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

func (s *Server) menuPage(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Menu.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list menu failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	var b strings.Builder
	if err := pageTmpl.Execute(&b, map[string]any{"Cards": cards}); err != nil {
		if s.Log != nil {
			s.Log.Error("render page failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, b.String())
}
