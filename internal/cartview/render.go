// Package cartview projects the cart store into a rendered line-item
// list plus a formatted total. Every render fully replaces the prior
// output; cart sizes are small and renders are user-triggered.
package cartview

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"MenuCart/internal/cart"
	"MenuCart/internal/price"
)

// Row is one rendered line item.
type Row struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// View is the structured projection of the cart.
type View struct {
	Empty bool   `json:"empty"`
	Rows  []Row  `json:"rows"`
	Count int    `json:"count"`
	Total string `json:"total"`
	Label string `json:"label"`
}

const listTemplate = `{{- if .Empty -}}
<p class="cart-empty">Your cart is empty.</p>
{{- else -}}
<ul class="cart-items">
{{- range .Rows}}
  <li class="cart-item" data-name="{{.Name}}">
    <img class="cart-item-image" src="{{.Image}}" alt="{{.Name}}">
    <span class="cart-item-name">{{.Name}}</span>
    <span class="cart-item-price">{{.Price}}</span>
    <span class="cart-item-qty">
      <button type="button" data-action="decrease" data-name="{{.Name}}" aria-label="Decrease {{.Name}}">-</button>
      <span class="qty">{{.Quantity}}</span>
      <button type="button" data-action="increase" data-name="{{.Name}}" aria-label="Increase {{.Name}}">+</button>
    </span>
    <button type="button" data-action="remove" data-name="{{.Name}}" aria-label="Remove {{.Name}}">&times;</button>
  </li>
{{- end}}
</ul>
<p class="cart-total">Total: {{.Total}}</p>
{{- end -}}
`

type Renderer struct {
	tmpl *template.Template
}

func New() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("cart").Parse(listTemplate)),
	}
}

// Project builds the structured view: per-row line totals and the grand
// total, both derived from parsed unit prices.
func (r *Renderer) Project(items []cart.LineItem) View {
	v := View{Empty: len(items) == 0}

	total := decimal.Zero
	for _, it := range items {
		unit := price.ParseOrZero(it.Price)
		line := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		v.Count += it.Quantity

		v.Rows = append(v.Rows, Row{
			Name:      it.Name,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
			LineTotal: price.Format(line),
		})
	}

	v.Total = price.Format(total)
	v.Label = badgeLabel(v.Count)
	return v
}

// HTML renders the replacement markup for the cart list.
func (r *Renderer) HTML(items []cart.LineItem) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, r.Project(items)); err != nil {
		return "", fmt.Errorf("render cart: %w", err)
	}
	return b.String(), nil
}

func badgeLabel(count int) string {
	if count == 1 {
		return "1 item in cart"
	}
	return fmt.Sprintf("%d items in cart", count)
}
