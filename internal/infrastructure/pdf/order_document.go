// Package pdf genera el documento imprimible de una orden de compra o de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de orden + N° Orden + Fecha + Estado           │
//	│  CONTRAPARTE: Proveedor / Cliente + contacto                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Entregado | Subtotal      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + QR con el número de orden                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bioinventario-api/internal/application/order"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

var _ order.DocumentRenderer = (*OrderDocumentGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// OrderDocumentGenerator implementa order.DocumentRenderer usando Maroto v2.
type OrderDocumentGenerator struct {
	issuer string
}

// NewOrderDocumentGenerator construye el generador. issuer aparece como autor del PDF.
func NewOrderDocumentGenerator(issuer string) *OrderDocumentGenerator {
	return &OrderDocumentGenerator{issuer: issuer}
}

// RenderOrder genera el PDF de la orden. partner puede ser nil si la contraparte ya no existe.
func (g *OrderDocumentGenerator) RenderOrder(_ context.Context, o *entity.Order, partner *entity.Partner) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kindTitle(o.Kind)+" "+o.OrderNumber, true).
		WithAuthor(nonEmpty(g.issuer, "bioinventario"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partnerRow(o, partner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(o.Kind))
	m.AddRows(itemRows(o.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func kindTitle(kind string) string {
	if kind == entity.OrderKindSales {
		return "ORDEN DE VENTA"
	}
	return "ORDEN DE COMPRA"
}

// headerRow: tipo de orden (izq) y número + fechas + estado (der).
func headerRow(o *entity.Order) core.Row {
	expected := "—"
	if o.ExpectedDate != nil {
		expected = o.ExpectedDate.Format("02/01/2006")
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(kindTitle(o.Kind), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+o.Status, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(o.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+o.OrderDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fecha esperada: "+expected, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// partnerRow: proveedor o cliente con sus datos de contacto.
func partnerRow(o *entity.Order, p *entity.Partner) core.Row {
	label := "PROVEEDOR"
	if o.Kind == entity.OrderKindSales {
		label = "CLIENTE"
	}
	name := nonEmpty(o.PartnerName, o.PartnerID)
	contact := "—"
	if p != nil {
		contact = fmt.Sprintf("Contacto: %s   |   Tel: %s   |   Email: %s",
			nonEmpty(p.ContactPerson, "—"),
			nonEmpty(p.Phone, "—"),
			nonEmpty(p.Email, "—"),
		)
	}
	c := col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
	)
	if o.Kind == entity.OrderKindSales && o.ShippingAddress != "" {
		c.Add(text.New("Envío: "+o.ShippingAddress, props.Text{Size: 8, Top: 17, Color: colorGray}))
	}
	return row.New(22).Add(c)
}

func tableHeaderRow(kind string) core.Row {
	fulfilled := "Recibido"
	if kind == entity.OrderKindSales {
		fulfilled = "Despachado"
	}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h(fulfilled, 1, align.Center),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(nonEmpty(it.ProductName, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprint(it.FulfilledQuantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$"+formatMoney(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(o *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(o.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: QR con el número de orden + observaciones.
func footerRow(o *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(o.OrderNumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Observaciones:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Left: 3}),
			text.New(nonEmpty(o.Remark, "—"), props.Text{Size: 8, Top: 7, Left: 3, Color: colorGray}),
			text.New("Elaborado por: "+nonEmpty(o.CreatedBy, "—"), props.Text{Size: 7, Top: 30, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con puntos de miles y coma decimal.
// Ej: 25000.5 → "25.000,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
