// Package pdf renders budget documents using maroto/v2.
package pdf

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"corralon_backend/internal/budgets/transport"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorTitle     = &props.Color{Red: 30, Green: 64, Blue: 175}    // blue-800
	colorHeading   = &props.Color{Red: 55, Green: 65, Blue: 81}     // gray-700
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128}  // gray-500
	colorTotal     = &props.Color{Red: 5, Green: 150, Blue: 105}    // emerald-600
	colorTableHead = &props.Color{Red: 243, Green: 244, Blue: 246}  // gray-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251}  // gray-50
	colorBorder    = &props.Color{Red: 209, Green: 213, Blue: 219}  // gray-300
)

const maxItemNameLen = 40

// CompanyInfo is the static company block printed on every document.
type CompanyInfo struct {
	Name        string
	Description string
	Phone       string
	Terms       string
	Contact     string
}

// Renderer produces budget PDFs. Rendering is deterministic for a given
// budget: the document date comes from the budget's CreatedAt.
type Renderer struct {
	company CompanyInfo
}

// NewRenderer creates a budget PDF renderer.
func NewRenderer(company CompanyInfo) *Renderer {
	return &Renderer{company: company}
}

// RenderBudget creates the PDF document for an assembled budget.
func (r *Renderer) RenderBudget(budget transport.Budget) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithCreationDate(budget.CreatedAt).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.buildHeader(budget)...)
	m.AddRows(row.New(6))

	if clientRows := buildClientBlock(budget.ClientInfo); len(clientRows) > 0 {
		m.AddRows(clientRows...)
		m.AddRows(row.New(6))
	}

	m.AddRows(buildItemsTable(budget.Items)...)
	m.AddRows(row.New(4))

	m.AddRows(buildTotalsBlock(budget)...)

	if summaryText := strings.TrimSpace(budget.Summary.Summary); summaryText != "" {
		m.AddRows(row.New(8))
		m.AddRows(buildObservationsBlock(summaryText)...)
	}

	m.AddRows(row.New(8))
	m.AddRows(r.buildFooter()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return stampModificationDate(doc.GetBytes(), budget.CreatedAt), nil
}

var modDatePattern = regexp.MustCompile(`(/ModDate \(D:)\d{14}`)

// stampModificationDate rewrites the /ModDate entry with the budget date.
// maroto forwards only the creation date to the underlying writer; the
// modification date comes from the wall clock. The stamp has the same width
// as the original, keeping the xref offsets valid.
func stampModificationDate(pdf []byte, tm time.Time) []byte {
	return modDatePattern.ReplaceAll(pdf, []byte("${1}"+tm.Format("20060102150405")))
}

// ── Header ──────────────────────────────────────────────────────────────

func (r *Renderer) buildHeader(budget transport.Budget) []core.Row {
	rows := []core.Row{
		row.New(12).Add(
			col.New(12).Add(text.New("PRESUPUESTO DE MATERIALES", props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: colorTitle,
			})),
		),
	}

	if r.company.Name != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(r.company.Name, props.Text{Size: 10, Style: fontstyle.Bold, Color: colorHeading})),
		))
	}
	if r.company.Description != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(r.company.Description, props.Text{Size: 9, Color: colorSecondary})),
		))
	}
	if r.company.Phone != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("Tel: "+r.company.Phone, props.Text{Size: 9, Color: colorSecondary})),
		))
	}

	rows = append(rows, row.New(4))
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New("Presupuesto N°: "+budget.ID, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorHeading})),
		col.New(6).Add(text.New("Fecha: "+budget.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 9, Color: colorSecondary, Align: align.Right})),
	))

	return rows
}

// ── Client block ────────────────────────────────────────────────────────

func buildClientBlock(info transport.ClientInfo) []core.Row {
	lines := make([]string, 0, 4)
	if info.Name != "" {
		lines = append(lines, "Nombre: "+info.Name)
	}
	if info.Email != "" {
		lines = append(lines, "Email: "+info.Email)
	}
	if info.Phone != "" {
		lines = append(lines, "Teléfono: "+info.Phone)
	}
	if info.Address != "" {
		lines = append(lines, "Dirección: "+info.Address)
	}
	if len(lines) == 0 {
		return nil
	}

	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New("DATOS DEL CLIENTE", props.Text{Size: 11, Style: fontstyle.Bold, Color: colorHeading})),
		),
	}
	for _, line := range lines {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(line, props.Text{Size: 9, Color: colorSecondary})),
		))
	}
	return rows
}

// ── Items table ─────────────────────────────────────────────────────────

func buildItemsTable(items []transport.BudgetItem) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New("DETALLE DE MATERIALES", props.Text{Size: 11, Style: fontstyle.Bold, Color: colorHeading})),
		),
	}

	headerStyle := props.Text{Size: 8.5, Style: fontstyle.Bold, Color: colorHeading, Top: 1.5}
	headerStyleRight := props.Text{Size: 8.5, Style: fontstyle.Bold, Color: colorHeading, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(2).Add(text.New("Código", headerStyle)),
		col.New(5).Add(text.New("Descripción", headerStyle)),
		col.New(1).Add(text.New("Cantidad", headerStyleRight)),
		col.New(2).Add(text.New("Precio Unit.", headerStyleRight)),
		col.New(2).Add(text.New("Total", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	for i, item := range items {
		rows = append(rows, buildItemRow(item, i))
	}
	return rows
}

func buildItemRow(item transport.BudgetItem, idx int) core.Row {
	normalStyle := props.Text{Size: 8, Color: colorHeading, Top: 1}
	rightStyle := props.Text{Size: 8, Color: colorHeading, Align: align.Right, Top: 1}

	name := item.Nombre
	if name == "" {
		name = "Sin descripción"
	}

	r := row.New(6).Add(
		col.New(2).Add(text.New(item.Codigo, normalStyle)),
		col.New(5).Add(text.New(truncateName(name), normalStyle)),
		col.New(1).Add(text.New(formatQuantity(item.Cantidad), rightStyle)),
		col.New(2).Add(text.New(formatCurrency(item.PrecioUnitario), rightStyle)),
		col.New(2).Add(text.New(formatCurrency(item.Total), rightStyle)),
	)

	if idx%2 == 1 {
		r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
	}
	return r
}

// ── Totals block ────────────────────────────────────────────────────────

func buildTotalsBlock(budget transport.Budget) []core.Row {
	labelStyle := props.Text{Size: 10, Color: colorHeading, Align: align.Right}
	valueStyle := props.Text{Size: 10, Color: colorHeading, Align: align.Right}

	return []core.Row{
		row.New(6).Add(
			col.New(9).Add(text.New("Subtotal:", labelStyle)),
			col.New(3).Add(text.New(formatCurrency(budget.Subtotal), valueStyle)),
		),
		row.New(6).Add(
			col.New(9).Add(text.New("IVA (21%):", labelStyle)),
			col.New(3).Add(text.New(formatCurrency(budget.IVA), valueStyle)),
		),
		row.New(8).Add(
			col.New(9).Add(text.New("TOTAL:", props.Text{Size: 11, Style: fontstyle.Bold, Color: colorTotal, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(formatCurrency(budget.Total), props.Text{Size: 11, Style: fontstyle.Bold, Color: colorTotal, Align: align.Right, Top: 1})),
		).WithStyle(&props.Cell{
			BorderType:  border.Top,
			BorderColor: colorTotal,
		}),
	}
}

// ── Observations ────────────────────────────────────────────────────────

func buildObservationsBlock(summary string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New("OBSERVACIONES", props.Text{Size: 11, Style: fontstyle.Bold, Color: colorHeading})),
		),
	}
	for _, line := range strings.Split(summary, "\n") {
		rows = append(rows, row.New(4).Add(
			col.New(12).Add(text.New(strings.TrimSpace(line), props.Text{Size: 8, Color: colorSecondary})),
		))
	}
	return rows
}

// ── Footer ──────────────────────────────────────────────────────────────

func (r *Renderer) buildFooter() []core.Row {
	rows := []core.Row{
		row.New(1).WithStyle(&props.Cell{
			BorderType:  border.Bottom,
			BorderColor: colorBorder,
		}),
		row.New(3),
		row.New(5).Add(
			col.New(12).Add(text.New("Condiciones:", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorHeading})),
		),
	}

	for _, line := range strings.Split(r.company.Terms, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, row.New(4).Add(
			col.New(12).Add(text.New(line, props.Text{Size: 7.5, Color: colorSecondary})),
		))
	}
	for _, line := range strings.Split(r.company.Contact, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, row.New(4).Add(
			col.New(12).Add(text.New(line, props.Text{Size: 7.5, Color: colorSecondary})),
		))
	}
	return rows
}

// ── Helpers ─────────────────────────────────────────────────────────────

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxItemNameLen {
		return name
	}
	return string(runes[:maxItemNameLen-3]) + "..."
}

func formatQuantity(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	return fmt.Sprintf("%.2f", qty)
}

func formatCurrency(value float64) string {
	raw := fmt.Sprintf("%.2f", value)
	dot := strings.Index(raw, ".")
	intPart, fracPart := raw[:dot], raw[dot+1:]

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return "$" + sign + builder.String() + "." + fracPart
}
