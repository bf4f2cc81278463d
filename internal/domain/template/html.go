package template

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// ComposeHTML собирает автономную HTML-страницу из инструкций отрисовки.
// Страница — вход внешнего PDF-рендера; раскладка повторяет инструкции
// один в один, поэтому напечатанный документ совпадает с предпросмотром.
// Вывод детерминирован для одинаковых входов.
func ComposeHTML(t Template, ops []DrawOp) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	fmt.Fprintf(&b, "@page{size:%s %s;margin:0}", pt(t.CanvasWidth), pt(t.CanvasHeight))
	b.WriteString("body{margin:0;font-family:Inter,Arial,sans-serif}")
	b.WriteString(".el{position:absolute;white-space:pre-wrap;box-sizing:border-box}")
	b.WriteString("</style></head><body>")
	fmt.Fprintf(&b, "<div style=\"position:relative;width:%s;height:%s\">", pt(t.CanvasWidth), pt(t.CanvasHeight))

	for _, op := range ops {
		writeOp(&b, op)
	}

	b.WriteString("</div></body></html>")
	return b.String()
}

func writeOp(b *strings.Builder, op DrawOp) {
	s := op.Style
	g := op.Geometry

	var css strings.Builder
	fmt.Fprintf(&css, "left:%s;top:%s;width:%s;min-height:%s;", px(g.X), px(g.Y), px(g.Width), px(g.Height))
	if op.Kind == KindDivider {
		fmt.Fprintf(&css, "height:%s;", px(g.Height))
	}
	fmt.Fprintf(&css, "font-size:%s;color:%s;", px(s.FontSize), s.Color)
	if s.BackgroundColor != "" && s.BackgroundColor != "transparent" {
		fmt.Fprintf(&css, "background-color:%s;", s.BackgroundColor)
	}
	fmt.Fprintf(&css, "font-family:%s;font-weight:%s;text-align:%s;", s.FontFamily, s.FontWeight, s.TextAlign)
	fmt.Fprintf(&css, "border-radius:%s;padding:%s;", px(s.BorderRadius), px(s.Padding))
	if s.BorderWidth > 0 {
		fmt.Fprintf(&css, "border:%s solid %s;", px(s.BorderWidth), s.BorderColor)
	}
	fmt.Fprintf(&css, "line-height:%s;opacity:%s;letter-spacing:%s;z-index:%d;",
		num(s.LineHeight), num(s.Opacity), px(s.LetterSpacing), s.ZIndex)

	fmt.Fprintf(b, "<div class=\"el\" style=\"%s\">", css.String())

	switch op.Kind {
	case KindStaticText, KindBoundText:
		b.WriteString(escape(op.Content))
	case KindLogo:
		if op.LogoURL != "" {
			fmt.Fprintf(b, "<img src=\"%s\" style=\"width:100%%;height:100%%;object-fit:cover\">", html.EscapeString(op.LogoURL))
		} else {
			fmt.Fprintf(b, "<div style=\"width:100%%;height:100%%;display:flex;align-items:center;justify-content:center;border:1px dashed #d1d5db;opacity:.4\">%s</div>", escape(op.Content))
		}
	case KindTable:
		writeTable(b, op.Table)
	case KindDivider:
		ruleColor := op.Style.BackgroundColor
		if ruleColor == "" || ruleColor == "transparent" {
			ruleColor = "#d1d5db"
		}
		fmt.Fprintf(b, "<div style=\"width:100%%;height:100%%;background-color:%s\"></div>", ruleColor)
	case KindSignatureArea:
		fmt.Fprintf(b, "<div style=\"font-size:9px;color:#9ca3af;border-bottom:1px solid #f3f4f6;padding-bottom:4px\">%s</div>", escape(op.Content))
		b.WriteString("<div style=\"min-height:50px;border:1px dashed #e5e7eb;margin-top:6px\"></div>")
	case KindChecklist:
		writeChecklist(b, op.Checklist)
	case KindFuelMileage:
		writeFuel(b, op.Fuel)
	case KindQRPlaceholder:
		b.WriteString("<div style=\"width:100%;height:100%;border:4px solid #111827;display:grid;grid-template-columns:1fr 1fr 1fr;gap:2px;padding:2px;opacity:.5\">")
		for i := 0; i < 9; i++ {
			b.WriteString("<div style=\"background:#111827\"></div>")
		}
		b.WriteString("</div>")
	}

	b.WriteString("</div>")
}

func writeTable(b *strings.Builder, row *TableRow) {
	if row == nil {
		return
	}
	b.WriteString("<table style=\"width:100%;border-collapse:collapse;font-size:9px\">")
	b.WriteString("<thead><tr>")
	b.WriteString("<th style=\"text-align:left;border-bottom:1px solid #111827;padding:4px\">Désignation</th>")
	b.WriteString("<th style=\"text-align:center;border-bottom:1px solid #111827;padding:4px\">Qté</th>")
	b.WriteString("<th style=\"text-align:right;border-bottom:1px solid #111827;padding:4px\">Montant</th>")
	b.WriteString("</tr></thead><tbody><tr>")
	fmt.Fprintf(b, "<td style=\"padding:4px\">%s</td>", escape(row.Designation))
	fmt.Fprintf(b, "<td style=\"text-align:center;padding:4px\">%d</td>", row.Quantity)
	fmt.Fprintf(b, "<td style=\"text-align:right;padding:4px\">%s</td>", escape(row.Amount))
	b.WriteString("</tr></tbody></table>")
}

func writeChecklist(b *strings.Builder, items []ChecklistItem) {
	b.WriteString("<div style=\"font-size:9px\">")
	for _, it := range items {
		mark := "☐"
		if it.Checked {
			mark = "☑"
		}
		fmt.Fprintf(b, "<div style=\"display:flex;justify-content:space-between;border-bottom:1px solid #f9fafb;padding:2px 0\"><span>%s</span><span>%s</span></div>",
			escape(it.Label), mark)
	}
	b.WriteString("</div>")
}

func writeFuel(b *strings.Builder, f *FuelMileage) {
	if f == nil {
		return
	}
	b.WriteString("<div style=\"display:flex;width:100%;height:100%;font-size:9px;text-transform:uppercase\">")
	fmt.Fprintf(b, "<div style=\"flex:1;text-align:center;border-right:1px solid #e5e7eb\"><div style=\"opacity:.4;font-size:7px\">Odomètre</div><div style=\"font-weight:900\">%s</div></div>", escape(f.Odometer))
	fmt.Fprintf(b, "<div style=\"flex:1;text-align:center\"><div style=\"opacity:.4;font-size:7px\">Niveau Carburant</div><div style=\"font-weight:900\">%s</div></div>", escape(f.FuelLevel))
	b.WriteString("</div>")
}
