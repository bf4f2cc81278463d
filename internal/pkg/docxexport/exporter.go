package docxexport

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"driveflow-docs-go/internal/domain/template"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

func init() {
	// Получаем ключ из переменной окружения
	licenseKey := os.Getenv("UNIDOC_LICENSE_API_KEY")
	if licenseKey == "" {
		// Для локальной разработки можно использовать файл с ключом
		possiblePaths := []string{
			".unidoc.key",
			"../../../.unidoc.key",
		}

		for _, path := range possiblePaths {
			data, err := os.ReadFile(path)
			if err == nil {
				licenseKey = strings.TrimSpace(string(data))
				break
			}
		}
	}

	if licenseKey == "" {
		fmt.Println("Warning: UniDoc license key not found. Some features may be limited.")
		return
	}

	if err := license.SetMeteredKey(licenseKey); err != nil {
		fmt.Printf("Warning: Error loading UniDoc license: %v\n", err)
	}
}

// Exporter собирает DOCX документ из результата рендеринга шаблона
type Exporter struct{}

// NewExporter создает новый экземпляр экспортера
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export строит DOCX документ из операций отрисовки
func (e *Exporter) Export(t template.Template, ops []template.DrawOp) ([]byte, error) {
	doc := document.New()

	for _, op := range ops {
		switch op.Kind {
		case template.KindStaticText, template.KindBoundText:
			addTextBlock(doc, op)
		case template.KindLogo:
			addLogoBlock(doc, op)
		case template.KindTable:
			addAmountTable(doc, op)
		case template.KindDivider:
			addDivider(doc)
		case template.KindSignatureArea:
			addSignatureBlock(doc, op)
		case template.KindChecklist:
			addChecklist(doc, op)
		case template.KindFuelMileage:
			addFuelMileage(doc, op)
		case template.KindQRPlaceholder:
			// QR-код не переносится в DOCX
		}
	}

	addFooter(doc, t.Name)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("error saving document: %w", err)
	}
	return buf.Bytes(), nil
}

// addTextBlock добавляет текстовый блок с учетом стиля элемента
func addTextBlock(doc *document.Document, op template.DrawOp) {
	for _, line := range strings.Split(op.Content, "\n") {
		para := doc.AddParagraph()
		para.Properties().SetAlignment(alignment(op.Style.TextAlign))

		run := para.AddRun()
		applyRunStyle(run, op.Style)
		run.AddText(line)
	}
}

// addLogoBlock добавляет блок логотипа
func addLogoBlock(doc *document.Document, op template.DrawOp) {
	para := doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)

	run := para.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(16 * measurement.Point)
	if op.Content != "" {
		run.AddText(op.Content)
	} else {
		run.AddText("LOGO")
	}
}

// addAmountTable добавляет таблицу позиций с границами
func addAmountTable(doc *document.Document, op template.DrawOp) {
	table := doc.AddTable()
	borders := table.Properties().Borders()
	borders.SetAll(wml.ST_BorderSingle, color.Black, 1*measurement.Point)
	table.Properties().SetWidthPercent(100)

	headerRow := table.AddRow()
	headers := []string{"Désignation", "Qté", "Montant"}
	widths := []float64{60, 15, 25}

	for i, header := range headers {
		cell := headerRow.AddCell()
		cell.Properties().SetWidthPercent(widths[i])

		para := cell.AddParagraph()
		para.Properties().SetAlignment(wml.ST_JcCenter)

		run := para.AddRun()
		run.Properties().SetBold(true)
		run.AddText(header)

		cell.Properties().SetShading(wml.ST_ShdSolid, color.Gray, color.Auto)
	}

	if op.Table != nil {
		item := *op.Table
		row := table.AddRow()

		nameCell := row.AddCell()
		nameCell.Properties().SetWidthPercent(widths[0])
		namePara := nameCell.AddParagraph()
		namePara.Properties().SetAlignment(wml.ST_JcLeft)
		namePara.AddRun().AddText(item.Designation)

		qtyCell := row.AddCell()
		qtyCell.Properties().SetWidthPercent(widths[1])
		qtyPara := qtyCell.AddParagraph()
		qtyPara.Properties().SetAlignment(wml.ST_JcCenter)
		qtyPara.AddRun().AddText(strconv.Itoa(item.Quantity))

		amountCell := row.AddCell()
		amountCell.Properties().SetWidthPercent(widths[2])
		amountPara := amountCell.AddParagraph()
		amountPara.Properties().SetAlignment(wml.ST_JcRight)
		amountPara.AddRun().AddText(item.Amount)
	}
}

// addDivider добавляет горизонтальную линию
func addDivider(doc *document.Document) {
	para := doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcLeft)
	para.AddRun().AddText(strings.Repeat("_", 80))
}

// addSignatureBlock добавляет зону подписи с подписью под линией
func addSignatureBlock(doc *document.Document, op template.DrawOp) {
	linePara := doc.AddParagraph()
	linePara.Properties().SetAlignment(alignment(op.Style.TextAlign))
	linePara.AddRun().AddText(strings.Repeat(".", 40))

	captionPara := doc.AddParagraph()
	captionPara.Properties().SetAlignment(alignment(op.Style.TextAlign))
	captionRun := captionPara.AddRun()
	captionRun.Properties().SetSize(9 * measurement.Point)
	captionRun.AddText(op.Content)
}

// addChecklist добавляет пункты осмотра с отметками
func addChecklist(doc *document.Document, op template.DrawOp) {
	for _, item := range op.Checklist {
		para := doc.AddParagraph()
		para.Properties().SetAlignment(wml.ST_JcLeft)

		run := para.AddRun()
		applyRunStyle(run, op.Style)
		mark := "☐"
		if item.Checked {
			mark = "☑"
		}
		run.AddText(mark + " " + item.Label)
	}
}

// addFuelMileage добавляет блок топлива и пробега
func addFuelMileage(doc *document.Document, op template.DrawOp) {
	if op.Fuel == nil {
		return
	}

	para := doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcLeft)
	run := para.AddRun()
	applyRunStyle(run, op.Style)
	run.AddText(fmt.Sprintf("Kilométrage: %s    Carburant: %s", op.Fuel.Odometer, op.Fuel.FuelLevel))
}

// addFooter добавляет футер с названием шаблона и номерами страниц
func addFooter(doc *document.Document, name string) {
	footer := doc.AddFooter()

	linePara := footer.AddParagraph()
	linePara.Properties().SetAlignment(wml.ST_JcLeft)
	linePara.AddRun().AddText(strings.Repeat("_", 80))

	mainPara := footer.AddParagraph()
	mainPara.Properties().SetAlignment(wml.ST_JcLeft)
	mainPara.AddRun().AddText(name)

	pagePara := footer.AddParagraph()
	pagePara.Properties().SetAlignment(wml.ST_JcRight)
	pageRun := pagePara.AddRun()
	pageRun.AddText("Page ")
	pageRun.AddField(document.FieldCurrentPage)
	pageRun.AddText(" / ")
	pageRun.AddField(document.FieldNumberOfPages)

	doc.BodySection().SetFooter(footer, wml.ST_HdrFtrDefault)
}

// applyRunStyle применяет стиль элемента к run
func applyRunStyle(run document.Run, s template.Style) {
	if s.FontSize > 0 {
		run.Properties().SetSize(measurement.Distance(s.FontSize) * measurement.Point)
	}
	if isBold(s.FontWeight) {
		run.Properties().SetBold(true)
	}
	if c, ok := parseHexColor(s.Color); ok {
		run.Properties().SetColor(c)
	}
}

// isBold трактует веса от 600 и именованное значение bold как жирный текст
func isBold(fontWeight string) bool {
	if fontWeight == "bold" {
		return true
	}
	if w, err := strconv.Atoi(fontWeight); err == nil {
		return w >= 600
	}
	return false
}

// alignment переводит текстовое выравнивание элемента в wml
func alignment(textAlign string) wml.ST_Jc {
	switch textAlign {
	case "center":
		return wml.ST_JcCenter
	case "right":
		return wml.ST_JcRight
	default:
		return wml.ST_JcLeft
	}
}

// parseHexColor разбирает цвет вида #rrggbb
func parseHexColor(s string) (color.Color, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.Black, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.Black, false
	}
	return color.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
}
