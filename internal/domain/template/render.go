package template

import "sort"

// TableRow — единственная сводная строка упрощенной таблицы позиций.
// Это сознательно не динамический список строк счета.
type TableRow struct {
	Designation string `json:"designation"`
	Quantity    int    `json:"quantity"`
	Amount      string `json:"amount"`
}

// FuelMileage — статические поля блока пробега и топлива. Значения пока
// не привязаны к реальному акту осмотра.
type FuelMileage struct {
	Odometer  string `json:"odometer"`
	FuelLevel string `json:"fuelLevel"`
}

// DrawOp — одна позиционированная инструкция отрисовки. Список инструкций
// одинаково потребляется экраном редактора, предпросмотром и печатью.
type DrawOp struct {
	ElementID string   `json:"elementId"`
	Kind      Kind     `json:"kind"`
	Geometry  Geometry `json:"geometry"`
	Style     Style    `json:"style"`

	// Content — текст после подстановки для текстовых видов, подпись для
	// signature-area, пусто для структурных видов
	Content string `json:"content,omitempty"`

	LogoURL   string          `json:"logoUrl,omitempty"`
	Table     *TableRow       `json:"table,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`
	Fuel      *FuelMileage    `json:"fuel,omitempty"`
}

// Render — чистая функция отображения шаблона в список инструкций
// отрисовки в z-порядке (zIndex, при равенстве — порядок вставки).
// Редактор, предпросмотр и печать вызывают ровно этот код: расхождение
// раскладки между экраном и бумагой исключено по построению.
func Render(t Template, ctx DataContext, locale string) []DrawOp {
	ordered := cloneElements(t.Elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Style.ZIndex < ordered[j].Style.ZIndex
	})

	ops := make([]DrawOp, 0, len(ordered))
	for _, el := range ordered {
		op := DrawOp{
			ElementID: el.ID,
			Kind:      el.Kind,
			Geometry:  el.Geometry,
			Style:     el.Style,
		}

		switch el.Kind {
		case KindStaticText:
			op.Content = el.Content
		case KindBoundText:
			op.Content = Substitute(el.Content, ctx, locale)
		case KindLogo:
			// логотип агентства рисуется из контекста данных; без него
			// остается подписанный бокс-заглушка
			if ctx.Store.LogoURL != "" {
				op.LogoURL = ctx.Store.LogoURL
			} else {
				op.Content = logoPlaceholder(el)
			}
		case KindTable:
			op.Table = &TableRow{
				Designation: Substitute("Location {{vehicle_brand}} {{vehicle_model}}", ctx, locale),
				Quantity:    1,
				Amount:      FormatAmount(ctx.Reservation.TotalAmount) + " DZ",
			}
		case KindSignatureArea:
			op.Content = el.Content
		case KindChecklist:
			op.Checklist = DecodeChecklist(el.Content)
		case KindFuelMileage:
			op.Fuel = &FuelMileage{Odometer: "15 400 KM", FuelLevel: "8/8 (Plein)"}
		case KindDivider, KindQRPlaceholder:
			// визуал целиком выводится из вида
		}

		ops = append(ops, op)
	}
	return ops
}

func logoPlaceholder(el Element) string {
	if el.Content != "" {
		return el.Content
	}
	return "LOGO"
}
