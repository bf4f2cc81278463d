package template

import (
	"encoding/json"
	"fmt"
)

// ElementPatch описывает частичное изменение элемента из панели свойств.
// Nil-поля не затрагиваются.
type ElementPatch struct {
	Content *string `json:"content,omitempty"`
	Label   *string `json:"label,omitempty"`

	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	FontSize        *float64 `json:"fontSize,omitempty"`
	Color           *string  `json:"color,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	FontFamily      *string  `json:"fontFamily,omitempty"`
	FontWeight      *string  `json:"fontWeight,omitempty"`
	TextAlign       *string  `json:"textAlign,omitempty"`
	BorderRadius    *float64 `json:"borderRadius,omitempty"`
	Padding         *float64 `json:"padding,omitempty"`
	BorderWidth     *float64 `json:"borderWidth,omitempty"`
	BorderColor     *string  `json:"borderColor,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"`
	LetterSpacing   *float64 `json:"letterSpacing,omitempty"`
	ZIndex          *int     `json:"zIndex,omitempty"`
}

func (p ElementPatch) apply(el Element) Element {
	if p.Content != nil {
		el.Content = *p.Content
	}
	if p.Label != nil {
		el.Label = *p.Label
	}
	if p.X != nil {
		el.Geometry.X = *p.X
	}
	if p.Y != nil {
		el.Geometry.Y = *p.Y
	}
	if p.Width != nil {
		el.Geometry.Width = *p.Width
	}
	if p.Height != nil {
		el.Geometry.Height = *p.Height
	}
	if p.FontSize != nil {
		el.Style.FontSize = *p.FontSize
	}
	if p.Color != nil {
		el.Style.Color = *p.Color
	}
	if p.BackgroundColor != nil {
		el.Style.BackgroundColor = *p.BackgroundColor
	}
	if p.FontFamily != nil {
		el.Style.FontFamily = *p.FontFamily
	}
	if p.FontWeight != nil {
		el.Style.FontWeight = *p.FontWeight
	}
	if p.TextAlign != nil {
		el.Style.TextAlign = *p.TextAlign
	}
	if p.BorderRadius != nil {
		el.Style.BorderRadius = *p.BorderRadius
	}
	if p.Padding != nil {
		el.Style.Padding = *p.Padding
	}
	if p.BorderWidth != nil {
		el.Style.BorderWidth = *p.BorderWidth
	}
	if p.BorderColor != nil {
		el.Style.BorderColor = *p.BorderColor
	}
	if p.LineHeight != nil {
		el.Style.LineHeight = *p.LineHeight
	}
	if p.Opacity != nil {
		el.Style.Opacity = *p.Opacity
	}
	if p.LetterSpacing != nil {
		el.Style.LetterSpacing = *p.LetterSpacing
	}
	if p.ZIndex != nil {
		el.Style.ZIndex = *p.ZIndex
	}
	return el
}

// cloneElements копирует список элементов. Элементы состоят только из
// значимых полей, поэтому поверхностной копии достаточно.
func cloneElements(els []Element) []Element {
	out := make([]Element, len(els))
	copy(out, els)
	return out
}

// AddElement добавляет новый элемент заданного вида и возвращает обновленный
// шаблон вместе с id добавленного элемента. Исходное значение шаблона не
// изменяется: держатели прежней копии не наблюдают мутацию.
func AddElement(t Template, kind Kind, seed string) (Template, string) {
	el := NewElement(kind, seed)
	t.Elements = append(cloneElements(t.Elements), el)
	return t, el.ID
}

// UpdateElement вливает частичные изменения в элемент с данным id.
// Если элемент не найден, шаблон возвращается без изменений.
func UpdateElement(t Template, id string, patch ElementPatch) Template {
	for i, el := range t.Elements {
		if el.ID != id {
			continue
		}
		els := cloneElements(t.Elements)
		els[i] = patch.apply(el)
		t.Elements = els
		return t
	}
	return t
}

// RemoveElement удаляет элемент с данным id. Отсутствующий id — тихий no-op.
func RemoveElement(t Template, id string) Template {
	for i, el := range t.Elements {
		if el.ID != id {
			continue
		}
		els := make([]Element, 0, len(t.Elements)-1)
		els = append(els, t.Elements[:i]...)
		els = append(els, t.Elements[i+1:]...)
		t.Elements = els
		return t
	}
	return t
}

// Serialize сериализует шаблон в JSON. Содержимое checklist остается
// JSON-строкой внутри поля content: двойное кодирование сохраняется
// байт-в-байт при обратном чтении.
func Serialize(t Template) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template %s: %w", t.ID, err)
	}
	return data, nil
}

// Deserialize восстанавливает шаблон из JSON. Испорченный блоб — фатальная
// ошибка загрузки: вызывающая сторона откатывается на Blank или Default.
func Deserialize(data []byte) (Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrCorruptTemplate, err)
	}
	return t, nil
}
