package template

import (
	"errors"
	"fmt"
)

// Определяем пользовательские ошибки
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrCorruptTemplate  = errors.New("template blob is corrupt")
)

// Kind определяет закрытый набор видов элементов документа
type Kind string

const (
	KindStaticText    Kind = "static-text"
	KindBoundText     Kind = "bound-text"
	KindLogo          Kind = "logo"
	KindTable         Kind = "table"
	KindDivider       Kind = "divider"
	KindSignatureArea Kind = "signature-area"
	KindChecklist     Kind = "checklist"
	KindFuelMileage   Kind = "fuel-mileage"
	KindQRPlaceholder Kind = "qr-placeholder"
)

// IsAllowedKind проверяет, что вид элемента входит в закрытый набор
func IsAllowedKind(k Kind) bool {
	switch k {
	case KindStaticText, KindBoundText, KindLogo, KindTable, KindDivider,
		KindSignatureArea, KindChecklist, KindFuelMileage, KindQRPlaceholder:
		return true
	default:
		return false
	}
}

// Category определяет тип печатного документа
type Category string

const (
	CategoryQuote          Category = "quote"
	CategoryContract       Category = "contract"
	CategoryDepositReceipt Category = "deposit-receipt"
	CategoryInvoice        Category = "invoice"
	CategoryCheckIn        Category = "check-in"
	CategoryCheckOut       Category = "check-out"
)

// AllCategories возвращает полный набор категорий в фиксированном порядке
func AllCategories() []Category {
	return []Category{
		CategoryQuote,
		CategoryContract,
		CategoryDepositReceipt,
		CategoryInvoice,
		CategoryCheckIn,
		CategoryCheckOut,
	}
}

// IsAllowedCategory проверяет категорию документа
func IsAllowedCategory(c Category) bool {
	switch c {
	case CategoryQuote, CategoryContract, CategoryDepositReceipt,
		CategoryInvoice, CategoryCheckIn, CategoryCheckOut:
		return true
	default:
		return false
	}
}

// Geometry задает размещение элемента в координатах холста.
//
// Модель доверяет вызывающему коду: панель свойств обязана передавать
// уже приведенные значения (Width/Height > 0, кроме divider, где Height
// интерпретируется как толщина линии). Конструирование не валидирует.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate проверяет контракт геометрии. Используется на границе API,
// а не при конструировании значений.
func (g Geometry) Validate(kind Kind) error {
	if g.X < 0 || g.Y < 0 {
		return fmt.Errorf("geometry position must be non-negative, got (%v, %v)", g.X, g.Y)
	}
	if g.Width <= 0 {
		return fmt.Errorf("geometry width must be positive, got %v", g.Width)
	}
	if g.Height <= 0 && kind != KindDivider {
		return fmt.Errorf("geometry height must be positive, got %v", g.Height)
	}
	return nil
}

// Style задает оформление элемента
type Style struct {
	FontSize        float64 `json:"fontSize"`
	Color           string  `json:"color"`
	BackgroundColor string  `json:"backgroundColor"`
	FontFamily      string  `json:"fontFamily"`
	FontWeight      string  `json:"fontWeight"`
	TextAlign       string  `json:"textAlign"`
	BorderRadius    float64 `json:"borderRadius"`
	Padding         float64 `json:"padding"`
	BorderWidth     float64 `json:"borderWidth"`
	BorderColor     string  `json:"borderColor"`
	LineHeight      float64 `json:"lineHeight"`
	Opacity         float64 `json:"opacity"`
	LetterSpacing   float64 `json:"letterSpacing"`
	ZIndex          int     `json:"zIndex"`
}

// Validate проверяет контракт стиля на границе API
func (s Style) Validate() error {
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity must be within [0, 1], got %v", s.Opacity)
	}
	if s.BorderWidth < 0 {
		return fmt.Errorf("border width must be non-negative, got %v", s.BorderWidth)
	}
	if s.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %v", s.Padding)
	}
	return nil
}

// Element представляет один размещенный объект на холсте документа.
//
// Content зависит от вида: текст (возможно с токенами {{...}}) для текстовых
// видов, JSON-список пунктов для checklist, подпись для signature-area.
// Структурные виды (table, divider, logo, fuel-mileage, qr-placeholder)
// рисуются только по виду, Content игнорируется.
type Element struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Label    string   `json:"label"`
	Content  string   `json:"content"`
	Geometry Geometry `json:"geometry"`
	Style    Style    `json:"style"`
}

// ChecklistItem представляет один пункт инспекционного списка
type ChecklistItem struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Template представляет макет печатного документа: упорядоченный набор
// элементов плюс размеры страницы и категория
type Template struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	Elements     []Element `json:"elements"`
	CanvasWidth  float64   `json:"canvasWidth"`
	CanvasHeight float64   `json:"canvasHeight"`
}

// FindElement возвращает элемент по id и признак его наличия
func (t Template) FindElement(id string) (Element, bool) {
	for _, el := range t.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}
