package template

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ChecklistSecurity и ChecklistEquipment — предустановленные инспекционные
// списки для элементов checklist
const (
	ChecklistSecurity  = "security"
	ChecklistEquipment = "equipment"
)

func securityItems() []ChecklistItem {
	return []ChecklistItem{
		{Label: "Feux & Phares"},
		{Label: "Pneus (Usure/Pression)"},
		{Label: "Freins"},
		{Label: "Essuie-glaces"},
		{Label: "Rétroviseurs"},
		{Label: "Ceintures"},
		{Label: "Klaxon"},
	}
}

func equipmentItems() []ChecklistItem {
	return []ChecklistItem{
		{Label: "Roue de secours"},
		{Label: "Cric"},
		{Label: "Triangles"},
		{Label: "Trousse secours"},
		{Label: "Docs véhicule"},
	}
}

// ChecklistPreset возвращает JSON-содержимое предустановленного списка.
// Пустое имя дает полный инспекционный лист (безопасность + снаряжение),
// неизвестное — пустой список.
func ChecklistPreset(name string) string {
	var items []ChecklistItem
	switch name {
	case ChecklistSecurity:
		items = securityItems()
	case ChecklistEquipment:
		items = equipmentItems()
	case "":
		items = append(securityItems(), equipmentItems()...)
	default:
		items = []ChecklistItem{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// DefaultLabel возвращает подпись блока для панели свойств
func DefaultLabel(kind Kind) string {
	switch kind {
	case KindStaticText:
		return "Texte Statique"
	case KindBoundText:
		return "Donnée Dynamique"
	case KindLogo:
		return "Logo Agence"
	case KindTable:
		return "Tableau Articles"
	case KindChecklist:
		return "PV Inspection"
	case KindFuelMileage:
		return "Km & Carburant"
	case KindSignatureArea:
		return "Zone Signature"
	case KindDivider:
		return "Ligne / Séparateur"
	case KindQRPlaceholder:
		return "QR Code Sync"
	default:
		return string(kind)
	}
}

func defaultGeometry(kind Kind) Geometry {
	g := Geometry{X: 50, Y: 150, Width: 200, Height: 40}
	switch kind {
	case KindTable, KindDivider:
		g.Width = 500
	case KindChecklist:
		g.Width = 500
		g.Height = 180
	case KindSignatureArea:
		g.Width = 250
		g.Height = 100
	case KindFuelMileage:
		g.Width = 300
		g.Height = 70
	case KindQRPlaceholder:
		g.Width = 70
		g.Height = 70
	case KindLogo:
		g.Width = 140
		g.Height = 60
	}
	if kind == KindDivider {
		g.Height = 2
	}
	return g
}

func defaultStyle() Style {
	return Style{
		FontSize:        12,
		Color:           "#111827",
		BackgroundColor: "transparent",
		FontFamily:      "Inter",
		FontWeight:      "400",
		TextAlign:       "left",
		BorderRadius:    0,
		Padding:         5,
		BorderWidth:     0,
		BorderColor:     "#e5e7eb",
		LineHeight:      1.4,
		Opacity:         1,
		LetterSpacing:   0,
		ZIndex:          10,
	}
}

// NewElement создает элемент заданного вида с геометрией и стилем по
// умолчанию. Seed задает стартовое содержимое: текст для текстовых видов,
// имя пресета или готовый JSON для checklist, подпись для signature-area.
// Пустой seed дает подпись блока в качестве содержимого.
func NewElement(kind Kind, seed string) Element {
	content := seed
	switch kind {
	case KindChecklist:
		if seed == ChecklistSecurity || seed == ChecklistEquipment || seed == "" {
			content = ChecklistPreset(seed)
		}
	case KindTable, KindDivider, KindLogo, KindFuelMileage, KindQRPlaceholder:
		// структурные виды рисуются по виду, содержимое не участвует
		content = ""
	default:
		if content == "" {
			content = DefaultLabel(kind)
		}
	}

	return Element{
		ID:       uuid.New().String(),
		Kind:     kind,
		Label:    DefaultLabel(kind),
		Content:  content,
		Geometry: defaultGeometry(kind),
		Style:    defaultStyle(),
	}
}
