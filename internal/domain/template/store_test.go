package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddElement(t *testing.T) {
	base := Blank(CategoryQuote)

	updated, id := AddElement(base, KindStaticText, "Bonjour")

	assert.Len(t, base.Elements, 0, "original value must stay untouched")
	require.Len(t, updated.Elements, 1)
	assert.Equal(t, id, updated.Elements[0].ID)
	assert.Equal(t, KindStaticText, updated.Elements[0].Kind)
	assert.Equal(t, "Bonjour", updated.Elements[0].Content)
}

func TestAddElement_ChecklistPreset(t *testing.T) {
	base := Blank(CategoryCheckIn)

	updated, id := AddElement(base, KindChecklist, ChecklistSecurity)

	el, ok := updated.FindElement(id)
	require.True(t, ok)
	items := DecodeChecklist(el.Content)
	assert.Len(t, items, 7)
	for _, item := range items {
		assert.False(t, item.Checked)
	}
}

func TestAddElement_ChecklistDefaultSeed(t *testing.T) {
	base := Blank(CategoryCheckIn)

	// пустой seed — путь добавления из панели инструментов: новый список
	// приходит с полным инспекционным листом, а не пустым
	updated, id := AddElement(base, KindChecklist, "")

	el, ok := updated.FindElement(id)
	require.True(t, ok)
	items := DecodeChecklist(el.Content)
	require.Len(t, items, 12)
	assert.Equal(t, "Feux & Phares", items[0].Label)
	assert.Equal(t, "Docs véhicule", items[11].Label)
	for _, item := range items {
		assert.False(t, item.Checked)
	}
}

func TestUpdateElement(t *testing.T) {
	base, id := AddElement(Blank(CategoryQuote), KindStaticText, "avant")

	newContent := "après"
	newX := 120.5
	newSize := 18.0
	updated := UpdateElement(base, id, ElementPatch{
		Content:  &newContent,
		X:        &newX,
		FontSize: &newSize,
	})

	el, ok := updated.FindElement(id)
	require.True(t, ok)
	assert.Equal(t, "après", el.Content)
	assert.Equal(t, 120.5, el.Geometry.X)
	assert.Equal(t, 18.0, el.Style.FontSize)

	// незатронутые патчем поля сохраняются
	assert.Equal(t, defaultGeometry(KindStaticText).Y, el.Geometry.Y)
	assert.Equal(t, defaultStyle().Color, el.Style.Color)

	// исходное значение не изменилось
	orig, _ := base.FindElement(id)
	assert.Equal(t, "avant", orig.Content)
}

func TestUpdateElement_UnknownID(t *testing.T) {
	base, _ := AddElement(Blank(CategoryQuote), KindStaticText, "texte")

	content := "autre"
	updated := UpdateElement(base, "missing", ElementPatch{Content: &content})

	assert.Equal(t, base, updated)
}

func TestRemoveElement(t *testing.T) {
	base, first := AddElement(Blank(CategoryQuote), KindStaticText, "a")
	base, second := AddElement(base, KindDivider, "")

	updated := RemoveElement(base, first)

	assert.Len(t, base.Elements, 2, "original value must stay untouched")
	require.Len(t, updated.Elements, 1)
	assert.Equal(t, second, updated.Elements[0].ID)

	_, ok := updated.FindElement(first)
	assert.False(t, ok)
}

func TestRemoveElement_UnknownID(t *testing.T) {
	base, _ := AddElement(Blank(CategoryQuote), KindStaticText, "texte")

	updated := RemoveElement(base, "missing")

	assert.Equal(t, base, updated)
}

func TestSerializeRoundTrip(t *testing.T) {
	original := Default(CategoryCheckIn, LocaleFR)

	data, err := Serialize(original)
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, original, restored)

	// двойное кодирование checklist сохраняется байт-в-байт
	var checklist Element
	for _, el := range restored.Elements {
		if el.Kind == KindChecklist {
			checklist = el
			break
		}
	}
	require.NotEmpty(t, checklist.ID)
	assert.Equal(t, ChecklistPreset(ChecklistSecurity), checklist.Content)
}

func TestDeserialize_Corrupt(t *testing.T) {
	_, err := Deserialize([]byte("{not json"))
	assert.ErrorIs(t, err, ErrCorruptTemplate)
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       Geometry
		kind    Kind
		wantErr bool
	}{
		{"valid", Geometry{X: 10, Y: 10, Width: 100, Height: 40}, KindStaticText, false},
		{"negative position", Geometry{X: -1, Y: 10, Width: 100, Height: 40}, KindStaticText, true},
		{"zero width", Geometry{X: 10, Y: 10, Width: 0, Height: 40}, KindStaticText, true},
		{"zero height", Geometry{X: 10, Y: 10, Width: 100, Height: 0}, KindStaticText, true},
		{"divider line thickness", Geometry{X: 10, Y: 10, Width: 100, Height: 0}, KindDivider, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate(tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStyleValidate(t *testing.T) {
	valid := defaultStyle()
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Opacity = 1.5
	assert.Error(t, bad.Validate())

	bad = valid
	bad.BorderWidth = -1
	assert.Error(t, bad.Validate())
}
