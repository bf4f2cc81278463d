package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithElement(t *testing.T, kind Kind, seed string) (*EditorSession, string) {
	t.Helper()
	tpl, id := AddElement(Blank(CategoryQuote), kind, seed)
	return NewSession(tpl), id
}

func TestSession_SelectAndDrag(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "texte")
	start, _ := s.Template.FindElement(id)

	s.PointerDown(id, Point{X: 100, Y: 100})
	assert.Equal(t, StateDragging, s.State())
	assert.Equal(t, id, s.SelectedID)

	s.PointerMove(Point{X: 110, Y: 95})
	s.PointerMove(Point{X: 130, Y: 90})
	s.PointerUp()

	assert.Equal(t, StateSelected, s.State())
	el, _ := s.Template.FindElement(id)
	assert.Equal(t, start.Geometry.X+30, el.Geometry.X)
	assert.Equal(t, start.Geometry.Y-10, el.Geometry.Y)
}

func TestSession_DragClampsToCanvas(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "texte")

	ten := 10.0
	s.Template = UpdateElement(s.Template, id, ElementPatch{X: &ten, Y: &ten})

	s.PointerDown(id, Point{X: 100, Y: 100})
	s.PointerMove(Point{X: 50, Y: 50})
	s.PointerUp()

	el, _ := s.Template.FindElement(id)
	assert.Equal(t, 0.0, el.Geometry.X)
	assert.Equal(t, 0.0, el.Geometry.Y)
}

func TestSession_MoveRebasesPointer(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "texte")
	start, _ := s.Template.FindElement(id)

	s.PointerDown(id, Point{X: 0, Y: 0})
	// пропущенные события не накапливают дрейф: важна только суммарная дельта
	s.PointerMove(Point{X: 5, Y: 0})
	s.PointerMove(Point{X: 5, Y: 0})
	s.PointerMove(Point{X: 20, Y: 0})
	s.PointerUp()

	el, _ := s.Template.FindElement(id)
	assert.Equal(t, start.Geometry.X+20, el.Geometry.X)
}

func TestSession_PointerDownOnCanvasDeselects(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "texte")

	s.PointerDown(id, Point{X: 100, Y: 100})
	s.PointerUp()
	require.Equal(t, id, s.SelectedID)

	s.PointerDown("", Point{X: 5, Y: 5})
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.SelectedID)
}

func TestSession_PointerDownMidDragFinishesPrevious(t *testing.T) {
	tpl, first := AddElement(Blank(CategoryQuote), KindStaticText, "a")
	tpl, second := AddElement(tpl, KindStaticText, "b")
	s := NewSession(tpl)

	s.PointerDown(first, Point{X: 0, Y: 0})
	// нажатие на другой элемент без PointerUp
	s.PointerDown(second, Point{X: 10, Y: 10})

	assert.Equal(t, StateDragging, s.State())
	assert.Equal(t, second, s.SelectedID)
}

func TestSession_MoveWithoutDragIsNoop(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "texte")
	before := s.Template

	s.PointerMove(Point{X: 500, Y: 500})

	assert.Equal(t, before, s.Template)
	assert.Equal(t, StateIdle, s.State())
	_ = id
}

func TestSession_EditCommit(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "avant")

	s.PointerDown(id, Point{X: 0, Y: 0})
	s.PointerUp()

	require.True(t, s.BeginEdit(id))
	assert.Equal(t, StateEditing, s.State())

	s.CommitEdit("après")
	assert.Equal(t, StateSelected, s.State())

	el, _ := s.Template.FindElement(id)
	assert.Equal(t, "après", el.Content)
}

func TestSession_EditCancelKeepsContent(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "avant")

	s.PointerDown(id, Point{X: 0, Y: 0})
	s.PointerUp()
	require.True(t, s.BeginEdit(id))

	s.CancelEdit()

	assert.Equal(t, StateSelected, s.State())
	el, _ := s.Template.FindElement(id)
	assert.Equal(t, "avant", el.Content)
}

func TestSession_BeginEditRequiresSelection(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "texte")

	assert.False(t, s.BeginEdit(id), "edit must not start from idle")

	s.PointerDown(id, Point{X: 0, Y: 0})
	assert.False(t, s.BeginEdit(id), "edit must not start mid drag")
}

func TestSession_UpdateSelected(t *testing.T) {
	s, id := sessionWithElement(t, KindStaticText, "texte")

	s.PointerDown(id, Point{X: 0, Y: 0})
	s.PointerUp()

	size := 22.0
	s.UpdateSelected(ElementPatch{FontSize: &size})

	el, _ := s.Template.FindElement(id)
	assert.Equal(t, 22.0, el.Style.FontSize)
}

func TestSession_ToggleChecklistItem(t *testing.T) {
	s, id := sessionWithElement(t, KindChecklist, ChecklistSecurity)

	s.ToggleChecklistItem(id, 2)

	el, _ := s.Template.FindElement(id)
	items := DecodeChecklist(el.Content)
	require.Len(t, items, 7)
	assert.True(t, items[2].Checked)
	for i, item := range items {
		if i != 2 {
			assert.False(t, item.Checked)
		}
	}

	// состояние контроллера и выделение не меняются
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.SelectedID)

	s.ToggleChecklistItem(id, 2)
	el, _ = s.Template.FindElement(id)
	assert.False(t, DecodeChecklist(el.Content)[2].Checked)
}

func TestSession_ToggleChecklistItem_OutOfRange(t *testing.T) {
	s, id := sessionWithElement(t, KindChecklist, ChecklistEquipment)
	before := s.Template

	s.ToggleChecklistItem(id, -1)
	s.ToggleChecklistItem(id, 99)

	assert.Equal(t, before, s.Template)
}

func TestDecodeChecklist_Malformed(t *testing.T) {
	assert.Empty(t, DecodeChecklist(""))
	assert.Empty(t, DecodeChecklist("{broken"))
	assert.Empty(t, DecodeChecklist("null"))
}
