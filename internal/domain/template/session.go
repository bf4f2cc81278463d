package template

import "encoding/json"

// SessionState описывает состояние контроллера взаимодействия
type SessionState int

const (
	StateIdle SessionState = iota
	StateSelected
	StateDragging
	StateEditing
)

// String возвращает имя состояния для логов
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Point — позиция указателя в координатах холста
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type dragInfo struct {
	elementID    string
	pointerStart Point
}

type editInfo struct {
	elementID string
	original  string
}

// EditorSession — явное состояние одной сессии редактирования: шаблон,
// текущее выделение и состояние перетаскивания. Никаких глобальных
// синглтонов; сессия принадлежит одному обработчику событий.
//
// Контроллер однофокусный: одновременно перетаскивается не более одного
// элемента, выделен не более одного элемента.
type EditorSession struct {
	Template   Template
	SelectedID string

	state SessionState
	drag  *dragInfo
	edit  *editInfo
}

// NewSession создает сессию редактирования поверх значения шаблона
func NewSession(t Template) *EditorSession {
	return &EditorSession{Template: t, state: StateIdle}
}

// State возвращает текущее состояние контроллера
func (s *EditorSession) State() SessionState {
	return s.state
}

// PointerDown обрабатывает нажатие указателя. Пустой elementID означает
// щелчок по пустому холсту и снимает выделение. Нажатие на элемент
// атомарно завершает предыдущее перетаскивание, выделяет элемент и
// начинает новое перетаскивание с текущей позиции указателя.
func (s *EditorSession) PointerDown(elementID string, p Point) {
	if s.state == StateDragging {
		s.PointerUp()
	}
	if s.state == StateEditing {
		s.CancelEdit()
	}

	if elementID == "" {
		s.SelectedID = ""
		s.state = StateIdle
		return
	}

	if _, ok := s.Template.FindElement(elementID); !ok {
		s.SelectedID = ""
		s.state = StateIdle
		return
	}

	s.SelectedID = elementID
	s.drag = &dragInfo{elementID: elementID, pointerStart: p}
	s.state = StateDragging
}

// PointerMove смещает перетаскиваемый элемент на дельту указателя.
// Каждое событие перебазирует стартовую точку, так что пропущенные
// события не накапливают дрейф. Позиция ограничивается снизу нулем.
// Обработка одного события — O(1) относительно размера холста.
func (s *EditorSession) PointerMove(p Point) {
	if s.state != StateDragging || s.drag == nil {
		return
	}

	el, ok := s.Template.FindElement(s.drag.elementID)
	if !ok {
		return
	}

	dx := p.X - s.drag.pointerStart.X
	dy := p.Y - s.drag.pointerStart.Y
	newX := el.Geometry.X + dx
	newY := el.Geometry.Y + dy
	if newX < 0 {
		newX = 0
	}
	if newY < 0 {
		newY = 0
	}

	s.Template = UpdateElement(s.Template, s.drag.elementID, ElementPatch{X: &newX, Y: &newY})
	s.drag.pointerStart = p
}

// PointerUp завершает перетаскивание, выделение сохраняется
func (s *EditorSession) PointerUp() {
	if s.state != StateDragging {
		return
	}
	s.drag = nil
	s.state = StateSelected
}

// BeginEdit переводит выделенный элемент в режим редактирования текста.
// Замена блокирующего диалога: содержимое фиксируется на CommitEdit и
// отбрасывается на CancelEdit.
func (s *EditorSession) BeginEdit(elementID string) bool {
	if s.state != StateSelected || s.SelectedID != elementID {
		return false
	}
	el, ok := s.Template.FindElement(elementID)
	if !ok {
		return false
	}
	s.edit = &editInfo{elementID: elementID, original: el.Content}
	s.state = StateEditing
	return true
}

// CommitEdit фиксирует новое содержимое и возвращает сессию в Selected
func (s *EditorSession) CommitEdit(content string) {
	if s.state != StateEditing || s.edit == nil {
		return
	}
	s.Template = UpdateElement(s.Template, s.edit.elementID, ElementPatch{Content: &content})
	s.edit = nil
	s.state = StateSelected
}

// CancelEdit отбрасывает черновик без изменения содержимого
func (s *EditorSession) CancelEdit() {
	if s.state != StateEditing {
		return
	}
	s.edit = nil
	s.state = StateSelected
}

// UpdateSelected применяет изменение из панели свойств к выделенному элементу
func (s *EditorSession) UpdateSelected(patch ElementPatch) {
	if s.SelectedID == "" {
		return
	}
	s.Template = UpdateElement(s.Template, s.SelectedID, patch)
}

// ToggleChecklistItem переключает пункт инспекционного списка по индексу.
// Выделение и состояние контроллера не меняются; остальные пункты
// остаются нетронутыми. Неразбираемое содержимое и индекс вне диапазона
// игнорируются.
func (s *EditorSession) ToggleChecklistItem(elementID string, index int) {
	el, ok := s.Template.FindElement(elementID)
	if !ok || el.Kind != KindChecklist {
		return
	}

	items := DecodeChecklist(el.Content)
	if index < 0 || index >= len(items) {
		return
	}
	items[index].Checked = !items[index].Checked

	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	content := string(data)
	s.Template = UpdateElement(s.Template, elementID, ElementPatch{Content: &content})
}

// DecodeChecklist разбирает содержимое элемента checklist. Неразбираемый
// JSON мягко деградирует в пустой список и никогда не считается ошибкой.
func DecodeChecklist(content string) []ChecklistItem {
	if content == "" {
		return []ChecklistItem{}
	}
	var items []ChecklistItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return []ChecklistItem{}
	}
	if items == nil {
		return []ChecklistItem{}
	}
	return items
}
