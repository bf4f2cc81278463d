package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeHTML(t *testing.T) {
	tpl := Default(CategoryInvoice, LocaleFR)
	ops := Render(tpl, testDataContext(), LocaleFR)

	page := ComposeHTML(tpl, ops)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "@page{size:595pt 842pt;margin:0}")
	assert.Contains(t, page, "Karim Benali")
	assert.Contains(t, page, "75 000 DZ")
	assert.Contains(t, page, "Désignation")
}

func TestComposeHTML_Deterministic(t *testing.T) {
	tpl := Default(CategoryCheckIn, LocaleFR)
	ctx := testDataContext()

	first := ComposeHTML(tpl, Render(tpl, ctx, LocaleFR))
	second := ComposeHTML(tpl, Render(tpl, ctx, LocaleFR))

	assert.Equal(t, first, second)
}

func TestComposeHTML_EscapesContent(t *testing.T) {
	tpl, _ := AddElement(Blank(CategoryQuote), KindStaticText, "<script>alert(1)</script>\nligne 2")

	page := ComposeHTML(tpl, Render(tpl, testDataContext(), LocaleFR))

	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "&lt;script&gt;")
	assert.Contains(t, page, "ligne 2")
	assert.Contains(t, page, "<br>")
}

func TestComposeHTML_LogoImage(t *testing.T) {
	tpl, _ := AddElement(Blank(CategoryQuote), KindLogo, "")
	ctx := testDataContext()
	ctx.Store.LogoURL = "https://cdn.example.dz/logo.png"

	page := ComposeHTML(tpl, Render(tpl, ctx, LocaleFR))

	assert.Contains(t, page, "<img src=\"https://cdn.example.dz/logo.png\"")
}

func TestComposeHTML_ChecklistMarks(t *testing.T) {
	tpl, id := AddElement(Blank(CategoryCheckIn), KindChecklist, ChecklistSecurity)

	s := NewSession(tpl)
	s.ToggleChecklistItem(id, 0)

	page := ComposeHTML(s.Template, Render(s.Template, testDataContext(), LocaleFR))

	assert.Contains(t, page, "☑")
	assert.Contains(t, page, "☐")
}
