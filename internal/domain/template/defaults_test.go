package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlank(t *testing.T) {
	tpl := Blank(CategoryContract)

	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, CategoryContract, tpl.Category)
	assert.Empty(t, tpl.Elements)
	assert.Equal(t, float64(DefaultCanvasWidth), tpl.CanvasWidth)
	assert.Equal(t, float64(DefaultCanvasHeight), tpl.CanvasHeight)
}

func TestDefault_AllCategoriesBothLocales(t *testing.T) {
	for _, category := range AllCategories() {
		for _, locale := range []string{LocaleFR, LocaleAR} {
			tpl := Default(category, locale)

			assert.Equal(t, "tpl-"+string(category)+"-"+locale, tpl.ID)
			assert.Equal(t, category, tpl.Category)
			assert.NotEmpty(t, tpl.Name)
			require.NotEmpty(t, tpl.Elements, "category %s locale %s", category, locale)

			seen := map[string]bool{}
			for _, el := range tpl.Elements {
				assert.True(t, IsAllowedKind(el.Kind))
				assert.False(t, seen[el.ID], "duplicate element id %s", el.ID)
				seen[el.ID] = true
				assert.NoError(t, el.Geometry.Validate(el.Kind))
				assert.NoError(t, el.Style.Validate())
			}
		}
	}
}

func TestDefault_Deterministic(t *testing.T) {
	first := Default(CategoryInvoice, LocaleFR)
	second := Default(CategoryInvoice, LocaleFR)

	assert.Equal(t, first, second)
}

func TestDefault_InspectionHasChecklists(t *testing.T) {
	for _, category := range []Category{CategoryCheckIn, CategoryCheckOut} {
		tpl := Default(category, LocaleFR)

		var checklists, fuel, qr int
		for _, el := range tpl.Elements {
			switch el.Kind {
			case KindChecklist:
				checklists++
				assert.NotEmpty(t, DecodeChecklist(el.Content))
			case KindFuelMileage:
				fuel++
			case KindQRPlaceholder:
				qr++
			}
		}
		assert.Equal(t, 2, checklists, "category %s", category)
		assert.Equal(t, 1, fuel, "category %s", category)
		assert.Equal(t, 1, qr, "category %s", category)
	}
}

func TestDefault_ArabicAlignsRight(t *testing.T) {
	tpl := Default(CategoryContract, LocaleAR)

	var found bool
	for _, el := range tpl.Elements {
		if el.Kind == KindBoundText {
			assert.Equal(t, "right", el.Style.TextAlign)
			found = true
		}
	}
	assert.True(t, found)
}

func TestDefault_ElementsFitCanvas(t *testing.T) {
	for _, category := range AllCategories() {
		tpl := Default(category, LocaleFR)
		for _, el := range tpl.Elements {
			assert.LessOrEqual(t, el.Geometry.X+el.Geometry.Width, float64(DefaultCanvasWidth),
				"element %s of %s overflows horizontally", el.ID, category)
			assert.LessOrEqual(t, el.Geometry.Y+el.Geometry.Height, float64(DefaultCanvasHeight),
				"element %s of %s overflows vertically", el.ID, category)
		}
	}
}
