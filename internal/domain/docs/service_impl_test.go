package docs

import (
	"testing"
	"time"

	"driveflow-docs-go/internal/domain/template"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewDataContext(now time.Time) template.DataContext {
	return template.DataContext{
		Customer: template.CustomerInfo{Name: "Karim Benali", Phone: "0550 12 34 56"},
		Vehicle:  template.VehicleInfo{Brand: "Renault", Model: "Clio 5", Plate: "12345-116-31"},
		Reservation: template.ReservationInfo{
			Number:      "RES-2024-0042",
			StartDate:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			TotalAmount: decimal.NewFromInt(75000),
			PaidAmount:  decimal.NewFromInt(50000),
		},
		Store: template.StoreInfo{Name: "DriveFlow Oran"},
		Now:   now,
	}
}

func TestPreviewKey_StableAcrossRequests(t *testing.T) {
	// два запроса печати одного бронирования несут разный Now,
	// но обязаны попадать в одну запись кэша
	first, err := previewKey("tpl-invoice-fr", "fr", previewDataContext(time.Now()))
	require.NoError(t, err)
	second, err := previewKey("tpl-invoice-fr", "fr", previewDataContext(time.Now().Add(3*time.Second)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPreviewKey_DistinguishesInputs(t *testing.T) {
	now := time.Now()
	base, err := previewKey("tpl-invoice-fr", "fr", previewDataContext(now))
	require.NoError(t, err)

	otherTemplate, err := previewKey("tpl-quote-fr", "fr", previewDataContext(now))
	require.NoError(t, err)
	assert.NotEqual(t, base, otherTemplate)

	otherLocale, err := previewKey("tpl-invoice-fr", "ar", previewDataContext(now))
	require.NoError(t, err)
	assert.NotEqual(t, base, otherLocale)

	otherData := previewDataContext(now)
	otherData.Customer.Name = "Amine Cherif"
	otherKey, err := previewKey("tpl-invoice-fr", "fr", otherData)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherKey)
}
