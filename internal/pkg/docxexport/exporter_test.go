package docxexport

import (
	"bytes"
	"testing"
	"time"

	"driveflow-docs-go/internal/domain/template"

	"github.com/shopspring/decimal"
)

func testContext() template.DataContext {
	return template.DataContext{
		Customer: template.CustomerInfo{Name: "Karim Benali", Phone: "0550 12 34 56"},
		Vehicle:  template.VehicleInfo{Brand: "Renault", Model: "Clio 5", Plate: "12345-216-16"},
		Reservation: template.ReservationInfo{
			Number:      "RES-2024-001",
			StartDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			TotalAmount: decimal.NewFromInt(75000),
			PaidAmount:  decimal.NewFromInt(50000),
		},
		Store: template.StoreInfo{Name: "DriveFlow Auto", Phone: "021 00 00 00"},
		Now:   time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestExporter_Export(t *testing.T) {
	tpl := template.Default(template.CategoryInvoice, template.LocaleFR)
	ops := template.Render(tpl, testContext(), template.LocaleFR)

	exporter := NewExporter()
	data, err := exporter.Export(tpl, ops)
	if err != nil {
		t.Fatalf("Failed to export DOCX: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected non-empty DOCX content")
	}

	// DOCX файл это ZIP архив
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("Expected DOCX output to be a ZIP archive")
	}
}

func TestExporter_ExportInspection(t *testing.T) {
	tpl := template.Default(template.CategoryCheckIn, template.LocaleFR)
	ops := template.Render(tpl, testContext(), template.LocaleFR)

	exporter := NewExporter()
	data, err := exporter.Export(tpl, ops)
	if err != nil {
		t.Fatalf("Failed to export DOCX: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected non-empty DOCX content")
	}
}
