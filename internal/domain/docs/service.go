package docs

import (
	"context"

	"driveflow-docs-go/internal/domain/template"
	"driveflow-docs-go/internal/pkg/circuitbreaker"
)

// StoredTemplate — шаблон вместе с локалью, под которую он сверстан
type StoredTemplate struct {
	Template template.Template `json:"template"`
	Locale   string            `json:"locale"`
}

type Service interface {
	ListTemplates(ctx context.Context, category string) ([]StoredTemplate, error)
	GetTemplate(ctx context.Context, id string) (*StoredTemplate, error)
	SaveTemplate(ctx context.Context, t template.Template, locale string) error
	DeleteTemplate(ctx context.Context, id string) error

	// SeedDefaults записывает стандартные шаблоны всех категорий, не
	// перезаписывая уже сохраненные
	SeedDefaults(ctx context.Context) error

	Render(ctx context.Context, id string, data template.DataContext) ([]template.DrawOp, error)
	Print(ctx context.Context, id string, data template.DataContext) ([]byte, error)
	ExportDocx(ctx context.Context, id string, data template.DataContext) ([]byte, error)

	RendererState() circuitbreaker.State
	IsRendererHealthy() bool
}
