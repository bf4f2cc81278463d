package rental

import (
	"context"

	"driveflow-docs-go/internal/domain/template"
)

type Service interface {
	SaveCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	SaveVehicle(ctx context.Context, v *Vehicle) error
	GetVehicle(ctx context.Context, id string) (*Vehicle, error)
	ListVehicles(ctx context.Context) ([]Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	SaveReservation(ctx context.Context, r *Reservation) error
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	ListReservations(ctx context.Context) ([]Reservation, error)
	DeleteReservation(ctx context.Context, id string) error

	SaveWorker(ctx context.Context, w *Worker) error
	GetWorker(ctx context.Context, id string) (*Worker, error)
	ListWorkers(ctx context.Context) ([]Worker, error)
	DeleteWorker(ctx context.Context, id string) error

	SaveExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id string) (*Expense, error)
	ListExpenses(ctx context.Context) ([]Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	SaveStoreProfile(ctx context.Context, p *StoreProfile) error
	GetStoreProfile(ctx context.Context) (*StoreProfile, error)

	// BuildDataContext собирает контекст данных для рендеринга документов
	// по бронированию
	BuildDataContext(ctx context.Context, reservationID string) (template.DataContext, error)
}
