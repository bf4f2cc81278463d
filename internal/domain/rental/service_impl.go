package rental

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driveflow-docs-go/internal/domain/template"
	"driveflow-docs-go/internal/pkg/logger"
	"driveflow-docs-go/internal/pkg/storage"
	"driveflow-docs-go/internal/pkg/tracing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// storeProfileID — единственная запись профиля агентства
const storeProfileID = "store-profile"

type ServiceImpl struct {
	db *storage.PostgresDB
}

func NewService(db *storage.PostgresDB) Service {
	return &ServiceImpl{db: db}
}

// saveRecord сериализует сущность и сохраняет ее как запись указанного типа
func (s *ServiceImpl) saveRecord(ctx context.Context, id, recordType string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", recordType, err)
	}
	return s.db.SaveRecord(ctx, storage.RecordRow{
		ID:         id,
		RecordType: recordType,
		Body:       body,
	})
}

// loadRecord загружает запись и десериализует ее в v
func (s *ServiceImpl) loadRecord(ctx context.Context, id, recordType string, v interface{}) error {
	row, err := s.db.LoadRecord(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if row.RecordType != recordType {
		return ErrRecordNotFound
	}
	if err := json.Unmarshal(row.Body, v); err != nil {
		logger.Error("failed to decode rental record",
			zap.String("id", id),
			zap.String("record_type", recordType),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s", ErrCorruptRecord, id)
	}
	return nil
}

func (s *ServiceImpl) SaveCustomer(ctx context.Context, c *Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return s.saveRecord(ctx, c.ID, RecordCustomer, c)
}

func (s *ServiceImpl) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var c Customer
	if err := s.loadRecord(ctx, id, RecordCustomer, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ServiceImpl) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.db.ListRecords(ctx, RecordCustomer)
	if err != nil {
		return nil, err
	}
	out := make([]Customer, 0, len(rows))
	for _, row := range rows {
		var c Customer
		if err := json.Unmarshal(row.Body, &c); err != nil {
			logger.Warn("skipping corrupt customer record", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *ServiceImpl) DeleteCustomer(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id)
}

func (s *ServiceImpl) SaveVehicle(ctx context.Context, v *Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return s.saveRecord(ctx, v.ID, RecordVehicle, v)
}

func (s *ServiceImpl) GetVehicle(ctx context.Context, id string) (*Vehicle, error) {
	var v Vehicle
	if err := s.loadRecord(ctx, id, RecordVehicle, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *ServiceImpl) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	rows, err := s.db.ListRecords(ctx, RecordVehicle)
	if err != nil {
		return nil, err
	}
	out := make([]Vehicle, 0, len(rows))
	for _, row := range rows {
		var v Vehicle
		if err := json.Unmarshal(row.Body, &v); err != nil {
			logger.Warn("skipping corrupt vehicle record", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ServiceImpl) DeleteVehicle(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id)
}

func (s *ServiceImpl) SaveReservation(ctx context.Context, r *Reservation) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return s.saveRecord(ctx, r.ID, RecordReservation, r)
}

func (s *ServiceImpl) GetReservation(ctx context.Context, id string) (*Reservation, error) {
	var r Reservation
	if err := s.loadRecord(ctx, id, RecordReservation, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ServiceImpl) ListReservations(ctx context.Context) ([]Reservation, error) {
	rows, err := s.db.ListRecords(ctx, RecordReservation)
	if err != nil {
		return nil, err
	}
	out := make([]Reservation, 0, len(rows))
	for _, row := range rows {
		var r Reservation
		if err := json.Unmarshal(row.Body, &r); err != nil {
			logger.Warn("skipping corrupt reservation record", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *ServiceImpl) DeleteReservation(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id)
}

func (s *ServiceImpl) SaveWorker(ctx context.Context, w *Worker) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return s.saveRecord(ctx, w.ID, RecordWorker, w)
}

func (s *ServiceImpl) GetWorker(ctx context.Context, id string) (*Worker, error) {
	var w Worker
	if err := s.loadRecord(ctx, id, RecordWorker, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *ServiceImpl) ListWorkers(ctx context.Context) ([]Worker, error) {
	rows, err := s.db.ListRecords(ctx, RecordWorker)
	if err != nil {
		return nil, err
	}
	out := make([]Worker, 0, len(rows))
	for _, row := range rows {
		var w Worker
		if err := json.Unmarshal(row.Body, &w); err != nil {
			logger.Warn("skipping corrupt worker record", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *ServiceImpl) DeleteWorker(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id)
}

func (s *ServiceImpl) SaveExpense(ctx context.Context, e *Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return s.saveRecord(ctx, e.ID, RecordExpense, e)
}

func (s *ServiceImpl) GetExpense(ctx context.Context, id string) (*Expense, error) {
	var e Expense
	if err := s.loadRecord(ctx, id, RecordExpense, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ServiceImpl) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := s.db.ListRecords(ctx, RecordExpense)
	if err != nil {
		return nil, err
	}
	out := make([]Expense, 0, len(rows))
	for _, row := range rows {
		var e Expense
		if err := json.Unmarshal(row.Body, &e); err != nil {
			logger.Warn("skipping corrupt expense record", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id)
}

func (s *ServiceImpl) SaveStoreProfile(ctx context.Context, p *StoreProfile) error {
	return s.saveRecord(ctx, storeProfileID, RecordStore, p)
}

func (s *ServiceImpl) GetStoreProfile(ctx context.Context) (*StoreProfile, error) {
	var p StoreProfile
	if err := s.loadRecord(ctx, storeProfileID, RecordStore, &p); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			// Профиль еще не заполнен — возвращаем пустой
			return &StoreProfile{}, nil
		}
		return nil, err
	}
	return &p, nil
}

// BuildDataContext собирает контекст данных для рендеринга по бронированию.
// Момент времени фиксируется здесь, чтобы сам рендеринг оставался чистым.
func (s *ServiceImpl) BuildDataContext(ctx context.Context, reservationID string) (template.DataContext, error) {
	ctx, span := tracing.StartSpan(ctx, "Rental.BuildDataContext")
	defer span.End()

	res, err := s.GetReservation(ctx, reservationID)
	if err != nil {
		return template.DataContext{}, fmt.Errorf("reservation %s: %w", reservationID, err)
	}

	customer, err := s.GetCustomer(ctx, res.CustomerID)
	if err != nil {
		return template.DataContext{}, fmt.Errorf("customer %s: %w", res.CustomerID, err)
	}

	vehicle, err := s.GetVehicle(ctx, res.VehicleID)
	if err != nil {
		return template.DataContext{}, fmt.Errorf("vehicle %s: %w", res.VehicleID, err)
	}

	profile, err := s.GetStoreProfile(ctx)
	if err != nil {
		return template.DataContext{}, err
	}

	return template.DataContext{
		Customer: template.CustomerInfo{
			Name:  customer.Name,
			Phone: customer.Phone,
			Email: customer.Email,
		},
		Vehicle: template.VehicleInfo{
			Brand: vehicle.Brand,
			Model: vehicle.Model,
			Plate: vehicle.Plate,
		},
		Reservation: template.ReservationInfo{
			Number:      res.Number,
			StartDate:   res.StartDate,
			TotalAmount: res.TotalAmount,
			PaidAmount:  res.PaidAmount,
		},
		Store: template.StoreInfo{
			Name:    profile.Name,
			Phone:   profile.Phone,
			Email:   profile.Email,
			Address: profile.Address,
			LogoURL: profile.LogoURL,
		},
		Now: time.Now(),
	}, nil
}

func (s *ServiceImpl) deleteRecord(ctx context.Context, id string) error {
	if err := s.db.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}
