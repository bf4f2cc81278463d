package rental

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Определяем пользовательские ошибки
var (
	ErrRecordNotFound = errors.New("rental record not found")
	ErrCorruptRecord  = errors.New("rental record is corrupt")
)

// Типы записей в хранилище
const (
	RecordCustomer    = "customer"
	RecordVehicle     = "vehicle"
	RecordReservation = "reservation"
	RecordWorker      = "worker"
	RecordExpense     = "expense"
	RecordStore       = "store"
)

// Customer — клиент агентства проката
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	LicenseNumber string `json:"licenseNumber"`
	Address       string `json:"address"`
}

// Vehicle — автомобиль автопарка
type Vehicle struct {
	ID        string          `json:"id"`
	Brand     string          `json:"brand" validate:"required"`
	Model     string          `json:"model" validate:"required"`
	Plate     string          `json:"plate" validate:"required"`
	Year      int             `json:"year"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	Mileage   int64           `json:"mileage"`
	FuelLevel string          `json:"fuelLevel"`
}

// Статусы бронирования
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Reservation — бронирование автомобиля клиентом
type Reservation struct {
	ID          string          `json:"id"`
	Number      string          `json:"number" validate:"required"`
	CustomerID  string          `json:"customerId" validate:"required"`
	VehicleID   string          `json:"vehicleId" validate:"required"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Status      string          `json:"status"`
}

// RemainingAmount возвращает остаток к оплате по бронированию
func (r Reservation) RemainingAmount() decimal.Decimal {
	return r.TotalAmount.Sub(r.PaidAmount)
}

// Worker — сотрудник агентства
type Worker struct {
	ID     string          `json:"id"`
	Name   string          `json:"name" validate:"required"`
	Phone  string          `json:"phone"`
	Role   string          `json:"role"`
	Salary decimal.Decimal `json:"salary"`
}

// Expense — расход агентства
type Expense struct {
	ID     string          `json:"id"`
	Label  string          `json:"label" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`
}

// StoreProfile — реквизиты агентства, попадающие в документы
type StoreProfile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	LogoURL string `json:"logoUrl"`
}
