package template

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerInfo содержит данные клиента, используемые при подстановке
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// VehicleInfo содержит данные автомобиля
type VehicleInfo struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

// ReservationInfo содержит данные бронирования
type ReservationInfo struct {
	Number      string          `json:"number"`
	StartDate   time.Time       `json:"startDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
}

// StoreInfo содержит реквизиты агентства и ссылку на его логотип
type StoreInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	LogoURL string `json:"logoUrl"`
}

// DataContext — набор бизнес-записей, поставляемый внешним слоем данных
// на момент рендеринга. Ядро его не изменяет и само не загружает.
//
// Now фиксирует момент рендеринга для токена current_date: одинаковый
// вход обязан давать одинаковый результат, поэтому текущее время
// передается снаружи, а не берется внутри.
type DataContext struct {
	Customer    CustomerInfo    `json:"customer"`
	Vehicle     VehicleInfo     `json:"vehicle"`
	Reservation ReservationInfo `json:"reservation"`
	Store       StoreInfo       `json:"store"`
	Now         time.Time       `json:"now"`
}

// RemainingAmount вычисляет остаток к оплате. Значение всегда производное,
// из контекста напрямую не читается.
func (d DataContext) RemainingAmount() decimal.Decimal {
	return d.Reservation.TotalAmount.Sub(d.Reservation.PaidAmount)
}
