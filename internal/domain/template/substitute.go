package template

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LocaleFR и LocaleAR — поддерживаемые локали документов
const (
	LocaleFR = "fr"
	LocaleAR = "ar"
)

// FormatAmount форматирует денежную сумму как целое число с группировкой
// разрядов пробелом: 75000 -> "75 000". Формат зафиксирован предметной
// областью (суммы в динарах без дробной части).
func FormatAmount(d decimal.Decimal) string {
	s := d.Truncate(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// Substitute заменяет все распознанные токены вида {{name}} значениями из
// контекста данных. Нераспознанные токены остаются в тексте как есть:
// испорченный шаблон деградирует видимо, а не теряет содержимое молча.
//
// Подстановка идемпотентна: подставленные значения сами не содержат "{{",
// поэтому повторный вызов ничего не меняет.
func Substitute(content string, ctx DataContext, locale string) string {
	if !strings.Contains(content, "{{") {
		return content
	}

	dateLayout := "02/01/2006"
	if locale == LocaleAR {
		dateLayout = "2006/01/02"
	}

	resDate := ""
	if !ctx.Reservation.StartDate.IsZero() {
		resDate = ctx.Reservation.StartDate.Format(dateLayout)
	}
	currentDate := ""
	if !ctx.Now.IsZero() {
		currentDate = ctx.Now.Format(dateLayout)
	}

	r := strings.NewReplacer(
		"{{client_name}}", ctx.Customer.Name,
		"{{client_phone}}", ctx.Customer.Phone,
		"{{client_email}}", ctx.Customer.Email,
		"{{vehicle_brand}}", ctx.Vehicle.Brand,
		"{{vehicle_model}}", ctx.Vehicle.Model,
		"{{vehicle_plate}}", ctx.Vehicle.Plate,
		"{{res_number}}", ctx.Reservation.Number,
		"{{res_date}}", resDate,
		"{{total_amount}}", FormatAmount(ctx.Reservation.TotalAmount),
		"{{paid_amount}}", FormatAmount(ctx.Reservation.PaidAmount),
		"{{remaining_amount}}", FormatAmount(ctx.RemainingAmount()),
		"{{store_name}}", ctx.Store.Name,
		"{{store_phone}}", ctx.Store.Phone,
		"{{store_email}}", ctx.Store.Email,
		"{{store_address}}", ctx.Store.Address,
		"{{current_date}}", currentDate,
	)
	return r.Replace(content)
}
