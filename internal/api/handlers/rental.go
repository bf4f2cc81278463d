package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"driveflow-docs-go/internal/domain/rental"
	"driveflow-docs-go/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type RentalHandler struct {
	service  rental.Service
	validate *validator.Validate
}

func NewRentalHandler(service rental.Service) *RentalHandler {
	return &RentalHandler{
		service:  service,
		validate: validator.New(),
	}
}

// bindAndValidate разбирает JSON тело и проверяет теги validate
func (h *RentalHandler) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request format: %v", err)})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("validation error: %v", err)})
		return false
	}
	return true
}

// respondError отображает ошибки хранилища записей в HTTP статусы
func respondError(c *gin.Context, entity string, err error) {
	if errors.Is(err, rental.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", entity)})
		return
	}
	logger.Error("Record operation failed", zap.String("entity", entity), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to process %s", entity)})
}

// Клиенты

func (h *RentalHandler) SaveCustomer(c *gin.Context) {
	var customer rental.Customer
	if !h.bindAndValidate(c, &customer) {
		return
	}
	if err := h.service.SaveCustomer(c.Request.Context(), &customer); err != nil {
		respondError(c, "customer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *RentalHandler) GetCustomer(c *gin.Context) {
	customer, err := h.service.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "customer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *RentalHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, "customers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *RentalHandler) DeleteCustomer(c *gin.Context) {
	if err := h.service.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "customer", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Автомобили

func (h *RentalHandler) SaveVehicle(c *gin.Context) {
	var vehicle rental.Vehicle
	if !h.bindAndValidate(c, &vehicle) {
		return
	}
	if err := h.service.SaveVehicle(c.Request.Context(), &vehicle); err != nil {
		respondError(c, "vehicle", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (h *RentalHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.service.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "vehicle", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (h *RentalHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, "vehicles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *RentalHandler) DeleteVehicle(c *gin.Context) {
	if err := h.service.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "vehicle", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Бронирования

func (h *RentalHandler) SaveReservation(c *gin.Context) {
	var reservation rental.Reservation
	if !h.bindAndValidate(c, &reservation) {
		return
	}
	if err := h.service.SaveReservation(c.Request.Context(), &reservation); err != nil {
		respondError(c, "reservation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

func (h *RentalHandler) GetReservation(c *gin.Context) {
	reservation, err := h.service.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "reservation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

func (h *RentalHandler) ListReservations(c *gin.Context) {
	reservations, err := h.service.ListReservations(c.Request.Context())
	if err != nil {
		respondError(c, "reservations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func (h *RentalHandler) DeleteReservation(c *gin.Context) {
	if err := h.service.DeleteReservation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "reservation", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Сотрудники

func (h *RentalHandler) SaveWorker(c *gin.Context) {
	var worker rental.Worker
	if !h.bindAndValidate(c, &worker) {
		return
	}
	if err := h.service.SaveWorker(c.Request.Context(), &worker); err != nil {
		respondError(c, "worker", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

func (h *RentalHandler) GetWorker(c *gin.Context) {
	worker, err := h.service.GetWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "worker", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

func (h *RentalHandler) ListWorkers(c *gin.Context) {
	workers, err := h.service.ListWorkers(c.Request.Context())
	if err != nil {
		respondError(c, "workers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

func (h *RentalHandler) DeleteWorker(c *gin.Context) {
	if err := h.service.DeleteWorker(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "worker", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Расходы

func (h *RentalHandler) SaveExpense(c *gin.Context) {
	var expense rental.Expense
	if !h.bindAndValidate(c, &expense) {
		return
	}
	if err := h.service.SaveExpense(c.Request.Context(), &expense); err != nil {
		respondError(c, "expense", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

func (h *RentalHandler) GetExpense(c *gin.Context) {
	expense, err := h.service.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "expense", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

func (h *RentalHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.service.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, "expenses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *RentalHandler) DeleteExpense(c *gin.Context) {
	if err := h.service.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "expense", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Профиль агентства

func (h *RentalHandler) GetStoreProfile(c *gin.Context) {
	profile, err := h.service.GetStoreProfile(c.Request.Context())
	if err != nil {
		respondError(c, "store profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": profile})
}

func (h *RentalHandler) SaveStoreProfile(c *gin.Context) {
	var profile rental.StoreProfile
	if !h.bindAndValidate(c, &profile) {
		return
	}
	if err := h.service.SaveStoreProfile(c.Request.Context(), &profile); err != nil {
		respondError(c, "store profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": profile})
}
