package debt

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/middleware"
	debtModel "finoffice/models/debt"
	"finoffice/types"
	"finoffice/utils"
)

type DebtController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewDebtController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *DebtController {
	return &DebtController{db: db, loggerInstance: asyncLogger}
}

func (h *DebtController) logRequest(c *fiber.Ctx, status int) {
	var userID *uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = &u.ID
	}
	h.loggerInstance.LogRequest(c, status, userID)
}

func (h *DebtController) GetDebts(c *fiber.Ctx) error {
	query := h.db.Model(&debtModel.Debt{})
	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}

	var debts []debtModel.Debt
	if err := query.Order("due_date").Find(&debts).Error; err != nil {
		logger.Error("Failed to list debts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve debts",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Debts retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    debts,
	})
}

func (h *DebtController) CreateDebt(c *fiber.Ctx) error {
	var req types.DebtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
			Error:   err.Error(),
		})
	}
	if v := req.Validate(); v != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: v,
			Status:  fiber.StatusBadRequest,
		})
	}

	status := req.Status
	if status == "" {
		status = "Pending"
	}
	d := debtModel.Debt{
		Debtor:      req.Debtor,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      status,
	}
	if req.DueDate != "" {
		due, err := utils.ParseDate(req.DueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid due date",
				Status:  fiber.StatusBadRequest,
			})
		}
		d.DueDate = &due
	}

	if err := h.db.Create(&d).Error; err != nil {
		logger.Error("Failed to create debt", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create debt",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusCreated)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Debt created successfully",
		Status:  fiber.StatusCreated,
		Data:    d,
	})
}

func (h *DebtController) UpdateDebt(c *fiber.Ctx) error {
	var existing debtModel.Debt
	if err := h.db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Debt not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load debt", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update debt",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var req types.DebtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
			Error:   err.Error(),
		})
	}
	if v := req.Validate(); v != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: v,
			Status:  fiber.StatusBadRequest,
		})
	}

	existing.Debtor = req.Debtor
	existing.Amount = req.Amount
	existing.Description = req.Description
	if req.Status != "" {
		existing.Status = req.Status
	}
	if req.DueDate != "" {
		due, err := utils.ParseDate(req.DueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid due date",
				Status:  fiber.StatusBadRequest,
			})
		}
		existing.DueDate = &due
	}

	if err := h.db.Save(&existing).Error; err != nil {
		logger.Error("Failed to update debt", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update debt",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Debt updated successfully",
		Status:  fiber.StatusOK,
		Data:    existing,
	})
}

// MarkPaid flips a debt to Paid. Already-paid debts pass through unchanged.
func (h *DebtController) MarkPaid(c *fiber.Ctx) error {
	var existing debtModel.Debt
	if err := h.db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Debt not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load debt", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update debt",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if existing.Status != "Paid" {
		existing.Status = "Paid"
		nowTime := time.Now()
		existing.UpdatedAt = &nowTime
		if err := h.db.Save(&existing).Error; err != nil {
			logger.Error("Failed to mark debt paid", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to update debt",
				Status:  fiber.StatusInternalServerError,
			})
		}
		h.logRequest(c, fiber.StatusOK)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Debt marked as paid",
		Status:  fiber.StatusOK,
		Data:    existing,
	})
}

func (h *DebtController) DeleteDebt(c *fiber.Ctx) error {
	res := h.db.Delete(&debtModel.Debt{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		logger.Error("Failed to delete debt", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete debt",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Debt not found",
			Status:  fiber.StatusNotFound,
		})
	}
	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Debt deleted successfully",
		Status:  fiber.StatusOK,
	})
}
