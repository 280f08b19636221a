package bankaccount

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/middleware"
	baModel "finoffice/models/bankaccount"
	"finoffice/types"
)

type BankAccountController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewBankAccountController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BankAccountController {
	return &BankAccountController{db: db, loggerInstance: asyncLogger}
}

func (h *BankAccountController) logRequest(c *fiber.Ctx, status int) {
	var userID *uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = &u.ID
	}
	h.loggerInstance.LogRequest(c, status, userID)
}

func (h *BankAccountController) GetBankAccounts(c *fiber.Ctx) error {
	var accounts []baModel.BankAccount
	if err := h.db.Order("id").Find(&accounts).Error; err != nil {
		logger.Error("Failed to list bank accounts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve bank accounts",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bank accounts retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    accounts,
	})
}

func (h *BankAccountController) CreateBankAccount(c *fiber.Ctx) error {
	var req types.BankAccountRequest
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

	account := baModel.BankAccount{
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		Balance:       req.Balance,
	}
	if err := h.db.Create(&account).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Bank account number already exists",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to create bank account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create bank account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusCreated)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Bank account created successfully",
		Status:  fiber.StatusCreated,
		Data:    account,
	})
}

func (h *BankAccountController) UpdateBankAccount(c *fiber.Ctx) error {
	var existing baModel.BankAccount
	if err := h.db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Bank account not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load bank account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update bank account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var req types.BankAccountRequest
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

	existing.Name = req.Name
	existing.AccountNumber = req.AccountNumber
	existing.BankName = req.BankName
	existing.Balance = req.Balance

	if err := h.db.Save(&existing).Error; err != nil {
		logger.Error("Failed to update bank account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update bank account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bank account updated successfully",
		Status:  fiber.StatusOK,
		Data:    existing,
	})
}

func (h *BankAccountController) DeleteBankAccount(c *fiber.Ctx) error {
	res := h.db.Delete(&baModel.BankAccount{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		logger.Error("Failed to delete bank account", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete bank account",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Bank account not found",
			Status:  fiber.StatusNotFound,
		})
	}
	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bank account deleted successfully",
		Status:  fiber.StatusOK,
	})
}
