package transaction

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/middleware"
	txModel "finoffice/models/transaction"
	"finoffice/types"
	"finoffice/utils"
)

type TransactionController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewTransactionController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TransactionController {
	return &TransactionController{db: db, loggerInstance: asyncLogger}
}

func (h *TransactionController) logRequest(c *fiber.Ctx, status int) {
	var userID *uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = &u.ID
	}
	h.loggerInstance.LogRequest(c, status, userID)
}

// GetTransactions lists transactions with optional filters: type, category,
// date range (from/to) or month+year.
func (h *TransactionController) GetTransactions(c *fiber.Ctx) error {
	query := h.db.Model(&txModel.Transaction{})

	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	if from := c.Query("from"); from != "" {
		t, err := utils.ParseDate(from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid from date",
				Status:  fiber.StatusBadRequest,
			})
		}
		query = query.Where("date >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := utils.ParseDate(to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid to date",
				Status:  fiber.StatusBadRequest,
			})
		}
		query = query.Where("date <= ?", t)
	}
	if month := c.QueryInt("month"); month >= 1 && month <= 12 {
		year := c.QueryInt("year", time.Now().Year())
		anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		start := now.With(anchor).BeginningOfMonth()
		end := now.With(anchor).EndOfMonth()
		query = query.Where("date BETWEEN ? AND ?", start, end)
	}

	var transactions []txModel.Transaction
	if err := query.Order("date DESC").Find(&transactions).Error; err != nil {
		logger.Error("Failed to list transactions", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve transactions",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Transactions retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    transactions,
	})
}

func (h *TransactionController) GetTransaction(c *fiber.Ctx) error {
	var tx txModel.Transaction
	if err := h.db.First(&tx, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Transaction not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load transaction", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve transaction",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Transaction retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    tx,
	})
}

// CreateTransaction validates and persists a new entry. Date defaults to now
// when omitted.
func (h *TransactionController) CreateTransaction(c *fiber.Ctx) error {
	var req types.TransactionRequest
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

	date := time.Now()
	if req.Date != "" {
		parsed, err := utils.ParseDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid date",
				Status:  fiber.StatusBadRequest,
			})
		}
		date = parsed
	}

	tx := txModel.Transaction{
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		BankAccountID: req.BankAccountID,
		HandCashID:    req.HandCashID,
		Date:          date,
	}
	if err := h.db.Create(&tx).Error; err != nil {
		logger.Error("Failed to create transaction", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create transaction",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusCreated)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Transaction created successfully",
		Status:  fiber.StatusCreated,
		Data:    tx,
	})
}

func (h *TransactionController) UpdateTransaction(c *fiber.Ctx) error {
	var existing txModel.Transaction
	if err := h.db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Transaction not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load transaction", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update transaction",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var req types.TransactionRequest
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

	existing.Description = req.Description
	existing.Amount = req.Amount
	existing.Type = req.Type
	existing.Category = req.Category
	existing.PaymentMethod = req.PaymentMethod
	existing.BankAccountID = req.BankAccountID
	existing.HandCashID = req.HandCashID
	if req.Date != "" {
		parsed, err := utils.ParseDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid date",
				Status:  fiber.StatusBadRequest,
			})
		}
		existing.Date = parsed
	}

	if err := h.db.Save(&existing).Error; err != nil {
		logger.Error("Failed to update transaction", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update transaction",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Transaction updated successfully",
		Status:  fiber.StatusOK,
		Data:    existing,
	})
}

// DeleteTransaction removes the row and copies it into the recycle bin. The
// archive write happens first; if it fails the failure is logged as a warning
// and the delete still goes through.
func (h *TransactionController) DeleteTransaction(c *fiber.Ctx) error {
	var existing txModel.Transaction
	if err := h.db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Transaction not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load transaction", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete transaction",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var deletedBy *uint
	if u := middleware.CurrentUser(c); u != nil {
		deletedBy = &u.ID
	}
	snapshot := txModel.DeletedTransaction{
		OriginalID:    existing.ID,
		Description:   existing.Description,
		Amount:        existing.Amount,
		Type:          existing.Type,
		Category:      existing.Category,
		PaymentMethod: existing.PaymentMethod,
		Date:          existing.Date,
		DeletedBy:     deletedBy,
		DeletedAt:     time.Now(),
	}
	if err := h.db.Create(&snapshot).Error; err != nil {
		logger.Warning("Failed to archive deleted transaction, deleting anyway: " + err.Error())
	}

	if err := h.db.Delete(&txModel.Transaction{}, existing.ID).Error; err != nil {
		logger.Error("Failed to delete transaction", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete transaction",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Transaction deleted successfully",
		Status:  fiber.StatusOK,
	})
}
