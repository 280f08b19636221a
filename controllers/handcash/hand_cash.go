package handcash

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/middleware"
	hcModel "finoffice/models/handcash"
	"finoffice/types"
)

type HandCashController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewHandCashController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *HandCashController {
	return &HandCashController{db: db, loggerInstance: asyncLogger}
}

func (h *HandCashController) logRequest(c *fiber.Ctx, status int) {
	var userID *uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = &u.ID
	}
	h.loggerInstance.LogRequest(c, status, userID)
}

func (h *HandCashController) GetHandCash(c *fiber.Ctx) error {
	query := h.db.Model(&hcModel.HandCash{})
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if holder := c.Query("holder"); holder != "" {
		query = query.Where("holder = ?", holder)
	}

	var entries []hcModel.HandCash
	if err := query.Order("id").Find(&entries).Error; err != nil {
		logger.Error("Failed to list hand cash entries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve hand cash entries",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Hand cash entries retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    entries,
	})
}

func (h *HandCashController) CreateHandCash(c *fiber.Ctx) error {
	var req types.HandCashRequest
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

	entry := hcModel.HandCash{
		Holder:      req.Holder,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		logger.Error("Failed to create hand cash entry", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create hand cash entry",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusCreated)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Hand cash entry created successfully",
		Status:  fiber.StatusCreated,
		Data:    entry,
	})
}

func (h *HandCashController) UpdateHandCash(c *fiber.Ctx) error {
	var existing hcModel.HandCash
	if err := h.db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Hand cash entry not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load hand cash entry", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update hand cash entry",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var req types.HandCashRequest
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

	existing.Holder = req.Holder
	existing.Amount = req.Amount
	existing.Type = req.Type
	existing.Description = req.Description

	if err := h.db.Save(&existing).Error; err != nil {
		logger.Error("Failed to update hand cash entry", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update hand cash entry",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Hand cash entry updated successfully",
		Status:  fiber.StatusOK,
		Data:    existing,
	})
}

func (h *HandCashController) DeleteHandCash(c *fiber.Ctx) error {
	res := h.db.Delete(&hcModel.HandCash{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		logger.Error("Failed to delete hand cash entry", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete hand cash entry",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Hand cash entry not found",
			Status:  fiber.StatusNotFound,
		})
	}
	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Hand cash entry deleted successfully",
		Status:  fiber.StatusOK,
	})
}
