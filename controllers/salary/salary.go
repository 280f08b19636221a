package salary

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/middleware"
	salaryModel "finoffice/models/salary"
	userModel "finoffice/models/user"
	"finoffice/types"
)

type SalaryController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewSalaryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *SalaryController {
	return &SalaryController{db: db, loggerInstance: asyncLogger}
}

func (h *SalaryController) logRequest(c *fiber.Ctx, status int) {
	var userID *uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = &u.ID
	}
	h.loggerInstance.LogRequest(c, status, userID)
}

// UpsertRecord writes the salary record for (user, month, year). An existing
// record for that key is fully replaced, never merged. NetSalary is always
// recomputed here; paidDate is set exactly when status lands on Paid and
// cleared otherwise. A concurrent insert losing the uniqueness race surfaces
// as an "already exists" conflict.
func (h *SalaryController) UpsertRecord(c *fiber.Ctx) error {
	var req types.SalaryRecordRequest
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

	var target userModel.User
	if err := h.db.First(&target, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load salary user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to save salary record",
			Status:  fiber.StatusInternalServerError,
		})
	}

	status := req.Status
	if status == "" {
		status = "Pending"
	}
	netSalary := req.BasicSalary + req.Bonus - req.Deductions
	u := middleware.CurrentUser(c)

	var record salaryModel.SalaryRecord
	err := h.db.Where("user_id = ? AND month = ? AND year = ?", req.UserID, req.Month, req.Year).
		First(&record).Error
	switch {
	case err == nil:
		// Full replacement of the existing row.
		wasPaid := record.Status == "Paid"
		record.BasicSalary = req.BasicSalary
		record.Bonus = req.Bonus
		record.Deductions = req.Deductions
		record.NetSalary = netSalary
		record.Status = status
		record.Notes = req.Notes
		record.CreatedByID = &u.ID
		if status == "Paid" {
			if !wasPaid || record.PaidDate == nil {
				nowTime := time.Now()
				record.PaidDate = &nowTime
			}
		} else {
			record.PaidDate = nil
		}
		if err := h.db.Save(&record).Error; err != nil {
			logger.Error("Failed to replace salary record", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to save salary record",
				Status:  fiber.StatusInternalServerError,
			})
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = salaryModel.SalaryRecord{
			UserID:      req.UserID,
			Month:       req.Month,
			Year:        req.Year,
			BasicSalary: req.BasicSalary,
			Bonus:       req.Bonus,
			Deductions:  req.Deductions,
			NetSalary:   netSalary,
			Status:      status,
			Notes:       req.Notes,
			CreatedByID: &u.ID,
		}
		if status == "Paid" {
			nowTime := time.Now()
			record.PaidDate = &nowTime
		}
		if err := h.db.Create(&record).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the insert race; the store's constraint decided.
				return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
					Message: "Salary record already exists for this month",
					Status:  fiber.StatusBadRequest,
				})
			}
			logger.Error("Failed to create salary record", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to save salary record",
				Status:  fiber.StatusInternalServerError,
			})
		}
	default:
		logger.Error("Failed to look up salary record", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to save salary record",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Salary record saved successfully",
		Status:  fiber.StatusOK,
		Data:    record,
	})
}

// GetStaffRecords lists salary records across all users. Admin only (routes).
// Optional month/year filters.
func (h *SalaryController) GetStaffRecords(c *fiber.Ctx) error {
	query := h.db.Preload("User")
	if month := c.QueryInt("month"); month >= 1 && month <= 12 {
		query = query.Where("month = ?", month)
	}
	if year := c.QueryInt("year"); year > 0 {
		query = query.Where("year = ?", year)
	}

	var records []salaryModel.SalaryRecord
	if err := query.Order("year DESC, month DESC").Find(&records).Error; err != nil {
		logger.Error("Failed to list salary records", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve salary records",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Salary records retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    records,
	})
}

// GetOwnRecords lists the caller's salary records, regardless of role.
func (h *SalaryController) GetOwnRecords(c *fiber.Ctx) error {
	u := middleware.CurrentUser(c)

	var records []salaryModel.SalaryRecord
	if err := h.db.Where("user_id = ?", u.ID).
		Order("year DESC, month DESC").Find(&records).Error; err != nil {
		logger.Error("Failed to list own salary records", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve salary records",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Salary records retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    records,
	})
}

// DeleteRecord removes a salary record. Admin only (routes).
func (h *SalaryController) DeleteRecord(c *fiber.Ctx) error {
	res := h.db.Delete(&salaryModel.SalaryRecord{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		logger.Error("Failed to delete salary record", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete salary record",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Salary record not found",
			Status:  fiber.StatusNotFound,
		})
	}
	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Salary record deleted successfully",
		Status:  fiber.StatusOK,
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
