package recyclebin

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/logger"
	txModel "finoffice/models/transaction"
	"finoffice/types"
)

type RecycleBinController struct {
	db *gorm.DB
}

func NewRecycleBinController(db *gorm.DB) *RecycleBinController {
	return &RecycleBinController{db: db}
}

// GetDeletedTransactions lists the archive, newest deletions first. The
// archive is read-only; there is no restore or purge endpoint.
func (h *RecycleBinController) GetDeletedTransactions(c *fiber.Ctx) error {
	var deleted []txModel.DeletedTransaction
	if err := h.db.Order("deleted_at DESC").Find(&deleted).Error; err != nil {
		logger.Error("Failed to list recycle bin", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve recycle bin",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Recycle bin retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    deleted,
	})
}
