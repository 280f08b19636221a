package transaction

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"finoffice/constants"
	"finoffice/logger"
	"finoffice/middleware"
	"finoffice/pdf"
	"finoffice/types"
)

// DownloadReceipt streams the transaction receipt PDF. Financial roles always
// qualify; an employee qualifies only after their access request on this
// transaction has been approved.
func (h *TransactionController) DownloadReceipt(c *fiber.Ctx) error {
	tx, errResp := h.loadForAccess(c)
	if tx == nil {
		return errResp
	}

	u := middleware.CurrentUser(c)
	allowed := constants.HasPermission(u.Role, constants.PermViewFinancials)
	if !allowed && tx.InvoiceAccessApproved &&
		tx.InvoiceAccessRequestedBy != nil && *tx.InvoiceAccessRequestedBy == u.ID {
		allowed = true
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "You are not allowed to view this receipt",
			Status:  fiber.StatusForbidden,
		})
	}

	data, err := pdf.RenderTransactionReceipt(tx)
	if err != nil {
		logger.Error("Failed to render transaction receipt", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to render transaction receipt",
			Status:  fiber.StatusInternalServerError,
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("transaction-%d.pdf", tx.ID)))
	return c.Send(data)
}
