package invoice

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"finoffice/logger"
	"finoffice/middleware"
	"finoffice/types"
)

// Same request/approve/revoke state machine as on transactions, carried on the
// invoice's own access flags.

// RequestAccess lets an employee ask to see the invoice PDF. Idempotent.
func (h *InvoiceController) RequestAccess(c *fiber.Ctx) error {
	inv, errResp := h.loadInvoice(c)
	if inv == nil {
		return errResp
	}

	u := middleware.CurrentUser(c)
	// Employees may only request invoices that concern them.
	if inv.CustomerEmail != "" && inv.CustomerEmail != u.Email {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "You can only request access to your own invoices",
			Status:  fiber.StatusForbidden,
		})
	}

	if inv.AccessRequested || inv.AccessApproved {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Invoice access already requested",
			Status:  fiber.StatusOK,
			Data:    inv,
		})
	}

	nowTime := time.Now()
	inv.AccessRequested = true
	inv.AccessRequestedBy = &u.ID
	inv.AccessRequestedAt = &nowTime

	if err := h.db.Save(inv).Error; err != nil {
		logger.Error("Failed to record invoice access request", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to request invoice access",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice access requested",
		Status:  fiber.StatusOK,
		Data:    inv,
	})
}

// ApproveAccess grants a pending request. HR/Admin only (routes).
func (h *InvoiceController) ApproveAccess(c *fiber.Ctx) error {
	inv, errResp := h.loadInvoice(c)
	if inv == nil {
		return errResp
	}

	if !inv.AccessRequested {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "No pending access request for this invoice",
			Status:  fiber.StatusBadRequest,
		})
	}
	if inv.AccessApproved {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Invoice access already approved",
			Status:  fiber.StatusOK,
			Data:    inv,
		})
	}

	u := middleware.CurrentUser(c)
	nowTime := time.Now()
	inv.AccessApproved = true
	inv.AccessApprovedBy = &u.ID
	inv.AccessApprovedAt = &nowTime

	if err := h.db.Save(inv).Error; err != nil {
		logger.Error("Failed to approve invoice access", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to approve invoice access",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice access approved",
		Status:  fiber.StatusOK,
		Data:    inv,
	})
}

// RevokeAccess resets the access flags from any state. Idempotent.
func (h *InvoiceController) RevokeAccess(c *fiber.Ctx) error {
	inv, errResp := h.loadInvoice(c)
	if inv == nil {
		return errResp
	}

	if !inv.AccessRequested && !inv.AccessApproved {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Invoice access already revoked",
			Status:  fiber.StatusOK,
			Data:    inv,
		})
	}

	updates := map[string]interface{}{
		"access_requested":    false,
		"access_requested_by": nil,
		"access_requested_at": nil,
		"access_approved":     false,
		"access_approved_by":  nil,
		"access_approved_at":  nil,
	}
	if err := h.db.Model(inv).Updates(updates).Error; err != nil {
		logger.Error("Failed to revoke invoice access", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to revoke invoice access",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice access revoked",
		Status:  fiber.StatusOK,
		Data:    inv,
	})
}
