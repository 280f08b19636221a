package transaction

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/middleware"
	txModel "finoffice/models/transaction"
	"finoffice/types"
)

// Invoice-access workflow on transactions. States: NoAccess -> Requested ->
// Approved, with revoke collapsing either state straight back to NoAccess.
// Request and revoke are idempotent; approve requires a pending request.

func (h *TransactionController) loadForAccess(c *fiber.Ctx) (*txModel.Transaction, error) {
	var tx txModel.Transaction
	if err := h.db.First(&tx, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Transaction not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load transaction", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to load transaction",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return &tx, nil
}

// RequestInvoiceAccess marks the transaction as access-requested on behalf of
// the caller. Re-requesting while Requested or Approved is a no-op.
func (h *TransactionController) RequestInvoiceAccess(c *fiber.Ctx) error {
	tx, errResp := h.loadForAccess(c)
	if tx == nil {
		return errResp
	}

	if tx.InvoiceAccessRequested || tx.InvoiceAccessApproved {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Invoice access already requested",
			Status:  fiber.StatusOK,
			Data:    tx,
		})
	}

	u := middleware.CurrentUser(c)
	nowTime := time.Now()
	tx.InvoiceAccessRequested = true
	tx.InvoiceAccessRequestedBy = &u.ID
	tx.InvoiceAccessRequestedAt = &nowTime

	if err := h.db.Save(tx).Error; err != nil {
		logger.Error("Failed to record access request", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to request invoice access",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice access requested",
		Status:  fiber.StatusOK,
		Data:    tx,
	})
}

// ApproveInvoiceAccess grants a pending request. HR/Admin only (routes).
func (h *TransactionController) ApproveInvoiceAccess(c *fiber.Ctx) error {
	tx, errResp := h.loadForAccess(c)
	if tx == nil {
		return errResp
	}

	if !tx.InvoiceAccessRequested {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "No pending access request for this transaction",
			Status:  fiber.StatusBadRequest,
		})
	}
	if tx.InvoiceAccessApproved {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Invoice access already approved",
			Status:  fiber.StatusOK,
			Data:    tx,
		})
	}

	u := middleware.CurrentUser(c)
	nowTime := time.Now()
	tx.InvoiceAccessApproved = true
	tx.InvoiceAccessApprovedBy = &u.ID
	tx.InvoiceAccessApprovedAt = &nowTime

	if err := h.db.Save(tx).Error; err != nil {
		logger.Error("Failed to approve access request", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to approve invoice access",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice access approved",
		Status:  fiber.StatusOK,
		Data:    tx,
	})
}

// RevokeInvoiceAccess resets the flags to NoAccess from any state. Revoking a
// transaction already in NoAccess changes nothing.
func (h *TransactionController) RevokeInvoiceAccess(c *fiber.Ctx) error {
	tx, errResp := h.loadForAccess(c)
	if tx == nil {
		return errResp
	}

	if !tx.InvoiceAccessRequested && !tx.InvoiceAccessApproved {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Invoice access already revoked",
			Status:  fiber.StatusOK,
			Data:    tx,
		})
	}

	updates := map[string]interface{}{
		"invoice_access_requested":    false,
		"invoice_access_requested_by": nil,
		"invoice_access_requested_at": nil,
		"invoice_access_approved":     false,
		"invoice_access_approved_by":  nil,
		"invoice_access_approved_at":  nil,
	}
	if err := h.db.Model(tx).Updates(updates).Error; err != nil {
		logger.Error("Failed to revoke access", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to revoke invoice access",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice access revoked",
		Status:  fiber.StatusOK,
		Data:    tx,
	})
}
