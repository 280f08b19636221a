package invoice

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"finoffice/constants"
	"finoffice/logger"
	"finoffice/middleware"
	invModel "finoffice/models/invoice"
	"finoffice/pdf"
	"finoffice/types"
)

// canViewPDF: the invoice's customer (matched by email) or an Admin. Everyone
// else gets 403 regardless of the access-request flags; an approved request is
// how an employee's email ends up matching in the dashboard flow.
func canViewPDF(inv *invModel.Invoice, c *fiber.Ctx) bool {
	u := middleware.CurrentUser(c)
	if u == nil {
		return false
	}
	if u.Role == constants.RoleAdmin {
		return true
	}
	return inv.CustomerEmail != "" && inv.CustomerEmail == u.Email
}

func (h *InvoiceController) renderPDF(c *fiber.Ctx, inline bool) error {
	inv, errResp := h.loadInvoice(c)
	if inv == nil {
		return errResp
	}

	if !canViewPDF(inv, c) {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "You are not allowed to view this invoice",
			Status:  fiber.StatusForbidden,
		})
	}

	data, err := pdf.RenderInvoice(inv)
	if err != nil {
		logger.Error("Failed to render invoice PDF", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to render invoice PDF",
			Status:  fiber.StatusInternalServerError,
		})
	}

	filename := fmt.Sprintf("invoice-%d.pdf", inv.ID)
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, filename))
	return c.Send(data)
}

// ViewPDF streams the invoice PDF inline.
func (h *InvoiceController) ViewPDF(c *fiber.Ctx) error {
	return h.renderPDF(c, true)
}

// DownloadPDF streams the invoice PDF as an attachment.
func (h *InvoiceController) DownloadPDF(c *fiber.Ctx) error {
	return h.renderPDF(c, false)
}
