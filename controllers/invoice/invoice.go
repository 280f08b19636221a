package invoice

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finoffice/finance"
	"finoffice/logger"
	"finoffice/middleware"
	invModel "finoffice/models/invoice"
	"finoffice/types"
)

type InvoiceController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewInvoiceController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *InvoiceController {
	return &InvoiceController{db: db, loggerInstance: asyncLogger}
}

func (h *InvoiceController) logRequest(c *fiber.Ctx, status int) {
	var userID *uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = &u.ID
	}
	h.loggerInstance.LogRequest(c, status, userID)
}

// nextInvoiceNumber bumps the per-year counter and returns the new number.
// The ensure-then-increment runs inside the caller's transaction: the UPDATE
// row lock serializes concurrent creates, so numbers are unique and
// monotonically increasing within a year.
func nextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&invModel.InvoiceCounter{Year: year, Seq: 0}).Error; err != nil {
		return "", err
	}
	if err := tx.Model(&invModel.InvoiceCounter{}).
		Where("year = ?", year).
		Update("seq", gorm.Expr("seq + 1")).Error; err != nil {
		return "", err
	}
	var counter invModel.InvoiceCounter
	if err := tx.Where("year = ?", year).First(&counter).Error; err != nil {
		return "", err
	}
	return finance.FormatInvoiceNumber(year, counter.Seq), nil
}

// CreateInvoice persists a new invoice. Line totals are taken as sent, but the
// invoice-level figures (subtotal, GST split, grand total) are recomputed
// server-side so the stored document always satisfies
// grandTotal = subtotal - discount + cgst + sgst.
func (h *InvoiceController) CreateInvoice(c *fiber.Ctx) error {
	var req types.CreateInvoiceRequest
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

	items := make([]invModel.InvoiceItem, 0, len(req.Items))
	lineTotals := make([]float64, 0, len(req.Items))
	for _, item := range req.Items {
		total := item.Total
		if total == 0 {
			total = finance.LineTotal(item.Quantity, item.Price)
		}
		items = append(items, invModel.InvoiceItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       total,
		})
		lineTotals = append(lineTotals, total)
	}

	subtotal := finance.Subtotal(lineTotals)
	gstRate := req.GSTRate
	if gstRate == 0 {
		gstRate = 18
	}
	cgst, sgst := finance.GSTSplit(subtotal, gstRate)
	grandTotal := finance.GrandTotal(subtotal, req.Discount, cgst, sgst)

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "Unpaid"
	}

	u := middleware.CurrentUser(c)
	inv := invModel.Invoice{
		OrderRef:      req.OrderRef,
		TransactionID: req.TransactionID,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentStatus,
		Status:        "Active",

		CompanyName:    os.Getenv("COMPANY_NAME"),
		CompanyAddress: os.Getenv("COMPANY_ADDRESS"),
		CompanyPhone:   os.Getenv("COMPANY_PHONE"),
		CompanyEmail:   os.Getenv("COMPANY_EMAIL"),
		CompanyGSTIN:   os.Getenv("COMPANY_GSTIN"),

		CustomerName:    req.Customer.Name,
		CustomerEmail:   req.Customer.Email,
		CustomerPhone:   req.Customer.Phone,
		CustomerAddress: req.Customer.Address,
		CustomerGSTIN:   req.Customer.GSTIN,

		Subtotal:   subtotal,
		Discount:   req.Discount,
		CGST:       cgst,
		SGST:       sgst,
		GrandTotal: grandTotal,

		CreatedByID: &u.ID,
		Items:       items,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		number, err := nextInvoiceNumber(tx, time.Now().Year())
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		return tx.Create(&inv).Error
	})
	if err != nil {
		logger.Error("Failed to create invoice", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create invoice",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusCreated)
	logger.Success("Invoice created: " + inv.InvoiceNumber)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Invoice created successfully",
		Status:  fiber.StatusCreated,
		Data:    inv,
	})
}

// GetInvoices lists invoices, newest first. Optional filters: paymentStatus,
// status, customer email.
func (h *InvoiceController) GetInvoices(c *fiber.Ctx) error {
	query := h.db.Preload("Items")

	if ps := c.Query("paymentStatus"); ps != "" {
		query = query.Where("payment_status = ?", ps)
	}
	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}
	if email := c.Query("customerEmail"); email != "" {
		query = query.Where("customer_email = ?", email)
	}

	var invoices []invModel.Invoice
	if err := query.Order("created_at DESC").Find(&invoices).Error; err != nil {
		logger.Error("Failed to list invoices", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve invoices",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoices retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    invoices,
	})
}

func (h *InvoiceController) loadInvoice(c *fiber.Ctx) (*invModel.Invoice, error) {
	var inv invModel.Invoice
	if err := h.db.Preload("Items").First(&inv, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Invoice not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load invoice", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve invoice",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return &inv, nil
}

func (h *InvoiceController) GetInvoice(c *fiber.Ctx) error {
	inv, errResp := h.loadInvoice(c)
	if inv == nil {
		return errResp
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    inv,
	})
}

// UpdateStatus patches paymentStatus and/or invoice status.
func (h *InvoiceController) UpdateStatus(c *fiber.Ctx) error {
	inv, errResp := h.loadInvoice(c)
	if inv == nil {
		return errResp
	}

	var req types.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
			Error:   err.Error(),
		})
	}

	if req.PaymentStatus != "" {
		if req.PaymentStatus != "Paid" && req.PaymentStatus != "Unpaid" && req.PaymentStatus != "Cancelled" {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Payment status must be Paid, Unpaid or Cancelled",
				Status:  fiber.StatusBadRequest,
			})
		}
		inv.PaymentStatus = req.PaymentStatus
	}
	if req.Status != "" {
		if req.Status != "Active" && req.Status != "Cancelled" {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Status must be Active or Cancelled",
				Status:  fiber.StatusBadRequest,
			})
		}
		inv.Status = req.Status
	}

	if err := h.db.Save(inv).Error; err != nil {
		logger.Error("Failed to update invoice", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update invoice",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Invoice updated successfully",
		Status:  fiber.StatusOK,
		Data:    inv,
	})
}
