package stats

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/models/bankaccount"
	"finoffice/models/debt"
	"finoffice/models/handcash"
	"finoffice/models/invoice"
	txModel "finoffice/models/transaction"
	"finoffice/types"
)

type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

type categoryTotal struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
}

// GetDashboardStats aggregates the figures the dashboard cards show: overall
// and current-month income/expense, per-category breakdown, bank and hand
// cash balances, pending debt and open invoice counts.
func (h *StatsController) GetDashboardStats(c *fiber.Ctx) error {
	var totalIncome, totalExpense float64
	if err := h.sumTransactions("Income", nil, nil, &totalIncome); err != nil {
		return h.fail(c, err)
	}
	if err := h.sumTransactions("Expense", nil, nil, &totalExpense); err != nil {
		return h.fail(c, err)
	}

	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()
	var monthIncome, monthExpense float64
	if err := h.sumTransactions("Income", &monthStart, &monthEnd, &monthIncome); err != nil {
		return h.fail(c, err)
	}
	if err := h.sumTransactions("Expense", &monthStart, &monthEnd, &monthExpense); err != nil {
		return h.fail(c, err)
	}

	var byCategory []categoryTotal
	if err := h.db.Model(&txModel.Transaction{}).
		Select("category, type, COALESCE(SUM(amount), 0) AS total").
		Group("category, type").
		Order("total DESC").
		Scan(&byCategory).Error; err != nil {
		return h.fail(c, err)
	}

	var bankBalance float64
	if err := h.db.Model(&bankaccount.BankAccount{}).
		Select("COALESCE(SUM(balance), 0)").Scan(&bankBalance).Error; err != nil {
		return h.fail(c, err)
	}

	var handCashIn, handCashOut float64
	if err := h.db.Model(&handcash.HandCash{}).Where("type = ?", "Income").
		Select("COALESCE(SUM(amount), 0)").Scan(&handCashIn).Error; err != nil {
		return h.fail(c, err)
	}
	if err := h.db.Model(&handcash.HandCash{}).Where("type = ?", "Expense").
		Select("COALESCE(SUM(amount), 0)").Scan(&handCashOut).Error; err != nil {
		return h.fail(c, err)
	}

	var pendingDebts int64
	if err := h.db.Model(&debt.Debt{}).Where("status = ?", "Pending").
		Count(&pendingDebts).Error; err != nil {
		return h.fail(c, err)
	}
	var pendingDebtAmount float64
	if err := h.db.Model(&debt.Debt{}).Where("status = ?", "Pending").
		Select("COALESCE(SUM(amount), 0)").Scan(&pendingDebtAmount).Error; err != nil {
		return h.fail(c, err)
	}

	var unpaidInvoices int64
	if err := h.db.Model(&invoice.Invoice{}).
		Where("payment_status = ? AND status = ?", "Unpaid", "Active").
		Count(&unpaidInvoices).Error; err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Stats retrieved successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"totalIncome":       totalIncome,
			"totalExpense":      totalExpense,
			"netBalance":        totalIncome - totalExpense,
			"monthIncome":       monthIncome,
			"monthExpense":      monthExpense,
			"byCategory":        byCategory,
			"bankBalance":       bankBalance,
			"handCashBalance":   handCashIn - handCashOut,
			"pendingDebts":      pendingDebts,
			"pendingDebtAmount": pendingDebtAmount,
			"unpaidInvoices":    unpaidInvoices,
		},
	})
}

func (h *StatsController) sumTransactions(txType string, from, to *time.Time, out *float64) error {
	query := h.db.Model(&txModel.Transaction{}).Where("type = ?", txType)
	if from != nil && to != nil {
		query = query.Where("date BETWEEN ? AND ?", *from, *to)
	}
	return query.Select("COALESCE(SUM(amount), 0)").Scan(out).Error
}

func (h *StatsController) fail(c *fiber.Ctx, err error) error {
	logger.Error("Failed to compute stats", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
		Message: "Failed to retrieve stats",
		Status:  fiber.StatusInternalServerError,
	})
}
