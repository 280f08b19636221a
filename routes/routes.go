package routes

import (
	"finoffice/constants"
	"finoffice/controllers/auth"
	"finoffice/controllers/bankaccount"
	"finoffice/controllers/debt"
	"finoffice/controllers/handcash"
	"finoffice/controllers/invoice"
	"finoffice/controllers/recyclebin"
	"finoffice/controllers/salary"
	"finoffice/controllers/stats"
	"finoffice/controllers/transaction"
	"finoffice/logger"
	"finoffice/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires every controller into the app and starts the request log
// drain. The returned logger must be closed on shutdown so queued entries are
// flushed.
func SetupRoutes(app *fiber.App, db *gorm.DB) *logger.AsyncLogger {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	txController := transaction.NewTransactionController(db, asyncLogger)
	bankController := bankaccount.NewBankAccountController(db, asyncLogger)
	handCashController := handcash.NewHandCashController(db, asyncLogger)
	debtController := debt.NewDebtController(db, asyncLogger)
	invoiceController := invoice.NewInvoiceController(db, asyncLogger)
	salaryController := salary.NewSalaryController(db, asyncLogger)
	recycleBinController := recyclebin.NewRecycleBinController(db)
	statsController := stats.NewStatsController(db)

	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP"})
	})

	api := app.Group("/api")

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api.Post("/auth/login", authController.Login)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuth(db))
	authGroup.Post("/create-user", middleware.RequirePermissions(
		constants.PermManageUsers,
	), authController.CreateUser)
	authGroup.Get("/users", middleware.RequirePermissions(
		constants.PermManageUsers,
	), authController.GetUsers)
	authGroup.Put("/users/:id", middleware.RequirePermissions(
		constants.PermManageUsers,
	), authController.UpdateUser)
	authGroup.Delete("/users/:id", middleware.RequirePermissions(
		constants.PermManageUsers,
	), authController.DeleteUser)
	authGroup.Get("/profile", authController.Profile)

	/*=============================================================================
	| Transaction routes (read: view_financials; write: manage_financials)
	===============================================================================*/
	txGroup := api.Group("/transactions").Use(middleware.RequireAuth(db))
	txGroup.Get("/", middleware.RequirePermissions(
		constants.PermViewFinancials,
	), txController.GetTransactions)
	txGroup.Get("/:id", middleware.RequirePermissions(
		constants.PermViewFinancials,
	), txController.GetTransaction)
	txGroup.Post("/", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), txController.CreateTransaction)
	txGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), txController.UpdateTransaction)
	txGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), txController.DeleteTransaction)

	// Receipt access is decided in the handler: financial roles, or the
	// approved requester.
	txGroup.Get("/receipt/:id", txController.DownloadReceipt)

	txGroup.Put("/request-access/:id", middleware.RequirePermissions(
		constants.PermRequestInvoiceAccess,
	), txController.RequestInvoiceAccess)
	txGroup.Put("/approve-access/:id", middleware.RequirePermissions(
		constants.PermApproveInvoiceAccess,
	), txController.ApproveInvoiceAccess)
	txGroup.Put("/revoke-access/:id", middleware.RequirePermissions(
		constants.PermApproveInvoiceAccess,
	), txController.RevokeInvoiceAccess)

	/*=============================================================================
	| Bank account / hand cash / debt routes
	===============================================================================*/
	bankGroup := api.Group("/bank-accounts").Use(middleware.RequireAuth(db))
	bankGroup.Get("/", middleware.RequirePermissions(
		constants.PermViewFinancials,
	), bankController.GetBankAccounts)
	bankGroup.Post("/", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), bankController.CreateBankAccount)
	bankGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), bankController.UpdateBankAccount)
	bankGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), bankController.DeleteBankAccount)

	handCashGroup := api.Group("/hand-cash").Use(middleware.RequireAuth(db))
	handCashGroup.Get("/", middleware.RequirePermissions(
		constants.PermViewFinancials,
	), handCashController.GetHandCash)
	handCashGroup.Post("/", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), handCashController.CreateHandCash)
	handCashGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), handCashController.UpdateHandCash)
	handCashGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), handCashController.DeleteHandCash)

	debtGroup := api.Group("/debts").Use(middleware.RequireAuth(db))
	debtGroup.Get("/", middleware.RequirePermissions(
		constants.PermViewFinancials,
	), debtController.GetDebts)
	debtGroup.Post("/", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), debtController.CreateDebt)
	debtGroup.Put("/mark-paid/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), debtController.MarkPaid)
	debtGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), debtController.UpdateDebt)
	debtGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermManageFinancials,
	), debtController.DeleteDebt)

	/*=============================================================================
	| Invoice routes
	===============================================================================*/
	invoiceGroup := api.Group("/invoices").Use(middleware.RequireAuth(db))
	invoiceGroup.Post("/create", middleware.RequirePermissions(
		constants.PermManageInvoices,
	), invoiceController.CreateInvoice)
	invoiceGroup.Get("/", middleware.RequirePermissions(
		constants.PermViewInvoices,
	), invoiceController.GetInvoices)
	invoiceGroup.Put("/status/:id", middleware.RequirePermissions(
		constants.PermManageInvoices,
	), invoiceController.UpdateStatus)
	invoiceGroup.Put("/request-access/:id", middleware.RequirePermissions(
		constants.PermRequestInvoiceAccess,
	), invoiceController.RequestAccess)
	invoiceGroup.Put("/approve/:id", middleware.RequirePermissions(
		constants.PermApproveInvoiceAccess,
	), invoiceController.ApproveAccess)
	invoiceGroup.Put("/revoke/:id", middleware.RequirePermissions(
		constants.PermApproveInvoiceAccess,
	), invoiceController.RevokeAccess)
	// PDF rendering enforces owner-or-Admin inside the handler.
	invoiceGroup.Get("/view/:id", invoiceController.ViewPDF)
	invoiceGroup.Get("/download/:id", invoiceController.DownloadPDF)
	invoiceGroup.Get("/:id", middleware.RequirePermissions(
		constants.PermViewInvoices,
	), invoiceController.GetInvoice)

	/*=============================================================================
	| Salary routes
	===============================================================================*/
	salaryGroup := api.Group("/salary").Use(middleware.RequireAuth(db))
	salaryGroup.Post("/records", middleware.RequirePermissions(
		constants.PermManageSalaries,
	), salaryController.UpsertRecord)
	salaryGroup.Get("/records", middleware.RequirePermissions(
		constants.PermViewAllSalaries,
	), salaryController.GetStaffRecords)
	salaryGroup.Delete("/records/:id", middleware.RequirePermissions(
		constants.PermManageSalaries,
	), salaryController.DeleteRecord)
	// Any authenticated user, scoped to self.
	salaryGroup.Get("/my-records", salaryController.GetOwnRecords)

	/*=============================================================================
	| Recycle bin and stats
	===============================================================================*/
	api.Get("/recycle-bin", middleware.RequireAuth(db), middleware.RequirePermissions(
		constants.PermViewRecycleBin,
	), recycleBinController.GetDeletedTransactions)

	api.Get("/stats", middleware.RequireAuth(db), middleware.RequirePermissions(
		constants.PermViewReports,
	), statsController.GetDashboardStats)

	return asyncLogger
}
