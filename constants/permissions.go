package constants

// Roles. Every user carries exactly one.
const (
	RoleAdmin      = "Admin"
	RoleAccountant = "Accountant"
	RoleHR         = "HR"
	RoleEmployee   = "Employee"
	RoleAuditor    = "Auditor"
)

// Permission tokens. Routes are guarded by these, never by raw role names,
// so the effective access matrix lives in one table.
const (
	PermManageUsers          = "manage_users"
	PermViewFinancials       = "view_financials"
	PermManageFinancials     = "manage_financials"
	PermViewRecycleBin       = "view_recycle_bin"
	PermViewInvoices         = "view_invoices"
	PermManageInvoices       = "manage_invoices"
	PermRequestInvoiceAccess = "request_invoice_access"
	PermApproveInvoiceAccess = "approve_invoice_access"
	PermViewAllSalaries      = "view_all_salaries"
	PermManageSalaries       = "manage_salaries"
	PermViewReports          = "view_reports"
)

var AllRoles = []string{
	RoleAdmin,
	RoleAccountant,
	RoleHR,
	RoleEmployee,
	RoleAuditor,
}

// DefaultRolePermissions builds the capability table. The service injects the
// result at startup (see main.go); tests may inject a modified copy.
func DefaultRolePermissions() map[string][]string {
	return map[string][]string{
		RoleAdmin: {
			PermManageUsers,
			PermViewFinancials,
			PermManageFinancials,
			PermViewRecycleBin,
			PermViewInvoices,
			PermManageInvoices,
			PermApproveInvoiceAccess,
			PermViewAllSalaries,
			PermManageSalaries,
			PermViewReports,
		},
		RoleAccountant: {
			PermViewFinancials,
			PermManageFinancials,
			PermViewRecycleBin,
			PermViewInvoices,
			PermManageInvoices,
			PermViewReports,
		},
		RoleHR: {
			PermViewFinancials,
			PermViewInvoices,
			PermApproveInvoiceAccess,
			PermViewReports,
		},
		RoleEmployee: {
			PermViewInvoices,
			PermRequestInvoiceAccess,
		},
		RoleAuditor: {
			PermViewFinancials,
			PermViewInvoices,
			PermViewReports,
		},
	}
}

var rolePermissions = DefaultRolePermissions()

// SetRolePermissions replaces the active capability table.
func SetRolePermissions(table map[string][]string) {
	rolePermissions = table
}

// HasPermission reports whether the given role grants the permission token.
// It is a pure lookup: the decision depends on nothing but (role, perm).
func HasPermission(role, perm string) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is one of the fixed enumeration.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
