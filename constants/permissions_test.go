package constants

import "testing"

// The guard decision must be a pure function of (role, permission).
func TestAccessMatrix(t *testing.T) {
	cases := []struct {
		role string
		perm string
		want bool
	}{
		{RoleAdmin, PermManageUsers, true},
		{RoleAdmin, PermManageSalaries, true},
		{RoleAdmin, PermRequestInvoiceAccess, false},
		{RoleAccountant, PermManageFinancials, true},
		{RoleAccountant, PermViewRecycleBin, true},
		{RoleAccountant, PermManageUsers, false},
		{RoleAccountant, PermApproveInvoiceAccess, false},
		{RoleHR, PermViewFinancials, true},
		{RoleHR, PermApproveInvoiceAccess, true},
		{RoleHR, PermManageFinancials, false},
		{RoleHR, PermViewAllSalaries, false},
		{RoleEmployee, PermRequestInvoiceAccess, true},
		{RoleEmployee, PermViewInvoices, true},
		{RoleEmployee, PermViewFinancials, false},
		{RoleEmployee, PermApproveInvoiceAccess, false},
		{RoleAuditor, PermViewFinancials, true},
		{RoleAuditor, PermViewReports, true},
		{RoleAuditor, PermManageFinancials, false},
	}
	for _, tc := range cases {
		if got := HasPermission(tc.role, tc.perm); got != tc.want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	for _, perm := range []string{PermManageUsers, PermViewFinancials, PermViewInvoices} {
		if HasPermission("Intern", perm) {
			t.Errorf("unknown role granted %s", perm)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range AllRoles {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%s) = false", role)
		}
	}
	if IsValidRole("admin") {
		t.Error("role names are case sensitive; 'admin' should be invalid")
	}
}

func TestInjectedTableReplacesDefaults(t *testing.T) {
	defer SetRolePermissions(DefaultRolePermissions())

	SetRolePermissions(map[string][]string{
		RoleAuditor: {PermManageFinancials},
	})
	if !HasPermission(RoleAuditor, PermManageFinancials) {
		t.Error("injected table not consulted")
	}
	if HasPermission(RoleAdmin, PermManageUsers) {
		t.Error("defaults leaked through injected table")
	}
}
