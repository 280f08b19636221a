package types

import "strings"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() string {
	if strings.TrimSpace(r.Email) == "" {
		return "Email is required"
	}
	if r.Password == "" {
		return "Password is required"
	}
	return ""
}

type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

type CreateUserRequest struct {
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Department    string  `json:"department"`
	Designation   string  `json:"designation"`
	JoiningDate   string  `json:"joiningDate"`
	Salary        float64 `json:"salary"`
	BankName      string  `json:"bankName"`
	AccountNumber string  `json:"accountNumber"`
	IFSCCode      string  `json:"ifscCode"`
}

func (r *CreateUserRequest) Validate() string {
	if strings.TrimSpace(r.Username) == "" {
		return "Username is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		return "Email is required"
	}
	if len(r.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	if strings.TrimSpace(r.Role) == "" {
		return "Role is required"
	}
	return ""
}

type UpdateUserRequest struct {
	Username      *string  `json:"username"`
	Email         *string  `json:"email"`
	Password      *string  `json:"password"`
	Role          *string  `json:"role"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	Department    *string  `json:"department"`
	Designation   *string  `json:"designation"`
	Salary        *float64 `json:"salary"`
	BankName      *string  `json:"bankName"`
	AccountNumber *string  `json:"accountNumber"`
	IFSCCode      *string  `json:"ifscCode"`
}
