package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/constants"
	"finoffice/logger"
	"finoffice/middleware"
	"finoffice/models/user"
	"finoffice/types"
	"finoffice/utils"
)

type AuthController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, loggerInstance: asyncLogger}
}

func (h *AuthController) logRequest(c *fiber.Ctx, status int) {
	var userID *uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = &u.ID
	}
	h.loggerInstance.LogRequest(c, status, userID)
}

// Login validates credentials and returns a fresh bearer token. Unknown email
// and wrong password answer with distinct statuses, mirroring the dashboard's
// error banners.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
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

	var u user.User
	if err := h.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "Access denied. Contact Admin.",
				Status:  fiber.StatusForbidden,
			})
		}
		logger.Error("Login user lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !u.CheckPassword(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid Credentials",
			Status:  fiber.StatusBadRequest,
		})
	}

	token, err := utils.GenerateToken(u.ID)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.logRequest(c, fiber.StatusOK)
	logger.Success("User logged in: " + u.Email)
	return c.Status(fiber.StatusOK).JSON(types.LoginResponse{
		Token:    token,
		Role:     u.Role,
		Username: u.Username,
	})
}

// CreateUser is the only way new users come into existence; there is no
// self-registration. Admin only (guarded in routes).
func (h *AuthController) CreateUser(c *fiber.Ctx) error {
	var req types.CreateUserRequest
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
	if !constants.IsValidRole(req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Unknown role: " + req.Role,
			Status:  fiber.StatusBadRequest,
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !inOrgDomain(email) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Email must belong to the organization domain",
			Status:  fiber.StatusBadRequest,
		})
	}

	newUser := user.User{
		Username:      strings.TrimSpace(req.Username),
		Email:         email,
		Password:      req.Password,
		Role:          req.Role,
		Phone:         req.Phone,
		Address:       req.Address,
		Department:    req.Department,
		Designation:   req.Designation,
		Salary:        req.Salary,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
	}
	if req.JoiningDate != "" {
		if t, err := utils.ParseDate(req.JoiningDate); err == nil {
			newUser.JoiningDate = &t
		}
	}

	if err := h.db.Create(&newUser).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Username or email already exists",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create user",
			Status:  fiber.StatusInternalServerError,
		})
	}
	newUser.Password = ""

	h.logRequest(c, fiber.StatusCreated)
	logger.Success("User created: " + newUser.Email + " (" + newUser.Role + ")")
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "User created successfully",
		Status:  fiber.StatusCreated,
		Data:    newUser,
	})
}

// GetUsers lists all users without password hashes. Admin only.
func (h *AuthController) GetUsers(c *fiber.Ctx) error {
	var users []user.User
	if err := h.db.Omit("password").Order("id").Find(&users).Error; err != nil {
		logger.Error("Failed to list users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to retrieve users",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Users retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    users,
	})
}

// Profile returns the requesting identity.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	u := middleware.CurrentUser(c)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    u,
	})
}

// UpdateUser patches the given user. The password is re-hashed iff a new one
// is supplied; it is never touched otherwise.
func (h *AuthController) UpdateUser(c *fiber.Ctx) error {
	var existing user.User
	if err := h.db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var req types.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
			Error:   err.Error(),
		})
	}

	if req.Username != nil {
		existing.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		// Invoice PDF access keys off the email; an out-of-domain address
		// must not slip in through the update path either.
		if !inOrgDomain(email) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Email must belong to the organization domain",
				Status:  fiber.StatusBadRequest,
			})
		}
		existing.Email = email
	}
	if req.Role != nil {
		if !constants.IsValidRole(*req.Role) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Unknown role: " + *req.Role,
				Status:  fiber.StatusBadRequest,
			})
		}
		existing.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Password must be at least 6 characters",
				Status:  fiber.StatusBadRequest,
			})
		}
		existing.Password = *req.Password
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.Department != nil {
		existing.Department = *req.Department
	}
	if req.Designation != nil {
		existing.Designation = *req.Designation
	}
	if req.Salary != nil {
		existing.Salary = *req.Salary
	}
	if req.BankName != nil {
		existing.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		existing.AccountNumber = *req.AccountNumber
	}
	if req.IFSCCode != nil {
		existing.IFSCCode = *req.IFSCCode
	}

	if err := h.db.Save(&existing).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Username or email already exists",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to update user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update user",
			Status:  fiber.StatusInternalServerError,
		})
	}
	existing.Password = ""

	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "User updated successfully",
		Status:  fiber.StatusOK,
		Data:    existing,
	})
}

// DeleteUser removes a user record. Admin only.
func (h *AuthController) DeleteUser(c *fiber.Ctx) error {
	res := h.db.Delete(&user.User{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		logger.Error("Failed to delete user", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete user",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	}
	h.logRequest(c, fiber.StatusOK)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "User deleted successfully",
		Status:  fiber.StatusOK,
	})
}

// inOrgDomain reports whether the email sits inside ORG_EMAIL_DOMAIN. An
// unset domain disables the check.
func inOrgDomain(email string) bool {
	domain := os.Getenv("ORG_EMAIL_DOMAIN")
	return domain == "" || strings.HasSuffix(email, "@"+strings.TrimPrefix(domain, "@"))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
