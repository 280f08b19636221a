package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string  `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email    string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Role     string  `gorm:"size:50;index;not null" json:"role"`
	Phone    string  `gorm:"size:50" json:"phone"`
	Address  string  `gorm:"size:512" json:"address"`

	Department  string     `gorm:"size:255;index" json:"department"`
	Designation string     `gorm:"size:255" json:"designation"`
	JoiningDate *time.Time `json:"joiningDate,omitempty"`
	Salary      float64    `gorm:"type:decimal(12,2);default:0.00" json:"salary"`

	BankName      string `gorm:"size:255" json:"bankName"`
	AccountNumber string `gorm:"size:50" json:"accountNumber"`
	IFSCCode      string `gorm:"size:20" json:"ifscCode"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

// BeforeSave hashes Password whenever the field changed. Already-hashed values
// pass through untouched so reads never get double hashed on save.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" || isBcryptHash(u.Password) {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword compares a candidate plaintext against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (s[:4] == "$2a$" || s[:4] == "$2b$" || s[:4] == "$2y$")
}
