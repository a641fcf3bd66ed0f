package account

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Table: accounts
type Account struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Login name, unique across all rows; a soft-deleted account still holds it
	Username string `gorm:"column:username;size:64;not null;uniqueIndex:ux_accounts_username" json:"username"`
	// bcrypt hash, never serialized
	PasswordHash string         `gorm:"column:password_hash;size:72;not null" json:"-"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Account) TableName() string { return "accounts" }
