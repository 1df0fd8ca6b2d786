package user

import (
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/entity"

	"github.com/shopspring/decimal"
)

const StatePending = "P"

// States a user row may hold. Pending users exist but can not log in.
var States = []string{entity.StateActive, entity.StateInactive, StatePending}

type User struct {
	UserID           int             `gorm:"primaryKey;autoIncrement"`
	Username         string          `gorm:"type:varchar(100);not null"`
	IdentityDocument string          `gorm:"type:varchar(20);not null"`
	DocumentType     string          `gorm:"type:varchar(1);not null"`
	Name             string          `gorm:"type:varchar(100);not null"`
	LastName         string          `gorm:"type:varchar(100);not null"`
	Email            string          `gorm:"type:varchar(100);not null"`
	Password         string          `gorm:"type:varchar(255);not null"`
	Phone            *string         `gorm:"type:varchar(20)"`
	HiredDate        *time.Time      `gorm:"type:date"`
	ContractEnd      *time.Time      `gorm:"type:date"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	Salary           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Gender           *string         `gorm:"type:varchar(1)"`
	BirthDate        *time.Time      `gorm:"type:date"`
	Avatar           *string
	Address          *string
	IsStaff          bool
	IsSuperuser      bool
	IsActive         bool
	SupervisorID     *int
	DepartmentID     *int
	entity.Base
}

func (User) TableName() string {
	return "users"
}

// UserRow is a user joined with the display names of its relations.
type UserRow struct {
	User               `gorm:"embedded"`
	DepartmentName     *string
	SupervisorUsername *string
}

type UserRole struct {
	RoleID int    `json:"role_id"`
	Name   string `json:"name"`
}
