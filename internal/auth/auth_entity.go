package auth

import "github.com/fenixfl1/CompuPay/internal/shared/entity"

// Account is the slice of a user row authentication needs.
type Account struct {
	UserID      int
	Username    string
	Password    string
	Name        string
	LastName    string
	Email       string
	Avatar      *string
	IsStaff     bool
	IsSuperuser bool
	State       string
}

func (Account) TableName() string {
	return "users"
}

// CanLogin mirrors the access rule: staff always, everyone else only while active.
func (a Account) CanLogin() bool {
	return a.IsStaff || a.State == entity.StateActive
}
