package user

import (
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/steps"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateUserRequest struct {
	Username         string          `json:"username" binding:"required,max=100"`
	IdentityDocument string          `json:"identity_document" binding:"required,max=20"`
	DocumentType     string          `json:"document_type" binding:"omitempty,oneof=C P"`
	Name             string          `json:"name" binding:"required,max=100"`
	LastName         string          `json:"last_name" binding:"required,max=100"`
	Email            string          `json:"email" binding:"required,email,max=100"`
	Password         string          `json:"password" binding:"required,min=8"`
	Phone            *string         `json:"phone" binding:"omitempty,max=20"`
	HiredDate        *string         `json:"hired_date" binding:"omitempty,datetime=2006-01-02"`
	ContractEnd      *string         `json:"contract_end" binding:"omitempty,datetime=2006-01-02"`
	BirthDate        *string         `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Currency         string          `json:"currency" binding:"omitempty,len=3"`
	Salary           decimal.Decimal `json:"salary"`
	Gender           *string         `json:"gender" binding:"omitempty,oneof=M F"`
	Address          *string         `json:"address"`
	IsStaff          bool            `json:"is_staff"`
	Supervisor       *string         `json:"supervisor"`
	DepartmentID     *int            `json:"department_id"`
	Roles            []int           `json:"roles"`
	Deductions       []int           `json:"deductions"`
}

type UpdateUserRequest struct {
	Username         *string          `json:"username"`
	IdentityDocument *string          `json:"identity_document"`
	Name             *string          `json:"name" binding:"omitempty,max=100"`
	LastName         *string          `json:"last_name" binding:"omitempty,max=100"`
	Email            *string          `json:"email" binding:"omitempty,email,max=100"`
	Phone            *string          `json:"phone" binding:"omitempty,max=20"`
	HiredDate        *string          `json:"hired_date" binding:"omitempty,datetime=2006-01-02"`
	ContractEnd      *string          `json:"contract_end" binding:"omitempty,datetime=2006-01-02"`
	BirthDate        *string          `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Currency         *string          `json:"currency" binding:"omitempty,len=3"`
	Salary           *decimal.Decimal `json:"salary"`
	Gender           *string          `json:"gender" binding:"omitempty,oneof=M F"`
	Address          *string          `json:"address"`
	IsStaff          *bool            `json:"is_staff"`
	Supervisor       *string          `json:"supervisor"`
	DepartmentID     *int             `json:"department_id"`
	State            *string          `json:"state"`
	Roles            []int            `json:"roles"`
	Deductions       []int            `json:"deductions"`
}

type ChangeStateRequest struct {
	State string `json:"state" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateAvatarRequest struct {
	Avatar *string `json:"avatar"`
}

type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type CheckIdentityDocumentRequest struct {
	IdentityDocument string `json:"identity_document" binding:"required"`
}

type UserResponse struct {
	UserID           int             `json:"user_id"`
	Username         string          `json:"username"`
	IdentityDocument string          `json:"identity_document"`
	DocumentType     string          `json:"document_type"`
	Name             string          `json:"name"`
	LastName         string          `json:"last_name"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	Phone            *string         `json:"phone"`
	HiredDate        *string         `json:"hired_date"`
	ContractEnd      *string         `json:"contract_end"`
	BirthDate        *string         `json:"birth_date"`
	Currency         string          `json:"currency"`
	Salary           decimal.Decimal `json:"salary"`
	Gender           *string         `json:"gender"`
	Avatar           *string         `json:"avatar"`
	Address          *string         `json:"address"`
	IsStaff          bool            `json:"is_staff"`
	IsSuperuser      bool            `json:"is_superuser"`
	Supervisor       *string         `json:"supervisor"`
	DepartmentID     *int            `json:"department_id"`
	Department       *string         `json:"department"`
	Roles            []UserRole      `json:"roles,omitempty"`
	State            string          `json:"state"`
	CreatedAt        time.Time       `json:"created_at"`
	CreatedBy        string          `json:"created_by"`
}

type UpdateUserResult struct {
	User  UserResponse `json:"user"`
	Steps steps.List   `json:"steps"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapToResponse(r UserRow, roles []UserRole) UserResponse {
	return UserResponse{
		UserID:           r.UserID,
		Username:         r.Username,
		IdentityDocument: r.IdentityDocument,
		DocumentType:     r.DocumentType,
		Name:             r.Name,
		LastName:         r.LastName,
		FullName:         r.Name + " " + r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		HiredDate:        formatDate(r.HiredDate),
		ContractEnd:      formatDate(r.ContractEnd),
		BirthDate:        formatDate(r.BirthDate),
		Currency:         r.Currency,
		Salary:           r.Salary,
		Gender:           r.Gender,
		Avatar:           r.Avatar,
		Address:          r.Address,
		IsStaff:          r.IsStaff,
		IsSuperuser:      r.IsSuperuser,
		Supervisor:       r.SupervisorUsername,
		DepartmentID:     r.DepartmentID,
		Department:       r.DepartmentName,
		Roles:            roles,
		State:            r.State,
		CreatedAt:        r.CreatedAt,
		CreatedBy:        r.CreatedBy,
	}
}
