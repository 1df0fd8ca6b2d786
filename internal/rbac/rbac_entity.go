package rbac

import "github.com/fenixfl1/CompuPay/internal/shared/entity"

const (
	MenuTypeGroup   = "group"
	MenuTypeDivider = "divider"
	MenuTypeLink    = "link"
	MenuTypeItem    = "item"
)

type Role struct {
	RoleID        int     `gorm:"primaryKey;autoIncrement"`
	Name          string  `gorm:"type:varchar(25);not null"`
	Description   *string `gorm:"type:varchar(200)"`
	InitUserState string  `gorm:"type:varchar(1);not null;default:'A'"`
	Color         string  `gorm:"type:varchar(7);not null;default:'#000000'"`
	entity.Base
}

func (Role) TableName() string {
	return "roles"
}

type Operation struct {
	OperationID int     `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(50);not null"`
	Description *string `gorm:"type:varchar(100)"`
	entity.Base
}

func (Operation) TableName() string {
	return "operations"
}

type RoleAssignment struct {
	ID     int `gorm:"primaryKey;autoIncrement"`
	RoleID int `gorm:"not null"`
	UserID int `gorm:"not null"`
	entity.Base
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}

type RolePermission struct {
	ID          int `gorm:"primaryKey;autoIncrement"`
	RoleID      int `gorm:"not null"`
	OperationID int `gorm:"not null"`
	entity.Base
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

type MenuOption struct {
	MenuOptionID string  `gorm:"primaryKey;type:varchar(20)"`
	Name         string  `gorm:"type:varchar(100);not null"`
	Description  *string `gorm:"type:varchar(250)"`
	Path         *string `gorm:"type:varchar(100)"`
	Type         string  `gorm:"type:varchar(10);not null;default:'item'"`
	Icon         *string
	Content      *string
	ParentID     *string `gorm:"type:varchar(20)"`
	SortOrder    int     `gorm:"not null"`
	entity.Base
}

func (MenuOption) TableName() string {
	return "menu_options"
}

type MenuOptionRole struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	MenuOptionID string `gorm:"type:varchar(20);not null"`
	RoleID       int    `gorm:"not null"`
	entity.Base
}

func (MenuOptionRole) TableName() string {
	return "menu_option_roles"
}

// UserPermission is a direct grant of one operation to one user. The menu
// options it covers hang off it through OperationMenuOption.
type UserPermission struct {
	UserPermissionID int `gorm:"primaryKey;autoIncrement"`
	OperationID      int `gorm:"not null"`
	UserID           int `gorm:"not null"`
	entity.Base
}

func (UserPermission) TableName() string {
	return "user_permissions"
}

type OperationMenuOption struct {
	ID               int    `gorm:"primaryKey;autoIncrement"`
	UserPermissionID int    `gorm:"not null"`
	MenuOptionID     string `gorm:"type:varchar(20);not null"`
	entity.Base
}

func (OperationMenuOption) TableName() string {
	return "operation_menu_options"
}

type Parameter struct {
	ParameterID int     `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(50);not null"`
	Value       string  `gorm:"not null"`
	Description *string `gorm:"type:varchar(250)"`
	entity.Base
}

func (Parameter) TableName() string {
	return "parameters"
}

type MenuOptionParameter struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	ParameterID  int    `gorm:"not null"`
	MenuOptionID string `gorm:"type:varchar(20);not null"`
	entity.Base
}

func (MenuOptionParameter) TableName() string {
	return "menu_option_parameters"
}

// PolicyRow is one (subject, object, action) triple fed to the enforcer.
// Subject is a role name for role policies and a username for direct grants.
type PolicyRow struct {
	Subject   string
	Path      string
	Operation string
}

type MenuOperationRow struct {
	MenuOptionID string
	OperationID  int
}

type MenuParameterRow struct {
	MenuOptionID string
	Name         string
	Value        string
}

type RoleRow struct {
	Role      `gorm:"embedded"`
	UserCount int64
}

type UserRef struct {
	UserID      int
	Username    string
	IsSuperuser bool
}
