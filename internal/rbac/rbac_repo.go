package rbac

import (
	"context"
	"database/sql"
	"time"

	"github.com/fenixfl1/CompuPay/internal/database"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const roleUserCountSelect = `roles.*, (
	SELECT COUNT(*) FROM role_assignments ra
	WHERE ra.role_id = roles.role_id AND ra.state = 'A'
) AS user_count`

var roleColumns = filter.Columns{
	"role_id":     "roles.role_id",
	"name":        "roles.name",
	"description": "roles.description",
	"state":       "roles.state",
	"created_at":  "roles.created_at",
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindUser(ctx context.Context, username string) (*UserRef, error)

	// Policy sources
	FindRoleNames(ctx context.Context, userID int) ([]string, error)
	FindRolePolicies(ctx context.Context, userID int) ([]PolicyRow, error)
	FindGrantPolicies(ctx context.Context, userID int) ([]PolicyRow, error)

	// Roles
	CreateRole(ctx context.Context, role *Role) error
	UpdateRole(ctx context.Context, id int, fields map[string]any) error
	FindRoleByID(ctx context.Context, id int) (*RoleRow, error)
	FindRolePage(ctx context.Context, res filter.Result, page response.Page) ([]RoleRow, int64, error)
	CountActiveRoles(ctx context.Context, ids []int) (int64, error)
	SyncRoleOperations(ctx context.Context, roleID int, operationIDs []int, actor string) error
	SyncRoleMenuOptions(ctx context.Context, roleID int, menuOptionIDs []string, actor string) error

	// Membership
	ActiveRoleIDs(ctx context.Context, userID int) ([]int, error)
	FindAssignments(ctx context.Context, userID int, roleIDs []int) ([]RoleAssignment, error)
	CreateAssignments(ctx context.Context, rows []RoleAssignment) error
	SetAssignmentsState(ctx context.Context, userID int, roleIDs []int, state, actor string) error

	// Operations and direct grants
	ListOperations(ctx context.Context) ([]Operation, error)
	FindOperation(ctx context.Context, id int) (*Operation, error)
	FindUserPermission(ctx context.Context, userID, operationID int) (*UserPermission, error)
	CreateUserPermission(ctx context.Context, perm *UserPermission) error
	SetUserPermissionState(ctx context.Context, id int, state, actor string) error
	SyncPermissionMenuOptions(ctx context.Context, userPermissionID int, menuOptionIDs []string, actor string) error

	// Menu
	FindMenuOption(ctx context.Context, id string) (*MenuOption, error)
	CountSiblings(ctx context.Context, parentID *string, excludeID string) (int64, error)
	SiblingOrderTaken(ctx context.Context, parentID *string, order int, excludeID string) (bool, error)
	CreateMenuOption(ctx context.Context, opt *MenuOption) error
	UpdateMenuOption(ctx context.Context, id string, fields map[string]any) error
	AttachMenuRoles(ctx context.Context, menuOptionID string, roleIDs []int, actor string) error
	AttachMenuParameters(ctx context.Context, menuOptionID string, parameterIDs []int, actor string) error
	FindRootMenuOptions(ctx context.Context, userID int, roleIDs []int) ([]MenuOption, error)
	FindChildMenuOptions(ctx context.Context, parentIDs []string) ([]MenuOption, error)
	FindMenuOperations(ctx context.Context, userID int, menuOptionIDs []string) ([]MenuOperationRow, error)
	FindMenuParameters(ctx context.Context, menuOptionIDs []string) ([]MenuParameterRow, error)

	// Parameters
	CreateParameter(ctx context.Context, p *Parameter) error
	ListParameters(ctx context.Context) ([]Parameter, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.BindTx(r.db, tx)}
}

func (r *repository) FindUser(ctx context.Context, username string) (*UserRef, error) {
	var u UserRef
	err := r.db.WithContext(ctx).
		Table("users").
		Select("user_id, username, is_superuser").
		Where("username = ?", username).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindRoleNames(ctx context.Context, userID int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("role_assignments ra").
		Joins("JOIN roles r ON r.role_id = ra.role_id").
		Where("ra.user_id = ? AND ra.state = ? AND r.state = ?", userID, entity.StateActive, entity.StateActive).
		Order("r.name").
		Pluck("r.name", &names).Error
	return names, err
}

// FindRolePolicies expands the user's active roles into role x operation x
// menu path triples.
func (r *repository) FindRolePolicies(ctx context.Context, userID int) ([]PolicyRow, error) {
	var rows []PolicyRow
	err := r.db.WithContext(ctx).
		Table("role_assignments ra").
		Select("DISTINCT r.name AS subject, m.path AS path, o.name AS operation").
		Joins("JOIN roles r ON r.role_id = ra.role_id AND r.state = 'A'").
		Joins("JOIN role_permissions rp ON rp.role_id = r.role_id AND rp.state = 'A'").
		Joins("JOIN operations o ON o.operation_id = rp.operation_id AND o.state = 'A'").
		Joins("JOIN menu_option_roles mr ON mr.role_id = r.role_id AND mr.state = 'A'").
		Joins("JOIN menu_options m ON m.menu_option_id = mr.menu_option_id AND m.state = 'A'").
		Where("ra.user_id = ? AND ra.state = 'A' AND m.path IS NOT NULL AND m.path <> ''", userID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindGrantPolicies(ctx context.Context, userID int) ([]PolicyRow, error) {
	var rows []PolicyRow
	err := r.db.WithContext(ctx).
		Table("user_permissions up").
		Select("DISTINCT u.username AS subject, m.path AS path, o.name AS operation").
		Joins("JOIN users u ON u.user_id = up.user_id").
		Joins("JOIN operations o ON o.operation_id = up.operation_id AND o.state = 'A'").
		Joins("JOIN operation_menu_options omo ON omo.user_permission_id = up.user_permission_id AND omo.state = 'A'").
		Joins("JOIN menu_options m ON m.menu_option_id = omo.menu_option_id AND m.state = 'A'").
		Where("up.user_id = ? AND up.state = 'A' AND m.path IS NOT NULL AND m.path <> ''", userID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CreateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) UpdateRole(ctx context.Context, id int, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Role{}).
		Where("role_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindRoleByID(ctx context.Context, id int) (*RoleRow, error) {
	var row RoleRow
	err := r.db.WithContext(ctx).
		Model(&Role{}).
		Select(roleUserCountSelect).
		Where("roles.role_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindRolePage(ctx context.Context, res filter.Result, page response.Page) ([]RoleRow, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Role{}), res, roleColumns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var rows []RoleRow
	err = q.Select(roleUserCountSelect).
		Order("roles.name ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) CountActiveRoles(ctx context.Context, ids []int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Role{}).
		Scopes(entity.Active("")).
		Where("role_id IN ?", ids).
		Count(&n).Error
	return n, err
}

// upsertActive inserts rows or flips existing (left, right) pairs back to
// Active. conflict names the unique pair columns.
func (r *repository) upsertActive(ctx context.Context, rows any, conflict []string, actor string) error {
	cols := make([]clause.Column, len(conflict))
	for i, c := range conflict {
		cols[i] = clause.Column{Name: c}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: cols,
			DoUpdates: clause.Assignments(map[string]any{
				"state":      entity.StateActive,
				"updated_at": time.Now(),
				"updated_by": actor,
			}),
		}).
		Create(rows).Error
}

func (r *repository) SyncRoleOperations(ctx context.Context, roleID int, operationIDs []int, actor string) error {
	q := r.db.WithContext(ctx).Model(&RolePermission{}).Where("role_id = ?", roleID)
	if len(operationIDs) > 0 {
		q = q.Where("operation_id NOT IN ?", operationIDs)
	}
	if err := q.Updates(map[string]any{
		"state":      entity.StateInactive,
		"updated_at": time.Now(),
		"updated_by": actor,
	}).Error; err != nil {
		return err
	}
	if len(operationIDs) == 0 {
		return nil
	}

	rows := make([]RolePermission, len(operationIDs))
	for i, id := range operationIDs {
		rows[i] = RolePermission{RoleID: roleID, OperationID: id}
		if err := entity.PrepareCreate(&rows[i].Base, actor); err != nil {
			return err
		}
	}
	return r.upsertActive(ctx, &rows, []string{"role_id", "operation_id"}, actor)
}

func (r *repository) SyncRoleMenuOptions(ctx context.Context, roleID int, menuOptionIDs []string, actor string) error {
	q := r.db.WithContext(ctx).Model(&MenuOptionRole{}).Where("role_id = ?", roleID)
	if len(menuOptionIDs) > 0 {
		q = q.Where("menu_option_id NOT IN ?", menuOptionIDs)
	}
	if err := q.Updates(map[string]any{
		"state":      entity.StateInactive,
		"updated_at": time.Now(),
		"updated_by": actor,
	}).Error; err != nil {
		return err
	}
	if len(menuOptionIDs) == 0 {
		return nil
	}

	rows := make([]MenuOptionRole, len(menuOptionIDs))
	for i, id := range menuOptionIDs {
		rows[i] = MenuOptionRole{RoleID: roleID, MenuOptionID: id}
		if err := entity.PrepareCreate(&rows[i].Base, actor); err != nil {
			return err
		}
	}
	return r.upsertActive(ctx, &rows, []string{"menu_option_id", "role_id"}, actor)
}

func (r *repository) ActiveRoleIDs(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).
		Model(&RoleAssignment{}).
		Scopes(entity.Active("")).
		Where("user_id = ?", userID).
		Order("role_id").
		Pluck("role_id", &ids).Error
	return ids, err
}

func (r *repository) FindAssignments(ctx context.Context, userID int, roleIDs []int) ([]RoleAssignment, error) {
	var rows []RoleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role_id IN ?", userID, roleIDs).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateAssignments(ctx context.Context, rows []RoleAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// SetAssignmentsState updates the user's assignments for roleIDs, or all of
// them when roleIDs is empty.
func (r *repository) SetAssignmentsState(ctx context.Context, userID int, roleIDs []int, state, actor string) error {
	q := r.db.WithContext(ctx).Model(&RoleAssignment{}).Where("user_id = ?", userID)
	if len(roleIDs) > 0 {
		q = q.Where("role_id IN ?", roleIDs)
	}
	return q.Updates(map[string]any{
		"state":      state,
		"updated_at": time.Now(),
		"updated_by": actor,
	}).Error
}

func (r *repository) ListOperations(ctx context.Context) ([]Operation, error) {
	var ops []Operation
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Order("operation_id").
		Find(&ops).Error
	return ops, err
}

func (r *repository) FindOperation(ctx context.Context, id int) (*Operation, error) {
	var op Operation
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("operation_id = ?", id).
		Take(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *repository) FindUserPermission(ctx context.Context, userID, operationID int) (*UserPermission, error) {
	var perm UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND operation_id = ?", userID, operationID).
		Take(&perm).Error
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *repository) CreateUserPermission(ctx context.Context, perm *UserPermission) error {
	return r.db.WithContext(ctx).Create(perm).Error
}

func (r *repository) SetUserPermissionState(ctx context.Context, id int, state, actor string) error {
	return r.db.WithContext(ctx).
		Model(&UserPermission{}).
		Where("user_permission_id = ?", id).
		Updates(map[string]any{
			"state":      state,
			"updated_at": time.Now(),
			"updated_by": actor,
		}).Error
}

func (r *repository) SyncPermissionMenuOptions(ctx context.Context, userPermissionID int, menuOptionIDs []string, actor string) error {
	q := r.db.WithContext(ctx).Model(&OperationMenuOption{}).Where("user_permission_id = ?", userPermissionID)
	if len(menuOptionIDs) > 0 {
		q = q.Where("menu_option_id NOT IN ?", menuOptionIDs)
	}
	if err := q.Updates(map[string]any{
		"state":      entity.StateInactive,
		"updated_at": time.Now(),
		"updated_by": actor,
	}).Error; err != nil {
		return err
	}
	if len(menuOptionIDs) == 0 {
		return nil
	}

	rows := make([]OperationMenuOption, len(menuOptionIDs))
	for i, id := range menuOptionIDs {
		rows[i] = OperationMenuOption{UserPermissionID: userPermissionID, MenuOptionID: id}
		if err := entity.PrepareCreate(&rows[i].Base, actor); err != nil {
			return err
		}
	}
	return r.upsertActive(ctx, &rows, []string{"user_permission_id", "menu_option_id"}, actor)
}

func (r *repository) FindMenuOption(ctx context.Context, id string) (*MenuOption, error) {
	var opt MenuOption
	err := r.db.WithContext(ctx).
		Where("menu_option_id = ?", id).
		Take(&opt).Error
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

func siblingsOf(db *gorm.DB, parentID *string) *gorm.DB {
	if parentID == nil {
		return db.Where("parent_id IS NULL")
	}
	return db.Where("parent_id = ?", *parentID)
}

func (r *repository) CountSiblings(ctx context.Context, parentID *string, excludeID string) (int64, error) {
	q := siblingsOf(r.db.WithContext(ctx).Model(&MenuOption{}), parentID)
	if excludeID != "" {
		q = q.Where("menu_option_id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *repository) SiblingOrderTaken(ctx context.Context, parentID *string, order int, excludeID string) (bool, error) {
	q := siblingsOf(r.db.WithContext(ctx).Model(&MenuOption{}), parentID).
		Where("sort_order = ?", order)
	if excludeID != "" {
		q = q.Where("menu_option_id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) CreateMenuOption(ctx context.Context, opt *MenuOption) error {
	return r.db.WithContext(ctx).Create(opt).Error
}

func (r *repository) UpdateMenuOption(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&MenuOption{}).
		Where("menu_option_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) AttachMenuRoles(ctx context.Context, menuOptionID string, roleIDs []int, actor string) error {
	if len(roleIDs) == 0 {
		return nil
	}
	rows := make([]MenuOptionRole, len(roleIDs))
	for i, id := range roleIDs {
		rows[i] = MenuOptionRole{MenuOptionID: menuOptionID, RoleID: id}
		if err := entity.PrepareCreate(&rows[i].Base, actor); err != nil {
			return err
		}
	}
	return r.upsertActive(ctx, &rows, []string{"menu_option_id", "role_id"}, actor)
}

func (r *repository) AttachMenuParameters(ctx context.Context, menuOptionID string, parameterIDs []int, actor string) error {
	if len(parameterIDs) == 0 {
		return nil
	}
	rows := make([]MenuOptionParameter, len(parameterIDs))
	for i, id := range parameterIDs {
		rows[i] = MenuOptionParameter{MenuOptionID: menuOptionID, ParameterID: id}
		if err := entity.PrepareCreate(&rows[i].Base, actor); err != nil {
			return err
		}
	}
	return r.upsertActive(ctx, &rows, []string{"parameter_id", "menu_option_id"}, actor)
}

// FindRootMenuOptions returns the active top level options the user reaches
// through one of roleIDs or through a direct operation grant.
func (r *repository) FindRootMenuOptions(ctx context.Context, userID int, roleIDs []int) ([]MenuOption, error) {
	db := r.db.WithContext(ctx)

	granted := db.Table("operation_menu_options omo").
		Select("omo.menu_option_id").
		Joins("JOIN user_permissions up ON up.user_permission_id = omo.user_permission_id").
		Where("omo.state = 'A' AND up.state = 'A' AND up.user_id = ?", userID)

	q := db.Model(&MenuOption{}).
		Scopes(entity.Active("menu_options")).
		Where("menu_options.parent_id IS NULL")

	if len(roleIDs) > 0 {
		viaRole := db.Model(&MenuOptionRole{}).
			Select("menu_option_id").
			Where("state = 'A' AND role_id IN ?", roleIDs)
		q = q.Where("menu_options.menu_option_id IN (?) OR menu_options.menu_option_id IN (?)", viaRole, granted)
	} else {
		q = q.Where("menu_options.menu_option_id IN (?)", granted)
	}

	var opts []MenuOption
	err := q.Order("menu_options.sort_order ASC").Find(&opts).Error
	return opts, err
}

func (r *repository) FindChildMenuOptions(ctx context.Context, parentIDs []string) ([]MenuOption, error) {
	var opts []MenuOption
	if len(parentIDs) == 0 {
		return opts, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("parent_id IN ?", parentIDs).
		Order("parent_id, sort_order ASC").
		Find(&opts).Error
	return opts, err
}

func (r *repository) FindMenuOperations(ctx context.Context, userID int, menuOptionIDs []string) ([]MenuOperationRow, error) {
	var rows []MenuOperationRow
	if len(menuOptionIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Table("operation_menu_options omo").
		Select("DISTINCT omo.menu_option_id, up.operation_id").
		Joins("JOIN user_permissions up ON up.user_permission_id = omo.user_permission_id").
		Where("omo.state = 'A' AND up.state = 'A' AND up.user_id = ? AND omo.menu_option_id IN ?", userID, menuOptionIDs).
		Order("up.operation_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindMenuParameters(ctx context.Context, menuOptionIDs []string) ([]MenuParameterRow, error) {
	var rows []MenuParameterRow
	if len(menuOptionIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Table("menu_option_parameters mp").
		Select("mp.menu_option_id, p.name, p.value").
		Joins("JOIN parameters p ON p.parameter_id = mp.parameter_id AND p.state = 'A'").
		Where("mp.state = 'A' AND mp.menu_option_id IN ?", menuOptionIDs).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CreateParameter(ctx context.Context, p *Parameter) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) ListParameters(ctx context.Context) ([]Parameter, error) {
	var params []Parameter
	err := r.db.WithContext(ctx).Order("name").Find(&params).Error
	return params, err
}
