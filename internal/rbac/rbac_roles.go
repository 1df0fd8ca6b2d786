package rbac

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	rbacerrors "github.com/fenixfl1/CompuPay/internal/rbac/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *service) CreateRole(ctx context.Context, req CreateRoleRequest, actor string) (RoleResponse, error) {
	role := &Role{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		InitUserState: req.InitUserState,
		Color:         req.Color,
	}
	if role.InitUserState == "" {
		role.InitUserState = entity.StateActive
	}
	if role.Color == "" {
		role.Color = "#000000"
	}
	if err := entity.PrepareCreate(&role.Base, actor); err != nil {
		return RoleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RoleResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateRole(ctx, role); err != nil {
		return RoleResponse{}, mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}

	if err := tx.Commit(); err != nil {
		return RoleResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(roleKind, role.RoleID), actor, activitylog.ActionCreate,
		fmt.Sprintf("role %s created", role.Name))

	return mapRoleToResponse(RoleRow{Role: *role}), nil
}

func (s *service) UpdateRole(ctx context.Context, id int, req UpdateRoleRequest, actor string) (RoleResponse, error) {
	raw := req.fields()
	if len(raw) == 0 {
		return RoleResponse{}, rbacerrors.ErrEmptyUpdate
	}

	fields, err := entity.PrepareUpdate(raw, actor)
	if err != nil {
		return RoleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RoleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.UpdateRole(ctx, id, fields); err != nil {
		return RoleResponse{}, mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}
	row, err := qtx.FindRoleByID(ctx, id)
	if err != nil {
		return RoleResponse{}, mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}

	if err := tx.Commit(); err != nil {
		return RoleResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(roleKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("role %s updated", row.Name))

	return mapRoleToResponse(*row), nil
}

func (s *service) GetRole(ctx context.Context, id int) (RoleResponse, error) {
	row, err := s.repo.FindRoleByID(ctx, id)
	if err != nil {
		return RoleResponse{}, mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}
	return mapRoleToResponse(*row), nil
}

func (s *service) ListRoles(ctx context.Context, res filter.Result, page response.Page) ([]RoleResponse, int64, error) {
	rows, total, err := s.repo.FindRolePage(ctx, res, page)
	if err != nil {
		s.logger.Error("list roles failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]RoleResponse, len(rows))
	for i, r := range rows {
		out[i] = mapRoleToResponse(r)
	}
	return out, total, nil
}

func (s *service) SetRolePermissions(ctx context.Context, roleID int, req SetRolePermissionsRequest, actor string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindRoleByID(ctx, roleID)
	if err != nil {
		return mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}
	if err := qtx.SyncRoleOperations(ctx, roleID, uniqueInts(req.OperationIDs), actor); err != nil {
		return mapRepositoryError(err, rbacerrors.ErrOperationNotFound)
	}
	if err := qtx.SyncRoleMenuOptions(ctx, roleID, uniqueStrings(req.MenuOptionIDs), actor); err != nil {
		return mapRepositoryError(err, rbacerrors.ErrMenuOptionNotFound)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(roleKind, roleID), actor, activitylog.ActionUpdate,
		fmt.Sprintf("permissions of role %s replaced", role.Name))
	return nil
}

// assignRoles activates roleIDs for userID. Inactive assignments are
// flipped back to Active so the (role, user) row keeps its id; only roles
// the user never held get a new row.
func (s *service) assignRoles(ctx context.Context, repo Repository, userID int, roleIDs []int, actor string) error {
	ids := uniqueInts(roleIDs)
	if len(ids) == 0 {
		return nil
	}

	n, err := repo.CountActiveRoles(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return rbacerrors.ErrRoleNotFound
	}

	existing, err := repo.FindAssignments(ctx, userID, ids)
	if err != nil {
		return err
	}

	held := make(map[int]RoleAssignment, len(existing))
	for _, a := range existing {
		held[a.RoleID] = a
	}

	var reactivate []int
	var inserts []RoleAssignment
	for _, id := range ids {
		a, ok := held[id]
		switch {
		case !ok:
			row := RoleAssignment{RoleID: id, UserID: userID}
			if err := entity.PrepareCreate(&row.Base, actor); err != nil {
				return err
			}
			inserts = append(inserts, row)
		case !a.IsActive():
			reactivate = append(reactivate, id)
		}
	}

	if len(reactivate) > 0 {
		if err := repo.SetAssignmentsState(ctx, userID, reactivate, entity.StateActive, actor); err != nil {
			return err
		}
	}
	if err := repo.CreateAssignments(ctx, inserts); err != nil {
		return mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}
	return nil
}

func (s *service) AssignRolesTx(ctx context.Context, tx *sql.Tx, userID int, roleIDs []int, actor string) error {
	return s.assignRoles(ctx, s.repo.WithTx(tx), userID, roleIDs, actor)
}

func (s *service) AssignRoles(ctx context.Context, username string, roleIDs []int, actor string) error {
	if len(roleIDs) == 0 {
		return rbacerrors.ErrEmptyRoleList
	}
	return s.withUserTx(ctx, username, actor, "roles assigned", func(qtx Repository, u *UserRef) error {
		return s.assignRoles(ctx, qtx, u.UserID, roleIDs, actor)
	})
}

func (s *service) RemoveRoles(ctx context.Context, username string, roleIDs []int, actor string) error {
	if len(roleIDs) == 0 {
		return rbacerrors.ErrEmptyRoleList
	}
	return s.withUserTx(ctx, username, actor, "roles removed", func(qtx Repository, u *UserRef) error {
		return qtx.SetAssignmentsState(ctx, u.UserID, uniqueInts(roleIDs), entity.StateInactive, actor)
	})
}

// ChangeUserRoles deactivates every role the user holds, then assigns
// roleIDs. An empty list leaves the user without roles.
func (s *service) ChangeUserRoles(ctx context.Context, username string, roleIDs []int, actor string) error {
	return s.withUserTx(ctx, username, actor, "roles changed", func(qtx Repository, u *UserRef) error {
		if err := qtx.SetAssignmentsState(ctx, u.UserID, nil, entity.StateInactive, actor); err != nil {
			return err
		}
		return s.assignRoles(ctx, qtx, u.UserID, roleIDs, actor)
	})
}

func (s *service) ListOperations(ctx context.Context) ([]OperationResponse, error) {
	ops, err := s.repo.ListOperations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OperationResponse, len(ops))
	for i, op := range ops {
		out[i] = OperationResponse{OperationID: op.OperationID, Name: op.Name, Description: op.Description}
	}
	return out, nil
}

// GrantOperation gives the user one operation on the listed menu options,
// replacing the options of an earlier grant of the same operation.
func (s *service) GrantOperation(ctx context.Context, req GrantOperationRequest, actor string) error {
	return s.withUserTx(ctx, req.Username, actor, "operation granted", func(qtx Repository, u *UserRef) error {
		op, err := qtx.FindOperation(ctx, req.OperationID)
		if err != nil {
			return mapRepositoryError(err, rbacerrors.ErrOperationNotFound)
		}

		perm, err := qtx.FindUserPermission(ctx, u.UserID, op.OperationID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			perm = &UserPermission{UserID: u.UserID, OperationID: op.OperationID}
			if err := entity.PrepareCreate(&perm.Base, actor); err != nil {
				return err
			}
			if err := qtx.CreateUserPermission(ctx, perm); err != nil {
				return mapRepositoryError(err, rbacerrors.ErrOperationNotFound)
			}
		case err != nil:
			return err
		case !perm.IsActive():
			if err := qtx.SetUserPermissionState(ctx, perm.UserPermissionID, entity.StateActive, actor); err != nil {
				return err
			}
		}

		if err := qtx.SyncPermissionMenuOptions(ctx, perm.UserPermissionID, uniqueStrings(req.MenuOptionIDs), actor); err != nil {
			return mapRepositoryError(err, rbacerrors.ErrMenuOptionNotFound)
		}
		return nil
	})
}

func (s *service) RevokeOperation(ctx context.Context, req RevokeOperationRequest, actor string) error {
	return s.withUserTx(ctx, req.Username, actor, "operation revoked", func(qtx Repository, u *UserRef) error {
		perm, err := qtx.FindUserPermission(ctx, u.UserID, req.OperationID)
		if err != nil {
			return mapRepositoryError(err, rbacerrors.ErrOperationNotFound)
		}
		if err := qtx.SetUserPermissionState(ctx, perm.UserPermissionID, entity.StateInactive, actor); err != nil {
			return err
		}
		return qtx.SyncPermissionMenuOptions(ctx, perm.UserPermissionID, nil, actor)
	})
}

func (s *service) CreateParameter(ctx context.Context, req CreateParameterRequest, actor string) (ParameterResponse, error) {
	p := &Parameter{
		Name:        strings.TrimSpace(req.Name),
		Value:       req.Value,
		Description: req.Description,
	}
	if err := entity.PrepareCreate(&p.Base, actor); err != nil {
		return ParameterResponse{}, err
	}
	if err := s.repo.CreateParameter(ctx, p); err != nil {
		return ParameterResponse{}, mapRepositoryError(err, rbacerrors.ErrParameterNotFound)
	}
	return mapParameter(*p), nil
}

func (s *service) ListParameters(ctx context.Context) ([]ParameterResponse, error) {
	params, err := s.repo.ListParameters(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ParameterResponse, len(params))
	for i, p := range params {
		out[i] = mapParameter(p)
	}
	return out, nil
}

// withUserTx resolves username and runs fn in a transaction, then records
// an update activity on the user.
func (s *service) withUserTx(ctx context.Context, username, actor, message string, fn func(qtx Repository, u *UserRef) error) error {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx), u); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(userKind, u.UserID), actor, activitylog.ActionUpdate,
		fmt.Sprintf("%s for @%s", message, u.Username))
	return nil
}

func uniqueInts(in []int) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
