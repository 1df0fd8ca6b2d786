package rbac

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	rbacerrors "github.com/fenixfl1/CompuPay/internal/rbac/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
)

const (
	menuCounterScope = "menu_option"
	menuRootKey      = "root"
)

func validMenuType(t string) bool {
	switch t {
	case MenuTypeGroup, MenuTypeDivider, MenuTypeLink, MenuTypeItem:
		return true
	}
	return false
}

func (s *service) ActiveRoleIDs(ctx context.Context, username string) ([]int, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repo.ActiveRoleIDs(ctx, u.UserID)
}

// MenuOptions returns the user's top level menu with every descendant
// attached.
func (s *service) MenuOptions(ctx context.Context, username string) ([]MenuOptionResponse, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	roleIDs, err := s.repo.ActiveRoleIDs(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	roots, err := s.repo.FindRootMenuOptions(ctx, u.UserID, roleIDs)
	if err != nil {
		return nil, err
	}
	return s.buildTree(ctx, u.UserID, roots)
}

func (s *service) MenuChildren(ctx context.Context, username, parentID string) ([]MenuOptionResponse, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindMenuOption(ctx, parentID); err != nil {
		return nil, mapRepositoryError(err, rbacerrors.ErrMenuOptionNotFound)
	}
	children, err := s.repo.FindChildMenuOptions(ctx, []string{parentID})
	if err != nil {
		return nil, err
	}
	return s.buildTree(ctx, u.UserID, children)
}

// buildTree loads the descendants of roots one level at a time, then
// decorates every node with the user's operations and the option
// parameters before nesting children under their parents.
func (s *service) buildTree(ctx context.Context, userID int, roots []MenuOption) ([]MenuOptionResponse, error) {
	out := make([]MenuOptionResponse, 0, len(roots))
	if len(roots) == 0 {
		return out, nil
	}

	all := append([]MenuOption{}, roots...)
	seen := make(map[string]bool, len(roots))
	level := make([]string, 0, len(roots))
	for _, r := range roots {
		seen[r.MenuOptionID] = true
		level = append(level, r.MenuOptionID)
	}

	for len(level) > 0 {
		children, err := s.repo.FindChildMenuOptions(ctx, level)
		if err != nil {
			return nil, err
		}
		var next []string
		for _, c := range children {
			if seen[c.MenuOptionID] {
				continue
			}
			seen[c.MenuOptionID] = true
			all = append(all, c)
			next = append(next, c.MenuOptionID)
		}
		level = next
	}

	ids := make([]string, len(all))
	nodes := make(map[string]*MenuOptionResponse, len(all))
	byParent := make(map[string][]string)
	for i, m := range all {
		ids[i] = m.MenuOptionID
		node := mapMenuOption(m)
		nodes[m.MenuOptionID] = &node
		if m.ParentID != nil {
			byParent[*m.ParentID] = append(byParent[*m.ParentID], m.MenuOptionID)
		}
	}

	ops, err := s.repo.FindMenuOperations(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		if n, ok := nodes[op.MenuOptionID]; ok {
			n.Operations = append(n.Operations, op.OperationID)
		}
	}

	params, err := s.repo.FindMenuParameters(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range params {
		if n, ok := nodes[p.MenuOptionID]; ok {
			n.Parameters[p.Name] = p.Value
		}
	}

	var assemble func(id string) MenuOptionResponse
	assemble = func(id string) MenuOptionResponse {
		n := *nodes[id]
		for _, childID := range byParent[id] {
			n.Children = append(n.Children, assemble(childID))
		}
		return n
	}

	for _, r := range roots {
		out = append(out, assemble(r.MenuOptionID))
	}
	return out, nil
}

// checkOrder enforces that order lies in [0, siblings] and that no other
// sibling holds it.
func checkOrder(ctx context.Context, repo Repository, parentID *string, order int, siblings int64, excludeID string) error {
	if order < 0 || int64(order) > siblings {
		return rbacerrors.ErrMenuOrderOutOfRange
	}
	taken, err := repo.SiblingOrderTaken(ctx, parentID, order, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return rbacerrors.ErrMenuOrderTaken
	}
	return nil
}

// nextMenuOptionID numbers roots "1", "2", ... and children
// "{parent}-1", "{parent}-2", ... The counter is seeded with the current
// sibling count so existing rows are never reissued.
func (s *service) nextMenuOptionID(ctx context.Context, parentID *string, siblings int64) (string, error) {
	key := menuRootKey
	if parentID != nil {
		key = *parentID
	}
	n, err := s.counter.NextValue(ctx, menuCounterScope, key, siblings)
	if err != nil {
		return "", err
	}
	if parentID == nil {
		return strconv.FormatInt(n, 10), nil
	}
	return fmt.Sprintf("%s-%d", *parentID, n), nil
}

func (s *service) CreateMenuOption(ctx context.Context, req CreateMenuOptionRequest, actor string) (MenuOptionResponse, error) {
	menuType := strings.ToLower(strings.TrimSpace(req.Type))
	if menuType == "" {
		menuType = MenuTypeItem
	}
	if !validMenuType(menuType) {
		return MenuOptionResponse{}, rbacerrors.ErrInvalidMenuType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MenuOptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.ParentID != nil {
		if _, err := qtx.FindMenuOption(ctx, *req.ParentID); err != nil {
			return MenuOptionResponse{}, mapRepositoryError(err, rbacerrors.ErrParentMenuOptionNotFound)
		}
	}

	siblings, err := qtx.CountSiblings(ctx, req.ParentID, "")
	if err != nil {
		return MenuOptionResponse{}, err
	}
	if err := checkOrder(ctx, qtx, req.ParentID, *req.Order, siblings, ""); err != nil {
		return MenuOptionResponse{}, err
	}

	var id string
	if req.MenuOptionID != nil && strings.TrimSpace(*req.MenuOptionID) != "" {
		id = strings.TrimSpace(*req.MenuOptionID)
	} else {
		id, err = s.nextMenuOptionID(ctx, req.ParentID, siblings)
		if err != nil {
			return MenuOptionResponse{}, err
		}
	}

	opt := &MenuOption{
		MenuOptionID: id,
		Name:         req.Name,
		Description:  req.Description,
		Path:         req.Path,
		Type:         menuType,
		Icon:         req.Icon,
		Content:      req.Content,
		ParentID:     req.ParentID,
		SortOrder:    *req.Order,
	}
	if err := entity.PrepareCreate(&opt.Base, actor); err != nil {
		return MenuOptionResponse{}, err
	}

	if err := qtx.CreateMenuOption(ctx, opt); err != nil {
		return MenuOptionResponse{}, mapRepositoryError(err, rbacerrors.ErrMenuOptionNotFound)
	}
	if err := qtx.AttachMenuRoles(ctx, id, req.Roles, actor); err != nil {
		return MenuOptionResponse{}, mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}
	if err := qtx.AttachMenuParameters(ctx, id, req.Parameters, actor); err != nil {
		return MenuOptionResponse{}, mapRepositoryError(err, rbacerrors.ErrParameterNotFound)
	}

	if err := tx.Commit(); err != nil {
		return MenuOptionResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(menuOptionKind, id), actor, activitylog.ActionCreate,
		fmt.Sprintf("menu option %s created", opt.Name))

	return mapMenuOption(*opt), nil
}

func (s *service) UpdateMenuOption(ctx context.Context, id string, req UpdateMenuOptionRequest, actor string) (MenuOptionResponse, error) {
	raw := req.fields()
	if len(raw) == 0 {
		return MenuOptionResponse{}, rbacerrors.ErrEmptyUpdate
	}
	if t, ok := raw["type"].(string); ok {
		t = strings.ToLower(strings.TrimSpace(t))
		if !validMenuType(t) {
			return MenuOptionResponse{}, rbacerrors.ErrInvalidMenuType
		}
		raw["type"] = t
	}

	fields, err := entity.PrepareUpdate(raw, actor)
	if err != nil {
		return MenuOptionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MenuOptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindMenuOption(ctx, id)
	if err != nil {
		return MenuOptionResponse{}, mapRepositoryError(err, rbacerrors.ErrMenuOptionNotFound)
	}

	if req.Order != nil && *req.Order != current.SortOrder {
		siblings, err := qtx.CountSiblings(ctx, current.ParentID, id)
		if err != nil {
			return MenuOptionResponse{}, err
		}
		if err := checkOrder(ctx, qtx, current.ParentID, *req.Order, siblings, id); err != nil {
			return MenuOptionResponse{}, err
		}
	}

	if err := qtx.UpdateMenuOption(ctx, id, fields); err != nil {
		return MenuOptionResponse{}, mapRepositoryError(err, rbacerrors.ErrMenuOptionNotFound)
	}
	updated, err := qtx.FindMenuOption(ctx, id)
	if err != nil {
		return MenuOptionResponse{}, mapRepositoryError(err, rbacerrors.ErrMenuOptionNotFound)
	}

	if err := tx.Commit(); err != nil {
		return MenuOptionResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(menuOptionKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("menu option %s updated", updated.Name))

	return mapMenuOption(*updated), nil
}
