package rbac

import "time"

type EnforceCheckRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type CreateRoleRequest struct {
	Name          string  `json:"name" binding:"required,max=25"`
	Description   *string `json:"description" binding:"omitempty,max=200"`
	InitUserState string  `json:"init_user_state" binding:"omitempty,oneof=A I P"`
	Color         string  `json:"color" binding:"omitempty,hexcolor"`
}

type UpdateRoleRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=25"`
	Description   *string `json:"description" binding:"omitempty,max=200"`
	InitUserState *string `json:"init_user_state" binding:"omitempty,oneof=A I P"`
	Color         *string `json:"color" binding:"omitempty,hexcolor"`
	State         *string `json:"state"`
}

func (r UpdateRoleRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.InitUserState != nil {
		out["init_user_state"] = *r.InitUserState
	}
	if r.Color != nil {
		out["color"] = *r.Color
	}
	if r.State != nil {
		out["state"] = *r.State
	}
	return out
}

type RoleResponse struct {
	RoleID        int       `json:"role_id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	InitUserState string    `json:"init_user_state"`
	Color         string    `json:"color"`
	State         string    `json:"state"`
	UserCount     int64     `json:"user_count"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
}

// SetRolePermissionsRequest replaces the operations a role holds and the
// menu options it can reach.
type SetRolePermissionsRequest struct {
	OperationIDs  []int    `json:"operation_ids" binding:"required"`
	MenuOptionIDs []string `json:"menu_option_ids" binding:"required"`
}

type RoleMembershipRequest struct {
	Username string `json:"username" binding:"required"`
	RoleIDs  []int  `json:"roles" binding:"required,min=1"`
}

type GrantOperationRequest struct {
	Username      string   `json:"username" binding:"required"`
	OperationID   int      `json:"operation_id" binding:"required"`
	MenuOptionIDs []string `json:"menu_option_ids" binding:"required,min=1"`
}

type RevokeOperationRequest struct {
	Username    string `json:"username" binding:"required"`
	OperationID int    `json:"operation_id" binding:"required"`
}

type OperationResponse struct {
	OperationID int     `json:"operation_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CreateMenuOptionRequest struct {
	MenuOptionID *string `json:"menu_option_id" binding:"omitempty,max=20"`
	Name         string  `json:"name" binding:"required,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=250"`
	Path         *string `json:"path" binding:"omitempty,max=100"`
	Type         string  `json:"type"`
	Icon         *string `json:"icon"`
	Content      *string `json:"content"`
	ParentID     *string `json:"parent_id"`
	Order        *int    `json:"order" binding:"required"`
	Roles        []int   `json:"roles"`
	Parameters   []int   `json:"parameters"`
}

type UpdateMenuOptionRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=250"`
	Path        *string `json:"path" binding:"omitempty,max=100"`
	Type        *string `json:"type"`
	Icon        *string `json:"icon"`
	Content     *string `json:"content"`
	Order       *int    `json:"order"`
	State       *string `json:"state"`
}

func (r UpdateMenuOptionRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Path != nil {
		out["path"] = *r.Path
	}
	if r.Type != nil {
		out["type"] = *r.Type
	}
	if r.Icon != nil {
		out["icon"] = *r.Icon
	}
	if r.Content != nil {
		out["content"] = *r.Content
	}
	if r.Order != nil {
		out["sort_order"] = *r.Order
	}
	if r.State != nil {
		out["state"] = *r.State
	}
	return out
}

type MenuOptionResponse struct {
	MenuOptionID string               `json:"menu_option_id"`
	Name         string               `json:"name"`
	Description  *string              `json:"description"`
	Path         *string              `json:"path"`
	Type         string               `json:"type"`
	Icon         *string              `json:"icon"`
	Content      *string              `json:"content"`
	ParentID     *string              `json:"parent_id"`
	Order        int                  `json:"order"`
	Operations   []int                `json:"operations"`
	Parameters   map[string]string    `json:"parameters"`
	Children     []MenuOptionResponse `json:"children"`
}

type CreateParameterRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Value       string  `json:"value" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=250"`
}

type ParameterResponse struct {
	ParameterID int     `json:"parameter_id"`
	Name        string  `json:"name"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
	State       string  `json:"state"`
}

func mapRoleToResponse(r RoleRow) RoleResponse {
	return RoleResponse{
		RoleID:        r.RoleID,
		Name:          r.Name,
		Description:   r.Description,
		InitUserState: r.InitUserState,
		Color:         r.Color,
		State:         r.State,
		UserCount:     r.UserCount,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
	}
}

func mapMenuOption(m MenuOption) MenuOptionResponse {
	return MenuOptionResponse{
		MenuOptionID: m.MenuOptionID,
		Name:         m.Name,
		Description:  m.Description,
		Path:         m.Path,
		Type:         m.Type,
		Icon:         m.Icon,
		Content:      m.Content,
		ParentID:     m.ParentID,
		Order:        m.SortOrder,
		Operations:   []int{},
		Parameters:   map[string]string{},
	}
}

func mapParameter(p Parameter) ParameterResponse {
	return ParameterResponse{
		ParameterID: p.ParameterID,
		Name:        p.Name,
		Value:       p.Value,
		Description: p.Description,
		State:       p.State,
	}
}

