package rbac_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/domain"
	"github.com/fenixfl1/CompuPay/internal/rbac"
	rbacerrors "github.com/fenixfl1/CompuPay/internal/rbac/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	rbac.Service
	EnforceFn     func(ctx context.Context, req domain.EnforceRequest) (bool, error)
	MenuOptionsFn func(ctx context.Context, username string) ([]rbac.MenuOptionResponse, error)
	AssignRolesFn func(ctx context.Context, username string, roleIDs []int, actor string) error
	GetRoleFn     func(ctx context.Context, id int) (rbac.RoleResponse, error)
}

func (f *fakeService) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	return f.EnforceFn(ctx, req)
}

func (f *fakeService) MenuOptions(ctx context.Context, username string) ([]rbac.MenuOptionResponse, error) {
	return f.MenuOptionsFn(ctx, username)
}

func (f *fakeService) AssignRoles(ctx context.Context, username string, roleIDs []int, actor string) error {
	return f.AssignRolesFn(ctx, username, roleIDs, actor)
}

func (f *fakeService) GetRole(ctx context.Context, id int) (rbac.RoleResponse, error) {
	return f.GetRoleFn(ctx, id)
}

func newRouter(svc rbac.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := rbac.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("username", "admin")
		c.Next()
	})
	r.POST("/rbac/enforce", h.Enforce)
	r.GET("/rbac/menu-options", h.MenuOptions)
	r.POST("/rbac/assign-roles", h.AssignRoles)
	r.POST("/rbac/menu-options", h.CreateMenuOption)
	r.GET("/rbac/roles/:id", h.GetRole)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Enforce(t *testing.T) {
	var got domain.EnforceRequest
	svc := &fakeService{
		EnforceFn: func(_ context.Context, req domain.EnforceRequest) (bool, error) {
			got = req
			return req.Resource == "users" && req.Action == "view", nil
		},
	}

	w := doJSON(newRouter(svc), http.MethodPost, "/rbac/enforce", gin.H{"resource": "users", "action": "view"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", got.Subject)

	var resp struct {
		Data rbac.EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_MenuOptions(t *testing.T) {
	svc := &fakeService{
		MenuOptionsFn: func(_ context.Context, username string) ([]rbac.MenuOptionResponse, error) {
			assert.Equal(t, "admin", username)
			return []rbac.MenuOptionResponse{{
				MenuOptionID: "2",
				Name:         "Nómina",
				Operations:   []int{},
				Parameters:   map[string]string{},
				Children: []rbac.MenuOptionResponse{{
					MenuOptionID: "2-1", Name: "Historial", Operations: []int{1},
				}},
			}}, nil
		},
	}

	w := doJSON(newRouter(svc), http.MethodGet, "/rbac/menu-options", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []rbac.MenuOptionResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "2-1", resp.Data[0].Children[0].MenuOptionID)
}

func TestHandler_AssignRoles(t *testing.T) {
	t.Run("passes actor and roles", func(t *testing.T) {
		svc := &fakeService{
			AssignRolesFn: func(_ context.Context, username string, roleIDs []int, actor string) error {
				assert.Equal(t, "jdoe", username)
				assert.Equal(t, []int{1, 2}, roleIDs)
				assert.Equal(t, "admin", actor)
				return nil
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/rbac/assign-roles", gin.H{"username": "jdoe", "roles": []int{1, 2}})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty roles rejected by binding", func(t *testing.T) {
		svc := &fakeService{}

		w := doJSON(newRouter(svc), http.MethodPost, "/rbac/assign-roles", gin.H{"username": "jdoe", "roles": []int{}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := &fakeService{
			AssignRolesFn: func(context.Context, string, []int, string) error {
				return rbacerrors.ErrRoleNotFound
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/rbac/assign-roles", gin.H{"username": "jdoe", "roles": []int{42}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestHandler_CreateMenuOption_RequiresOrder(t *testing.T) {
	w := doJSON(newRouter(&fakeService{}), http.MethodPost, "/rbac/menu-options", gin.H{"name": "Tareas"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetRole_InvalidID(t *testing.T) {
	w := doJSON(newRouter(&fakeService{}), http.MethodGet, "/rbac/roles/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
