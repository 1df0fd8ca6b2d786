package rbac_http

import (
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rolesResource = "roles"
	menuResource  = "menu-options"
	usersResource = "users"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, service rbac.Service, rdb *redis.Client) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/menu-options", handler.MenuOptions)
		group.GET("/menu-options/:id/children", handler.MenuChildren)
		group.POST("/menu-options", middleware.RBACAuthorize(service, menuResource, "create"), middleware.Idempotency(rdb), handler.CreateMenuOption)
		group.PUT("/menu-options/:id", middleware.RBACAuthorize(service, menuResource, "update"), handler.UpdateMenuOption)

		group.POST("/roles/list", middleware.RBACAuthorize(service, rolesResource, "view"), handler.ListRoles)
		group.GET("/roles/:id", middleware.RBACAuthorize(service, rolesResource, "view"), handler.GetRole)
		group.POST("/roles", middleware.RBACAuthorize(service, rolesResource, "create"), middleware.Idempotency(rdb), handler.CreateRole)
		group.PUT("/roles/:id", middleware.RBACAuthorize(service, rolesResource, "update"), handler.UpdateRole)
		group.PUT("/roles/:id/permissions", middleware.RBACAuthorize(service, rolesResource, "update"), handler.SetRolePermissions)

		group.POST("/assign-roles", middleware.RBACAuthorize(service, usersResource, "update"), handler.AssignRoles)
		group.POST("/remove-roles", middleware.RBACAuthorize(service, usersResource, "update"), handler.RemoveRoles)
		group.PUT("/change-roles", middleware.RBACAuthorize(service, usersResource, "update"), handler.ChangeUserRoles)

		group.GET("/operations", middleware.RBACAuthorize(service, rolesResource, "view"), handler.ListOperations)
		group.POST("/grant-operation", middleware.RBACAuthorize(service, usersResource, "update"), handler.GrantOperation)
		group.POST("/revoke-operation", middleware.RBACAuthorize(service, usersResource, "update"), handler.RevokeOperation)

		group.GET("/parameters", middleware.RBACAuthorize(service, menuResource, "view"), handler.ListParameters)
		group.POST("/parameters", middleware.RBACAuthorize(service, menuResource, "create"), handler.CreateParameter)
	}
}
