package wire

import (
	"ecommerce-demo/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePermission(
	r chi.Router,
	permHandler *adaptor.PermissionHandler,
	auth middlewareFunc,
	perm func(codename string) middlewareFunc,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.With(perm("auth.view_permission")).Get("/api/permissions", permHandler.List)
		r.With(perm("auth.view_permission")).Get("/api/permissions/user/{id}", permHandler.ForUser)
		r.With(perm("auth.change_permission")).Post("/api/permissions/user", permHandler.Grant)
		r.With(perm("auth.change_permission")).Delete("/api/permissions/user", permHandler.Revoke)

		r.With(perm("auth.view_group")).Get("/api/groups", permHandler.Groups)
		r.With(perm("auth.change_group")).Post("/api/groups/{id}/users", permHandler.JoinGroup)
		r.With(perm("auth.change_group")).Delete("/api/groups/{id}/users/{user_id}", permHandler.LeaveGroup)
	})
}
