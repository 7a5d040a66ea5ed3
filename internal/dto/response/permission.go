package response

import "ecommerce-demo/internal/data/entity"

type PermissionResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Codename string `json:"codename"`
}

type GroupResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions"`
}

type UserPermissionsResponse struct {
	User        int64                `json:"user"`
	Permissions []PermissionResponse `json:"permissions"`
}

func PermissionToResponse(p entity.Permission) PermissionResponse {
	return PermissionResponse{ID: p.ID, Name: p.Name, Codename: p.Codename}
}

func GroupToResponse(g *entity.Group) GroupResponse {
	perms := make([]PermissionResponse, 0, len(g.Permissions))
	for _, p := range g.Permissions {
		perms = append(perms, PermissionToResponse(p))
	}
	return GroupResponse{ID: g.ID, Name: g.Name, Permissions: perms}
}
