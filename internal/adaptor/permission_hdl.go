package adaptor

import (
	"net/http"

	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/usecase"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

type PermissionHandler struct {
	service usecase.PermissionService
	log     *zap.Logger
}

func NewPermissionHandler(service usecase.PermissionService, log *zap.Logger) *PermissionHandler {
	return &PermissionHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/permissions?page_size=&page_number=
func (h *PermissionHandler) List(w http.ResponseWriter, r *http.Request) {
	req := request.PaginatedRequest{
		PageNumber: utils.ParseInt(r.URL.Query().Get("page_number"), 1),
		PageSize:   utils.ParseInt(r.URL.Query().Get("page_size"), request.DefaultPageSize),
	}

	perms, err := h.service.List(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list permissions")
		return
	}

	utils.ResponseSuccess(w, "Permissions retrieved successfully", perms)
}

// ForUser handles GET /api/permissions/user/{id}
func (h *PermissionHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	perms, err := h.service.ForUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "user permissions")
		return
	}

	utils.ResponseSuccess(w, "User permissions retrieved successfully", perms)
}

// Grant handles POST /api/permissions/user
func (h *PermissionHandler) Grant(w http.ResponseWriter, r *http.Request) {
	var req request.UserPermissionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	perms, err := h.service.Grant(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "grant permissions")
		return
	}

	utils.ResponseSuccess(w, "Permissions added", perms)
}

// Revoke handles DELETE /api/permissions/user
func (h *PermissionHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	var req request.UserPermissionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	perms, err := h.service.Revoke(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "revoke permissions")
		return
	}

	utils.ResponseSuccess(w, "Permissions removed", perms)
}

// Groups handles GET /api/groups
func (h *PermissionHandler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Groups(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list groups")
		return
	}

	utils.ResponseSuccess(w, "Groups retrieved successfully", groups)
}

// JoinGroup handles POST /api/groups/{id}/users
func (h *PermissionHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.GroupMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.JoinGroup(r.Context(), groupID, &req); err != nil {
		handleServiceError(w, h.log, err, "join group")
		return
	}

	utils.ResponseSuccess(w, "User added to group", nil)
}

// LeaveGroup handles DELETE /api/groups/{id}/users/{user_id}
func (h *PermissionHandler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	if err := h.service.LeaveGroup(r.Context(), groupID, userID); err != nil {
		handleServiceError(w, h.log, err, "leave group")
		return
	}

	utils.ResponseSuccess(w, "User removed from group", nil)
}
