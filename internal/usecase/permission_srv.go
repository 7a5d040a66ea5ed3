package usecase

import (
	"context"
	"fmt"

	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/internal/dto/response"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

type PermissionService interface {
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PermissionResponse], error)
	ForUser(ctx context.Context, userID int64) (*response.UserPermissionsResponse, error)
	Grant(ctx context.Context, req *request.UserPermissionsRequest) (*response.UserPermissionsResponse, error)
	Revoke(ctx context.Context, req *request.UserPermissionsRequest) (*response.UserPermissionsResponse, error)
	HasPermission(ctx context.Context, userID int64, codename string) (bool, error)

	Groups(ctx context.Context) ([]response.GroupResponse, error)
	JoinGroup(ctx context.Context, groupID int64, req *request.GroupMemberRequest) error
	LeaveGroup(ctx context.Context, groupID, userID int64) error
}

type permissionService struct {
	permRepo repository.PermissionRepository
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewPermissionService(repo *repository.Repository, log *zap.Logger) PermissionService {
	return &permissionService{
		permRepo: repo.Permission,
		userRepo: repo.User,
		log:      log.With(zap.String("service", "permission")),
	}
}

func (ps *permissionService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PermissionResponse], error) {
	req.Normalize()

	perms, err := ps.permRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	total, err := ps.permRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count permissions: %w", err)
	}

	result := make([]response.PermissionResponse, len(perms))
	for i, p := range perms {
		result[i] = response.PermissionToResponse(*p)
	}
	return response.NewPaginatedResponse(result, req.PageNumber, req.PageSize, total), nil
}

func (ps *permissionService) ForUser(ctx context.Context, userID int64) (*response.UserPermissionsResponse, error) {
	if err := ps.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	perms, err := ps.permRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user permissions: %w", err)
	}

	resp := &response.UserPermissionsResponse{
		User:        userID,
		Permissions: make([]response.PermissionResponse, len(perms)),
	}
	for i, p := range perms {
		resp.Permissions[i] = response.PermissionToResponse(*p)
	}
	return resp, nil
}

func (ps *permissionService) Grant(ctx context.Context, req *request.UserPermissionsRequest) (*response.UserPermissionsResponse, error) {
	if err := ps.checkChange(ctx, req); err != nil {
		return nil, err
	}
	if err := ps.permRepo.AddToUser(ctx, req.ID, req.PermissionIDs); err != nil {
		return nil, fmt.Errorf("grant permissions: %w", err)
	}

	ps.log.Info("Permissions granted", zap.Int64("user_id", req.ID), zap.Int64s("permission_ids", req.PermissionIDs))
	return ps.ForUser(ctx, req.ID)
}

func (ps *permissionService) Revoke(ctx context.Context, req *request.UserPermissionsRequest) (*response.UserPermissionsResponse, error) {
	if err := ps.checkChange(ctx, req); err != nil {
		return nil, err
	}
	if err := ps.permRepo.RemoveFromUser(ctx, req.ID, req.PermissionIDs); err != nil {
		return nil, fmt.Errorf("revoke permissions: %w", err)
	}

	ps.log.Info("Permissions revoked", zap.Int64("user_id", req.ID), zap.Int64s("permission_ids", req.PermissionIDs))
	return ps.ForUser(ctx, req.ID)
}

func (ps *permissionService) HasPermission(ctx context.Context, userID int64, codename string) (bool, error) {
	return ps.permRepo.UserHasPermission(ctx, userID, codename)
}

func (ps *permissionService) Groups(ctx context.Context) ([]response.GroupResponse, error) {
	groups, err := ps.permRepo.FindAllGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	result := make([]response.GroupResponse, len(groups))
	for i, g := range groups {
		result[i] = response.GroupToResponse(g)
	}
	return result, nil
}

func (ps *permissionService) JoinGroup(ctx context.Context, groupID int64, req *request.GroupMemberRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(utils.FormatValidationErrors(errs))
	}
	if err := ps.requireGroup(ctx, groupID); err != nil {
		return err
	}
	if err := ps.requireUser(ctx, req.UserID); err != nil {
		return err
	}
	if err := ps.permRepo.AddUserToGroup(ctx, req.UserID, groupID); err != nil {
		return fmt.Errorf("join group: %w", err)
	}

	ps.log.Info("User added to group", zap.Int64("user_id", req.UserID), zap.Int64("group_id", groupID))
	return nil
}

func (ps *permissionService) LeaveGroup(ctx context.Context, groupID, userID int64) error {
	if err := ps.requireGroup(ctx, groupID); err != nil {
		return err
	}
	if err := ps.permRepo.RemoveUserFromGroup(ctx, userID, groupID); err != nil {
		return fmt.Errorf("leave group: %w", err)
	}
	return nil
}

func (ps *permissionService) checkChange(ctx context.Context, req *request.UserPermissionsRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(utils.FormatValidationErrors(errs))
	}
	if err := ps.requireUser(ctx, req.ID); err != nil {
		return err
	}

	unique := make(map[int64]struct{}, len(req.PermissionIDs))
	for _, id := range req.PermissionIDs {
		unique[id] = struct{}{}
	}
	found, err := ps.permRepo.CountExisting(ctx, req.PermissionIDs)
	if err != nil {
		return fmt.Errorf("check permissions: %w", err)
	}
	if found != len(unique) {
		return validationError("Some permissions do not exist")
	}
	return nil
}

func (ps *permissionService) requireUser(ctx context.Context, userID int64) error {
	user, err := ps.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user %d: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

func (ps *permissionService) requireGroup(ctx context.Context, groupID int64) error {
	group, err := ps.permRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("find group %d: %w", groupID, err)
	}
	if group == nil {
		return ErrGroupNotFound
	}
	return nil
}
