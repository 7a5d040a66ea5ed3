package request

type UserPermissionsRequest struct {
	ID            int64   `json:"id" validate:"required,gt=0"`
	PermissionIDs []int64 `json:"permission_ids" validate:"required,min=1,dive,gt=0"`
}

type GroupMemberRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}
