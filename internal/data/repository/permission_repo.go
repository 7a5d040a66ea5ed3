package repository

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PermissionRepository interface {
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Permission, error)
	CountAll(ctx context.Context) (int64, error)
	FindByUser(ctx context.Context, userID int64) ([]*entity.Permission, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
	AddToUser(ctx context.Context, userID int64, permissionIDs []int64) error
	RemoveFromUser(ctx context.Context, userID int64, permissionIDs []int64) error
	UserHasPermission(ctx context.Context, userID int64, codename string) (bool, error)

	FindAllGroups(ctx context.Context) ([]*entity.Group, error)
	FindGroupByID(ctx context.Context, id int64) (*entity.Group, error)
	AddUserToGroup(ctx context.Context, userID, groupID int64) error
	RemoveUserFromGroup(ctx context.Context, userID, groupID int64) error
}

type permissionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPermissionRepository(db database.PgxIface, log *zap.Logger) PermissionRepository {
	return &permissionRepository{
		db:  db,
		log: log.With(zap.String("repository", "permission")),
	}
}

func (r *permissionRepository) scanPermissions(rows pgx.Rows) ([]*entity.Permission, error) {
	defer rows.Close()

	var perms []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Codename); err != nil {
			return nil, fmt.Errorf("scan permission row: %w", err)
		}
		perms = append(perms, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permission rows: %w", err)
	}
	return perms, nil
}

func (r *permissionRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Permission, error) {
	query := `SELECT id, name, codename FROM permissions ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list permissions", zap.Error(err))
		return nil, fmt.Errorf("find all permissions: %w", err)
	}
	return r.scanPermissions(rows)
}

func (r *permissionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM permissions`).Scan(&count); err != nil {
		r.log.Error("Failed to count permissions", zap.Error(err))
		return 0, fmt.Errorf("count permissions: %w", err)
	}
	return count, nil
}

func (r *permissionRepository) FindByUser(ctx context.Context, userID int64) ([]*entity.Permission, error) {
	query := `
		SELECT p.id, p.name, p.codename
		FROM permissions p
		JOIN user_permissions up ON up.permission_id = p.id
		WHERE up.user_id = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list user permissions", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find permissions of user %d: %w", userID, err)
	}
	return r.scanPermissions(rows)
}

func (r *permissionRepository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM permissions WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count permissions by id", zap.Error(err))
		return 0, fmt.Errorf("count permissions by id: %w", err)
	}
	return count, nil
}

func (r *permissionRepository) AddToUser(ctx context.Context, userID int64, permissionIDs []int64) error {
	query := `
		INSERT INTO user_permissions (user_id, permission_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, userID, permissionIDs); err != nil {
		r.log.Error("Failed to add user permissions",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64s("permission_ids", permissionIDs),
		)
		return fmt.Errorf("add permissions to user %d: %w", userID, err)
	}
	return nil
}

func (r *permissionRepository) RemoveFromUser(ctx context.Context, userID int64, permissionIDs []int64) error {
	query := `DELETE FROM user_permissions WHERE user_id = $1 AND permission_id = ANY($2)`

	if _, err := r.db.Exec(ctx, query, userID, permissionIDs); err != nil {
		r.log.Error("Failed to remove user permissions",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64s("permission_ids", permissionIDs),
		)
		return fmt.Errorf("remove permissions from user %d: %w", userID, err)
	}
	return nil
}

// UserHasPermission is true for active superusers, direct grants and group grants
func (r *permissionRepository) UserHasPermission(ctx context.Context, userID int64, codename string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users u
			WHERE u.id = $1 AND u.is_active AND u.is_superuser
		) OR EXISTS (
			SELECT 1 FROM user_permissions up
			JOIN permissions p ON p.id = up.permission_id
			WHERE up.user_id = $1 AND p.codename = $2
		) OR EXISTS (
			SELECT 1 FROM user_groups ug
			JOIN group_permissions gp ON gp.group_id = ug.group_id
			JOIN permissions p ON p.id = gp.permission_id
			WHERE ug.user_id = $1 AND p.codename = $2
		)
	`

	var allowed bool
	if err := r.db.QueryRow(ctx, query, userID, codename).Scan(&allowed); err != nil {
		r.log.Error("Failed to check permission",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("codename", codename),
		)
		return false, fmt.Errorf("check permission %s for user %d: %w", codename, userID, err)
	}
	return allowed, nil
}

func (r *permissionRepository) FindAllGroups(ctx context.Context) ([]*entity.Group, error) {
	query := `
		SELECT g.id, g.name, p.id, p.name, p.codename
		FROM groups g
		LEFT JOIN group_permissions gp ON gp.group_id = g.id
		LEFT JOIN permissions p ON p.id = gp.permission_id
		ORDER BY g.id, p.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list groups", zap.Error(err))
		return nil, fmt.Errorf("find all groups: %w", err)
	}
	defer rows.Close()

	var groups []*entity.Group
	byID := make(map[int64]*entity.Group)
	for rows.Next() {
		var (
			groupID   int64
			groupName string
			permID    *int64
			permName  *string
			codename  *string
		)
		if err := rows.Scan(&groupID, &groupName, &permID, &permName, &codename); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}

		g, ok := byID[groupID]
		if !ok {
			g = &entity.Group{ID: groupID, Name: groupName}
			byID[groupID] = g
			groups = append(groups, g)
		}
		if permID != nil {
			g.Permissions = append(g.Permissions, entity.Permission{ID: *permID, Name: *permName, Codename: *codename})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group rows: %w", err)
	}

	return groups, nil
}

func (r *permissionRepository) FindGroupByID(ctx context.Context, id int64) (*entity.Group, error) {
	var g entity.Group
	err := r.db.QueryRow(ctx, `SELECT id, name FROM groups WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find group", zap.Error(err), zap.Int64("group_id", id))
		return nil, fmt.Errorf("find group %d: %w", id, err)
	}
	return &g, nil
}

func (r *permissionRepository) AddUserToGroup(ctx context.Context, userID, groupID int64) error {
	query := `INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, query, userID, groupID); err != nil {
		r.log.Error("Failed to add user to group",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("group_id", groupID),
		)
		return fmt.Errorf("add user %d to group %d: %w", userID, groupID, err)
	}
	return nil
}

func (r *permissionRepository) RemoveUserFromGroup(ctx context.Context, userID, groupID int64) error {
	query := `DELETE FROM user_groups WHERE user_id = $1 AND group_id = $2`

	if _, err := r.db.Exec(ctx, query, userID, groupID); err != nil {
		r.log.Error("Failed to remove user from group",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("group_id", groupID),
		)
		return fmt.Errorf("remove user %d from group %d: %w", userID, groupID, err)
	}
	return nil
}
