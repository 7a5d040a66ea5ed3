package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePermissionRepo struct {
	perms   map[int64]*entity.Permission
	granted map[int64]map[int64]bool
	groups  map[int64]*entity.Group
	members map[int64]map[int64]bool
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{
		perms: map[int64]*entity.Permission{
			1: {ID: 1, Name: "Can add product", Codename: "product.add_product"},
			2: {ID: 2, Name: "Can change product", Codename: "product.change_product"},
		},
		granted: make(map[int64]map[int64]bool),
		groups:  map[int64]*entity.Group{5: {ID: 5, Name: "staff"}},
		members: make(map[int64]map[int64]bool),
	}
}

func (r *fakePermissionRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Permission, error) {
	var all []*entity.Permission
	for _, p := range r.perms {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (r *fakePermissionRepo) CountAll(context.Context) (int64, error) {
	return int64(len(r.perms)), nil
}

func (r *fakePermissionRepo) FindByUser(_ context.Context, userID int64) ([]*entity.Permission, error) {
	var out []*entity.Permission
	for id := range r.granted[userID] {
		out = append(out, r.perms[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePermissionRepo) CountExisting(_ context.Context, ids []int64) (int, error) {
	seen := make(map[int64]bool)
	for _, id := range ids {
		if _, ok := r.perms[id]; ok {
			seen[id] = true
		}
	}
	return len(seen), nil
}

func (r *fakePermissionRepo) AddToUser(_ context.Context, userID int64, ids []int64) error {
	if r.granted[userID] == nil {
		r.granted[userID] = make(map[int64]bool)
	}
	for _, id := range ids {
		r.granted[userID][id] = true
	}
	return nil
}

func (r *fakePermissionRepo) RemoveFromUser(_ context.Context, userID int64, ids []int64) error {
	for _, id := range ids {
		delete(r.granted[userID], id)
	}
	return nil
}

func (r *fakePermissionRepo) UserHasPermission(_ context.Context, userID int64, codename string) (bool, error) {
	for id := range r.granted[userID] {
		if r.perms[id].Codename == codename {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePermissionRepo) FindAllGroups(context.Context) ([]*entity.Group, error) {
	var out []*entity.Group
	for _, g := range r.groups {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakePermissionRepo) FindGroupByID(_ context.Context, id int64) (*entity.Group, error) {
	return r.groups[id], nil
}

func (r *fakePermissionRepo) AddUserToGroup(_ context.Context, userID, groupID int64) error {
	if r.members[groupID] == nil {
		r.members[groupID] = make(map[int64]bool)
	}
	r.members[groupID][userID] = true
	return nil
}

func (r *fakePermissionRepo) RemoveUserFromGroup(_ context.Context, userID, groupID int64) error {
	delete(r.members[groupID], userID)
	return nil
}

func newPermissionService(perms *fakePermissionRepo, users ...*entity.User) PermissionService {
	return NewPermissionService(&repository.Repository{
		Permission: perms,
		User:       newFakeUserRepo(users...),
	}, zap.NewNop())
}

func TestPermissionService_GrantAndRevoke(t *testing.T) {
	perms := newFakePermissionRepo()
	svc := newPermissionService(perms, testUser(7, "alice", "a@example.com"))
	ctx := context.Background()

	resp, err := svc.Grant(ctx, &request.UserPermissionsRequest{ID: 7, PermissionIDs: []int64{1, 2, 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.User)
	assert.Len(t, resp.Permissions, 2)

	ok, err := svc.HasPermission(ctx, 7, "product.add_product")
	require.NoError(t, err)
	assert.True(t, ok)

	resp, err = svc.Revoke(ctx, &request.UserPermissionsRequest{ID: 7, PermissionIDs: []int64{1}})
	require.NoError(t, err)
	require.Len(t, resp.Permissions, 1)
	assert.Equal(t, "product.change_product", resp.Permissions[0].Codename)

	ok, err = svc.HasPermission(ctx, 7, "product.add_product")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionService_GrantRejects(t *testing.T) {
	svc := newPermissionService(newFakePermissionRepo(), testUser(7, "alice", "a@example.com"))
	ctx := context.Background()

	_, err := svc.Grant(ctx, &request.UserPermissionsRequest{ID: 7, PermissionIDs: []int64{1, 99}})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Some permissions do not exist")

	_, err = svc.Grant(ctx, &request.UserPermissionsRequest{ID: 404, PermissionIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Grant(ctx, &request.UserPermissionsRequest{ID: 7})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPermissionService_List(t *testing.T) {
	svc := newPermissionService(newFakePermissionRepo())

	page, err := svc.List(context.Background(), &request.PaginatedRequest{PageNumber: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Result, 1)
	assert.Equal(t, "product.add_product", page.Result[0].Codename)
}

func TestPermissionService_Groups(t *testing.T) {
	perms := newFakePermissionRepo()
	svc := newPermissionService(perms, testUser(7, "alice", "a@example.com"))
	ctx := context.Background()

	require.NoError(t, svc.JoinGroup(ctx, 5, &request.GroupMemberRequest{UserID: 7}))
	assert.True(t, perms.members[5][7])

	err := svc.JoinGroup(ctx, 6, &request.GroupMemberRequest{UserID: 7})
	assert.True(t, errors.Is(err, ErrGroupNotFound))

	err = svc.JoinGroup(ctx, 5, &request.GroupMemberRequest{UserID: 404})
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.LeaveGroup(ctx, 5, 7))
	assert.False(t, perms.members[5][7])

	groups, err := svc.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "staff", groups[0].Name)
}
