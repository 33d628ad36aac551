package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/hanekasa/internal/auth"
	"github.com/mmynk/hanekasa/internal/models"
	"github.com/mmynk/hanekasa/internal/storage"
	"github.com/mmynk/hanekasa/pkg/api"
)

var (
	ErrGroupNameEmpty = errors.New("group name is required")
	ErrUserNotFound   = errors.New("no registered user with that email")
)

var _ api.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the GroupService RPC interface.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// CreateGroup creates a group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument(ErrGroupNameEmpty)
	}

	group := &models.Group{Name: name}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.Error("Failed to create group", "error", err)
		return nil, storageError(err)
	}
	if err := s.store.AddGroupMember(ctx, group.ID, userID); err != nil {
		s.logger.Error("Failed to add group creator", "group_id", group.ID, "error", err)
		return nil, storageError(err)
	}

	members, err := s.store.ListGroupMembers(ctx, group.ID)
	if err != nil {
		return nil, storageError(err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "user_id", userID)
	return connect.NewResponse(&api.CreateGroupResponse{
		Group:   groupToAPI(group),
		Members: membersToAPI(members),
	}), nil
}

// GetGroup returns a group and its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if _, err := requireMember(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storageError(err)
	}
	members, err := s.store.ListGroupMembers(ctx, group.ID)
	if err != nil {
		return nil, storageError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Group:   groupToAPI(group),
		Members: membersToAPI(members),
	}), nil
}

// ListGroups returns the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list groups", "user_id", userID, "error", err)
		return nil, storageError(err)
	}

	out := make([]*api.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupToAPI(g))
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMember adds a registered user, found by email, to the group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	userID, err := requireMember(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	email := auth.NormalizeEmail(req.Msg.Email)
	if email == "" {
		return nil, invalidArgument(auth.ErrInvalidEmail)
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, ErrUserNotFound)
		}
		return nil, storageError(err)
	}

	if err := s.store.AddGroupMember(ctx, req.Msg.GroupID, user.ID); err != nil {
		return nil, storageError(err)
	}

	s.logger.Info("Member added", "group_id", req.Msg.GroupID, "user_id", user.ID, "added_by", userID)
	return connect.NewResponse(&api.AddMemberResponse{
		Member: &api.Member{
			UserID:      user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	}), nil
}

// ListMembers returns the group's members ordered by display name.
func (s *GroupService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if _, err := requireMember(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	members, err := s.store.ListGroupMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: membersToAPI(members)}), nil
}
