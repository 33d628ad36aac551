package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/hanekasa/pkg/api"
)

func TestGroupService_CreateAndAddMembers(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ayse := env.register(t, "ayse@example.com", "Ayşe")
	burak := env.register(t, "burak@example.com", "Burak")

	created, err := env.groups.CreateGroup(ctx, as(ayse, &api.CreateGroupRequest{Name: "  Ev  "}))
	require.NoError(t, err)
	assert.Equal(t, "Ev", created.Msg.Group.Name)
	require.Len(t, created.Msg.Members, 1)
	assert.Equal(t, ayse.user.ID, created.Msg.Members[0].UserID)

	groupID := created.Msg.Group.ID

	added, err := env.groups.AddMember(ctx, as(ayse, &api.AddMemberRequest{GroupID: groupID, Email: " BURAK@example.com "}))
	require.NoError(t, err)
	assert.Equal(t, burak.user.ID, added.Msg.Member.UserID)

	_, err = env.groups.AddMember(ctx, as(ayse, &api.AddMemberRequest{GroupID: groupID, Email: "burak@example.com"}))
	requireCode(t, err, connect.CodeAlreadyExists)

	_, err = env.groups.AddMember(ctx, as(ayse, &api.AddMemberRequest{GroupID: groupID, Email: "nobody@example.com"}))
	requireCode(t, err, connect.CodeNotFound)

	members, err := env.groups.ListMembers(ctx, as(burak, &api.ListMembersRequest{GroupID: groupID}))
	require.NoError(t, err)
	require.Len(t, members.Msg.Members, 2)
	assert.Equal(t, "Ayşe", members.Msg.Members[0].DisplayName)
	assert.Equal(t, "Burak", members.Msg.Members[1].DisplayName)

	list, err := env.groups.ListGroups(ctx, as(burak, &api.ListGroupsRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Groups, 1)
	assert.Equal(t, groupID, list.Msg.Groups[0].ID)

	got, err := env.groups.GetGroup(ctx, as(burak, &api.GetGroupRequest{GroupID: groupID}))
	require.NoError(t, err)
	assert.Equal(t, "Ev", got.Msg.Group.Name)
	assert.Len(t, got.Msg.Members, 2)
}

func TestGroupService_Access(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	owner := env.register(t, "owner@example.com", "Owner")
	outsider := env.register(t, "outsider@example.com", "Outsider")
	groupID := env.household(t, "Ev", owner)

	_, err := env.groups.CreateGroup(ctx, as(owner, &api.CreateGroupRequest{Name: "   "}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = env.groups.GetGroup(ctx, as(outsider, &api.GetGroupRequest{GroupID: groupID}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = env.groups.AddMember(ctx, as(outsider, &api.AddMemberRequest{GroupID: groupID, Email: "outsider@example.com"}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = env.groups.GetGroup(ctx, as(owner, &api.GetGroupRequest{GroupID: "missing"}))
	requireCode(t, err, connect.CodeNotFound)

	_, err = env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)

	list, err := env.groups.ListGroups(ctx, as(outsider, &api.ListGroupsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Groups)
}
