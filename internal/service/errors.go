package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/hanekasa/internal/auth"
	"github.com/mmynk/hanekasa/internal/middleware"
	"github.com/mmynk/hanekasa/internal/storage"
)

var (
	ErrNotMember    = errors.New("not a member of this group")
	ErrNotCreator   = errors.New("only the creator can delete an expense")
	ErrGroupIDEmpty = errors.New("group_id is required")
)

// storageError maps a storage failure to a Connect error.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrAlreadyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// callerID returns the authenticated user ID set by the auth interceptor.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// requireMember checks that the caller belongs to the group and returns the
// caller's user ID.
func requireMember(ctx context.Context, groups storage.GroupStore, groupID string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	if groupID == "" {
		return "", invalidArgument(ErrGroupIDEmpty)
	}

	if _, err := groups.GetGroup(ctx, groupID); err != nil {
		return "", storageError(err)
	}

	ok, err := groups.IsGroupMember(ctx, groupID, userID)
	if err != nil {
		return "", storageError(err)
	}
	if !ok {
		return "", connect.NewError(connect.CodePermissionDenied, ErrNotMember)
	}
	return userID, nil
}
