package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
	"github.com/sakif/blog-api/internal/repository/memory"
)

// =========================================================================
// FAKE GATEWAY
// =========================================================================
//
// failingGateway stands in for a backend that is down. Every call fails
// with err and counts itself, so tests can assert which storage calls a
// use case made before giving up.
type failingGateway[T model.Entity] struct {
	err   error
	calls int
}

var _ repository.Gateway[model.User] = (*failingGateway[model.User])(nil)

func (f *failingGateway[T]) Create(_ context.Context, rec T) (T, error) {
	f.calls++
	return rec, f.err
}

func (f *failingGateway[T]) GetByID(_ context.Context, _ int64) (T, bool, error) {
	f.calls++
	var zero T
	return zero, false, f.err
}

func (f *failingGateway[T]) GetAll(_ context.Context) ([]T, error) {
	f.calls++
	return nil, f.err
}

func (f *failingGateway[T]) Delete(_ context.Context, _ int64) error {
	f.calls++
	return f.err
}

var errBackendDown = errors.New("backend down")

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServices(t *testing.T) *Services {
	t.Helper()
	return New(memory.New(), testLogger())
}

// =========================================================================
// SCENARIO
// =========================================================================

func TestScenario(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice, err := svc.Users.Create(ctx, "alice", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	post, err := svc.Posts.Create(ctx, "T", "C", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, int64(1), post.AuthorID)

	_, err = svc.Posts.Create(ctx, "T", "C", 999)
	require.ErrorIs(t, err, apperror.ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "999")

	comment, err := svc.Comments.Create(ctx, "nice", post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), comment.ID)

	comments, err := svc.Comments.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Comment{{ID: 1, Content: "nice", PostID: 1, AuthorID: 1}}, comments)

	require.NoError(t, svc.Users.Delete(ctx, alice.ID))

	posts, err := svc.Posts.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	comments, err = svc.Comments.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

// =========================================================================
// USERS
// =========================================================================

func TestCreateUserRoundTrip(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	created, err := svc.Users.Create(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, ok, err := svc.Users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestCreateUserAssignsUnusedIDs(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	for _, name := range []string{"a", "b", "c", "d"} {
		u, err := svc.Users.Create(ctx, name, name+"@x.com")
		require.NoError(t, err)
		assert.False(t, seen[u.ID], "id %d reused", u.ID)
		seen[u.ID] = true
	}
}

func TestCreateUserDuplicateIsConflict(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Users.Create(ctx, "alice", "a@x.com")
	require.NoError(t, err)

	_, err = svc.Users.Create(ctx, "alice", "other@x.com")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestGetUserAbsent(t *testing.T) {
	svc := newTestServices(t)

	_, ok, err := svc.Users.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

// =========================================================================
// POSTS
// =========================================================================

func TestCreatePostUnknownAuthor(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Posts.Create(ctx, "title", "body", 7)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrReferenceNotFound)
	assert.Equal(t, "author with id 7 does not exist", appErr.Message)
	assert.Equal(t, "author_id", appErr.Field)

	posts, err := svc.Posts.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts, "a rejected create must not store anything")
}

func TestDeletePostKeepsAuthor(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice, _ := svc.Users.Create(ctx, "alice", "a@x.com")
	post, _ := svc.Posts.Create(ctx, "T", "C", alice.ID)
	_, err := svc.Comments.Create(ctx, "nice", post.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Posts.Delete(ctx, post.ID))

	_, ok, err := svc.Posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	comments, err := svc.Comments.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, ok, err = svc.Users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

// =========================================================================
// COMMENTS
// =========================================================================

func TestCreateCommentReferenceChecks(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice, _ := svc.Users.Create(ctx, "alice", "a@x.com")
	post, _ := svc.Posts.Create(ctx, "T", "C", alice.ID)

	tests := []struct {
		name     string
		postID   int64
		authorID int64
		wantMsg  string
	}{
		{"missing post", 50, alice.ID, "post with id 50 does not exist"},
		{"missing author", post.ID, 60, "author with id 60 does not exist"},
		{"both missing reports the post", 50, 60, "post with id 50 does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Comments.Create(ctx, "hello", tt.postID, tt.authorID)
			require.ErrorIs(t, err, apperror.ErrReferenceNotFound)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	comments, err := svc.Comments.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCreateCommentChecksPostBeforeAuthor(t *testing.T) {
	posts := &failingGateway[model.Post]{err: errBackendDown}
	users := &failingGateway[model.User]{err: errBackendDown}
	comments := &failingGateway[model.Comment]{err: errBackendDown}
	svc := NewCommentService(comments, posts, users, testLogger())

	_, err := svc.Create(context.Background(), "hi", 1, 1)

	assert.ErrorIs(t, err, errBackendDown)
	assert.Equal(t, 1, posts.calls)
	assert.Zero(t, users.calls, "author lookup must not run after the post lookup failed")
	assert.Zero(t, comments.calls)
}

// =========================================================================
// FIELD CHECKS
// =========================================================================

func TestCreateRejectsBlankFields(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice, err := svc.Users.Create(ctx, "alice", "a@x.com")
	require.NoError(t, err)
	post, err := svc.Posts.Create(ctx, "T", "C", alice.ID)
	require.NoError(t, err)

	tests := []struct {
		name      string
		create    func() error
		wantField string
	}{
		{"empty username", func() error { _, err := svc.Users.Create(ctx, "", "b@x.com"); return err }, "username"},
		{"blank email", func() error { _, err := svc.Users.Create(ctx, "bob", "   "); return err }, "email"},
		{"both empty reports username", func() error { _, err := svc.Users.Create(ctx, "", ""); return err }, "username"},
		{"blank title", func() error { _, err := svc.Posts.Create(ctx, "\t", "C", alice.ID); return err }, "title"},
		{"empty content", func() error { _, err := svc.Posts.Create(ctx, "T", "", alice.ID); return err }, "content"},
		{"empty comment", func() error { _, err := svc.Comments.Create(ctx, "", post.ID, alice.ID); return err }, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create()

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.wantField, appErr.Field)
		})
	}

	users, _ := svc.Users.GetAll(ctx)
	posts, _ := svc.Posts.GetAll(ctx)
	comments, _ := svc.Comments.GetAll(ctx)
	assert.Len(t, users, 1)
	assert.Len(t, posts, 1)
	assert.Empty(t, comments)
}

func TestBlankFieldsCheckedBeforeStorage(t *testing.T) {
	users := &failingGateway[model.User]{err: errBackendDown}
	posts := &failingGateway[model.Post]{err: errBackendDown}
	svc := NewPostService(posts, users, testLogger())

	_, err := svc.Create(context.Background(), "", "C", 1)

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Zero(t, users.calls)
	assert.Zero(t, posts.calls)
}

// =========================================================================
// DELETE
// =========================================================================

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice, _ := svc.Users.Create(ctx, "alice", "a@x.com")

	for range 2 {
		require.NoError(t, svc.Users.Delete(ctx, alice.ID))
		_, ok, err := svc.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	require.NoError(t, svc.Comments.Delete(ctx, 12345))
}

// =========================================================================
// STORAGE FAULTS
// =========================================================================

func TestStorageFaultsPassThrough(t *testing.T) {
	ctx := context.Background()
	users := &failingGateway[model.User]{err: errBackendDown}
	posts := &failingGateway[model.Post]{err: errBackendDown}
	svc := NewPostService(posts, users, testLogger())

	_, err := svc.Create(ctx, "T", "C", 1)
	assert.ErrorIs(t, err, errBackendDown)
	assert.Zero(t, posts.calls, "no insert after a failed author lookup")

	_, err = svc.GetAll(ctx)
	assert.ErrorIs(t, err, errBackendDown)

	_, _, err = svc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, errBackendDown)

	err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, errBackendDown)

	userSvc := NewUserService(users, testLogger())
	_, err = userSvc.Create(ctx, "alice", "a@x.com")
	assert.ErrorIs(t, err, errBackendDown)
}
