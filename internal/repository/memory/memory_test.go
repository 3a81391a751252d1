package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice, err := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))
	require.NoError(t, err)
	bob, err := s.Users().Create(ctx, model.NewUser("bob", "b@x.com"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), alice.ID)
	assert.Equal(t, int64(2), bob.ID)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))
	require.NoError(t, err)
	require.NoError(t, s.Users().Delete(ctx, first.ID))

	second, err := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestGetByIDAbsent(t *testing.T) {
	s := New()

	_, ok, err := s.Posts().GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetAllInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, name := range []string{"c", "a", "b"} {
		_, err := s.Users().Create(ctx, model.NewUser(name, name+"@x.com"))
		require.NoError(t, err)
	}

	users, err := s.Users().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "c", users[0].Username)
	assert.Equal(t, "a", users[1].Username)
	assert.Equal(t, "b", users[2].Username)
}

func TestGetAllEmptyIsNotNil(t *testing.T) {
	comments, err := New().Comments().GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestUniqueUserConstraints(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))
	require.NoError(t, err)

	tests := []struct {
		name string
		user model.User
	}{
		{"duplicate username", model.NewUser("alice", "other@x.com")},
		{"duplicate email", model.NewUser("other", "a@x.com")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Users().Create(ctx, tt.user)
			assert.ErrorIs(t, err, apperror.ErrConflict)
		})
	}

	users, err := s.Users().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, err := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))
	require.NoError(t, err)

	require.NoError(t, s.Users().Delete(ctx, u.ID))
	require.NoError(t, s.Users().Delete(ctx, u.ID))
	require.NoError(t, s.Users().Delete(ctx, 9999))

	_, ok, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteUserCascades(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice, _ := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))
	bob, _ := s.Users().Create(ctx, model.NewUser("bob", "b@x.com"))
	alicePost, _ := s.Posts().Create(ctx, model.NewPost("T", "C", alice.ID))
	bobPost, _ := s.Posts().Create(ctx, model.NewPost("T2", "C2", bob.ID))
	// bob comments on alice's post, alice comments on bob's post
	_, _ = s.Comments().Create(ctx, model.NewComment("nice", alicePost.ID, bob.ID))
	_, _ = s.Comments().Create(ctx, model.NewComment("thanks", bobPost.ID, alice.ID))
	bobOnOwn, _ := s.Comments().Create(ctx, model.NewComment("self", bobPost.ID, bob.ID))

	require.NoError(t, s.Users().Delete(ctx, alice.ID))

	posts, _ := s.Posts().GetAll(ctx)
	assert.Equal(t, []model.Post{bobPost}, posts)

	comments, _ := s.Comments().GetAll(ctx)
	assert.Equal(t, []model.Comment{bobOnOwn}, comments)
}

func TestDeletePostCascadesButKeepsAuthor(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice, _ := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))
	post, _ := s.Posts().Create(ctx, model.NewPost("T", "C", alice.ID))
	_, _ = s.Comments().Create(ctx, model.NewComment("nice", post.ID, alice.ID))

	require.NoError(t, s.Posts().Delete(ctx, post.ID))

	comments, _ := s.Comments().GetAll(ctx)
	assert.Empty(t, comments)

	got, ok, err := s.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, alice, got)
}

func TestConcurrentCreates(t *testing.T) {
	s := New()
	ctx := context.Background()
	author, _ := s.Users().Create(ctx, model.NewUser("alice", "a@x.com"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Posts().Create(ctx, model.NewPost("T", "C", author.ID))
		}()
	}
	wg.Wait()

	posts, err := s.Posts().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 50)

	seen := make(map[int64]bool)
	for _, p := range posts {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}
