package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgraph/backend/internal/social"
	"socialgraph/backend/internal/store"
	"socialgraph/backend/pkg/errors"
)

func newTestService(t *testing.T) (*social.UserService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return social.NewUserService(st, nil), st
}

func mustCreate(t *testing.T, svc *social.UserService, username string, hobbies ...string) *social.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), username, 30, hobbies)
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.CreateUser(context.Background(), "alice", 30, []string{"chess", "chess", "ski"})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 30, u.Age)
	assert.Empty(t, u.Friends)
	assert.Equal(t, []string{"chess", "ski"}, u.Hobbies, "hobbies are deduplicated preserving order")
	assert.Equal(t, 0, u.PopularityScore)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestLinkFriend_Symmetry(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob")

	_, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	storedAlice, err := st.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	storedBob, err := st.FindByID(ctx, bob.ID)
	require.NoError(t, err)

	assert.True(t, storedAlice.HasFriend(bob.ID))
	assert.True(t, storedBob.HasFriend(alice.ID))
}

func TestLinkFriend_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob")

	_, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	storedAlice, _ := st.FindByID(ctx, alice.ID)
	storedBob, _ := st.FindByID(ctx, bob.ID)
	assert.Len(t, storedAlice.Friends, 1)
	assert.Len(t, storedBob.Friends, 1)
}

func TestLinkFriend_HealsPartialLink(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob")

	// seed a one-sided link directly in storage
	alice.Friends = []string{bob.ID}
	_, err := st.Save(ctx, alice)
	require.NoError(t, err)

	_, err = svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	storedAlice, _ := st.FindByID(ctx, alice.ID)
	storedBob, _ := st.FindByID(ctx, bob.ID)
	assert.Equal(t, []string{bob.ID}, storedAlice.Friends)
	assert.Equal(t, []string{alice.ID}, storedBob.Friends)
}

func TestLinkFriend_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	alice := mustCreate(t, svc, "alice")

	_, err := svc.LinkFriend(ctx, alice.ID, "missing")
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.LinkFriend(ctx, "missing", alice.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestLinkFriend_PersistsBothScores(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice", "chess")
	bob := mustCreate(t, svc, "bob", "chess", "ski")

	linked, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// 1 friend + 0.5*1 shared hobby = 1.5 -> 2, for both sides
	assert.Equal(t, 2, linked.PopularityScore)
	storedBob, _ := st.FindByID(ctx, bob.ID)
	assert.Equal(t, 2, storedBob.PopularityScore)
}

func TestUnlinkFriend_RemovesBothDirections(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob")

	_, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	unlinked, err := svc.UnlinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, unlinked.Friends)

	storedBob, _ := st.FindByID(ctx, bob.ID)
	assert.Empty(t, storedBob.Friends)
}

func TestUnlinkFriend_MissingEntryIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob")

	_, err := svc.UnlinkFriend(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
}

func TestUnlinkFriend_DoesNotRecomputeScores(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice", "chess")
	bob := mustCreate(t, svc, "bob", "chess", "ski")

	_, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	unlinked, err := svc.UnlinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// the cached scores from before the unlink stay in place until the next
	// scoring mutation refreshes them
	assert.Equal(t, 2, unlinked.PopularityScore)
	storedBob, _ := st.FindByID(ctx, bob.ID)
	assert.Equal(t, 2, storedBob.PopularityScore)
}

func TestDeleteUser_ConflictWhileLinked(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob")

	_, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, alice.ID)
	assert.True(t, errors.IsConflict(err))

	// unlink first, then deletion succeeds
	_, err = svc.UnlinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteUser(ctx, alice.ID))

	_, err = svc.GetUser(ctx, alice.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.DeleteUser(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestAddHobby_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	alice := mustCreate(t, svc, "alice")

	first, err := svc.AddHobby(ctx, alice.ID, "chess")
	require.NoError(t, err)
	second, err := svc.AddHobby(ctx, alice.ID, "chess")
	require.NoError(t, err)

	assert.Equal(t, first.Hobbies, second.Hobbies)
	assert.Equal(t, first.PopularityScore, second.PopularityScore)
	assert.Equal(t, []string{"chess"}, second.Hobbies)
}

func TestAddHobby_CascadesToFriends(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob", "chess")

	_, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	updated, err := svc.AddHobby(ctx, alice.ID, "chess")
	require.NoError(t, err)

	// both sides now share one hobby: 1 + 0.5*1 = 1.5 -> 2
	assert.Equal(t, 2, updated.PopularityScore)
	storedBob, _ := st.FindByID(ctx, bob.ID)
	assert.Equal(t, 2, storedBob.PopularityScore)
}

func TestAddHobby_DanglingFriendIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice")

	// seed a friend id with no backing record directly in storage
	alice.Friends = []string{"gone"}
	_, err := st.Save(ctx, alice)
	require.NoError(t, err)

	_, err = svc.AddHobby(ctx, alice.ID, "chess")
	assert.True(t, errors.IsNotFound(err))
}

func TestAddHobby_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddHobby(context.Background(), "missing", "chess")
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdateDetails_RecomputesScore(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice")
	bob := mustCreate(t, svc, "bob", "chess")

	_, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateDetails(ctx, alice.ID, "alicia", 31, []string{"chess"})
	require.NoError(t, err)

	assert.Equal(t, "alicia", updated.Username)
	assert.Equal(t, 31, updated.Age)
	// 1 friend + 0.5*1 shared = 1.5 -> 2
	assert.Equal(t, 2, updated.PopularityScore)

	stored, _ := st.FindByID(ctx, alice.ID)
	assert.Equal(t, 2, stored.PopularityScore)
}

func TestListUsers_FreshScoresNotPersisted(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)
	alice := mustCreate(t, svc, "alice", "chess")
	bob := mustCreate(t, svc, "bob", "chess")

	// seed a link directly in storage, bypassing score recomputation
	alice.Friends = []string{bob.ID}
	bob.Friends = []string{alice.ID}
	_, err := st.Save(ctx, alice)
	require.NoError(t, err)
	_, err = st.Save(ctx, bob)
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	for _, u := range users {
		assert.Equal(t, 2, u.PopularityScore, "listing computes fresh scores")
	}

	stored, _ := st.FindByID(ctx, alice.ID)
	assert.Equal(t, 0, stored.PopularityScore, "listing must not persist scores")
}

func TestListHobbies_DistinctFirstSeenOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	mustCreate(t, svc, "alice", "chess", "ski")
	mustCreate(t, svc, "bob", "ski", "golf")

	hobbies, err := svc.ListHobbies(ctx)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"chess", "ski", "golf"}, hobbies)
	assert.Len(t, hobbies, 3)
}

func TestEndToEnd_AliceAndBob(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	alice := mustCreate(t, svc, "Alice", "chess")
	bob := mustCreate(t, svc, "Bob", "chess", "ski")

	linked, err := svc.LinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, linked.PopularityScore)

	storedBob, err := svc.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, storedBob.PopularityScore)

	unlinked, err := svc.UnlinkFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, unlinked.Friends)
	assert.Equal(t, 2, unlinked.PopularityScore)

	storedBob, err = svc.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, storedBob.Friends)
	assert.Equal(t, 2, storedBob.PopularityScore)
}
