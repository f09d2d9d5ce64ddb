package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate-go/internal/models"
)

func friendIDs(t *testing.T, f *serviceFixture, userID uint) []uint {
	t.Helper()
	friends, err := f.users.GetFriends(context.Background(), userID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(friends))
	for _, friend := range friends {
		ids = append(ids, friend.ID)
	}
	return ids
}

func TestAddFriendIsSymmetric(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")

	require.NoError(t, f.users.AddFriend(context.Background(), alice.ID, bob.ID))

	assert.Contains(t, friendIDs(t, f, alice.ID), bob.ID)
	assert.Contains(t, friendIDs(t, f, bob.ID), alice.ID)
}

func TestAddFriendIsIdempotent(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")

	require.NoError(t, f.users.AddFriend(context.Background(), alice.ID, bob.ID))
	require.NoError(t, f.users.AddFriend(context.Background(), alice.ID, bob.ID))

	assert.Equal(t, []uint{bob.ID}, friendIDs(t, f, alice.ID))
	assert.Equal(t, []uint{alice.ID}, friendIDs(t, f, bob.ID))
}

func TestRemoveFriendDissolvesBothDirections(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")

	require.NoError(t, f.users.AddFriend(context.Background(), alice.ID, bob.ID))
	require.NoError(t, f.users.RemoveFriend(context.Background(), bob.ID, alice.ID))

	assert.Empty(t, friendIDs(t, f, alice.ID))
	assert.Empty(t, friendIDs(t, f, bob.ID))
}

func TestRemoveFriendAbsentFriendshipIsNoOp(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")

	assert.NoError(t, f.users.RemoveFriend(context.Background(), alice.ID, bob.ID))
	assert.Empty(t, friendIDs(t, f, alice.ID))
}

func TestRemoveFriendUnknownUserFails(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")

	err := f.users.RemoveFriend(context.Background(), alice.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddFriendSelfAlwaysInvalid(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")

	assert.ErrorIs(t, f.users.AddFriend(context.Background(), alice.ID, alice.ID), ErrSelfFriendship)
	// Even for an id that does not exist at all.
	assert.ErrorIs(t, f.users.AddFriend(context.Background(), 9999, 9999), ErrSelfFriendship)
}

func TestAddFriendUnknownUserLeavesNoPartialState(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")

	err := f.users.AddFriend(context.Background(), alice.ID, 9999)
	require.ErrorIs(t, err, ErrUserNotFound)

	assert.Empty(t, friendIDs(t, f, alice.ID))
}

func TestCommonFriendsIsCommutative(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")
	carol := f.mustCreateUser(t, "carol")
	dave := f.mustCreateUser(t, "dave")

	ctx := context.Background()
	require.NoError(t, f.users.AddFriend(ctx, alice.ID, carol.ID))
	require.NoError(t, f.users.AddFriend(ctx, bob.ID, carol.ID))
	require.NoError(t, f.users.AddFriend(ctx, alice.ID, dave.ID))

	ab, err := f.users.GetCommonFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	ba, err := f.users.GetCommonFriends(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	require.Len(t, ab, 1)
	assert.Equal(t, carol.ID, ab[0].ID)
	assert.Equal(t, ab, ba)
}

func TestCommonFriendsDisjointSetsAreEmpty(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")
	carol := f.mustCreateUser(t, "carol")
	dave := f.mustCreateUser(t, "dave")

	ctx := context.Background()
	require.NoError(t, f.users.AddFriend(ctx, alice.ID, carol.ID))
	require.NoError(t, f.users.AddFriend(ctx, bob.ID, dave.ID))

	common, err := f.users.GetCommonFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, common)
}

func TestCommonFriendsUsesOwnListsNotTransitiveClosure(t *testing.T) {
	f := newServiceFixture()
	one := f.mustCreateUser(t, "one")
	two := f.mustCreateUser(t, "two")
	three := f.mustCreateUser(t, "three")

	ctx := context.Background()
	require.NoError(t, f.users.AddFriend(ctx, one.ID, two.ID))
	require.NoError(t, f.users.AddFriend(ctx, one.ID, three.ID))

	// 2 and 3 share the friend 1, and 1 is in both their friend lists.
	common, err := f.users.GetCommonFriends(ctx, two.ID, three.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, one.ID, common[0].ID)

	// 1's common friends with 2: 1's list is {2, 3}, 2's list is {1},
	// so the intersection is empty. No transitive reachability leaks in.
	common, err = f.users.GetCommonFriends(ctx, one.ID, two.ID)
	require.NoError(t, err)
	assert.Empty(t, common)
}

func TestCommonFriendsWithSelfDegeneratesToFriendList(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")

	ctx := context.Background()
	require.NoError(t, f.users.AddFriend(ctx, alice.ID, bob.ID))

	common, err := f.users.GetCommonFriends(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, bob.ID, common[0].ID)
}

func TestAddFriendPublishesActivityEvent(t *testing.T) {
	f := newServiceFixture()
	alice := f.mustCreateUser(t, "alice")
	bob := f.mustCreateUser(t, "bob")

	require.NoError(t, f.users.AddFriend(context.Background(), alice.ID, bob.ID))

	events := f.producer.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, alice.ID, events[0].UserID)
	assert.Equal(t, models.FeedEventFriend, events[0].EntityType)
	assert.Equal(t, models.FeedOperationAdd, events[0].Operation)
	assert.Equal(t, bob.ID, events[0].EntityID)
}

func TestCreateUserValidation(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		user models.User
	}{
		{"missing email", models.User{Login: "x", Birthday: models.NewDate(1990, time.January, 1)}},
		{"email without at sign", models.User{Email: "nope", Login: "x", Birthday: models.NewDate(1990, time.January, 1)}},
		{"empty login", models.User{Email: "a@b.c", Birthday: models.NewDate(1990, time.January, 1)}},
		{"login with space", models.User{Email: "a@b.c", Login: "bad login", Birthday: models.NewDate(1990, time.January, 1)}},
		{"future birthday", models.User{Email: "a@b.c", Login: "x", Birthday: models.NewDate(2099, time.January, 1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := tc.user
			_, err := f.users.Create(ctx, &user)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateUserEmptyNameFallsBackToLogin(t *testing.T) {
	f := newServiceFixture()
	user, err := f.users.Create(context.Background(), &models.User{
		Email:    "a@b.c",
		Login:    "cinephile",
		Birthday: models.NewDate(1990, time.January, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "cinephile", user.Name)
}
