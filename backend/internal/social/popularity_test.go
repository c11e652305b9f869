package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopularity_NoFriendsNoHobbies(t *testing.T) {
	u := &User{ID: "a", Friends: []string{}, Hobbies: []string{}}
	assert.Equal(t, 0, Popularity(u, []*User{u}))
}

func TestPopularity_HobbiesButNoFriends(t *testing.T) {
	u := &User{ID: "a", Hobbies: []string{"chess", "ski"}}
	assert.Equal(t, 0, Popularity(u, []*User{u}))
}

func TestPopularity_TwoFriendsNoSharedHobbies(t *testing.T) {
	a := &User{ID: "a", Friends: []string{"b", "c"}, Hobbies: []string{"chess"}}
	b := &User{ID: "b", Friends: []string{"a"}, Hobbies: []string{"ski"}}
	c := &User{ID: "c", Friends: []string{"a"}, Hobbies: []string{"golf"}}

	assert.Equal(t, 2, Popularity(a, []*User{a, b, c}))
}

func TestPopularity_OneFriendTwoSharedHobbies(t *testing.T) {
	a := &User{ID: "a", Friends: []string{"b"}, Hobbies: []string{"chess", "ski"}}
	b := &User{ID: "b", Friends: []string{"a"}, Hobbies: []string{"chess", "ski", "golf"}}

	// raw = 1 + 0.5*2 = 2
	assert.Equal(t, 2, Popularity(a, []*User{a, b}))
}

func TestPopularity_HalfRoundsAwayFromZero(t *testing.T) {
	a := &User{ID: "a", Friends: []string{"b"}, Hobbies: []string{"chess"}}
	b := &User{ID: "b", Friends: []string{"a"}, Hobbies: []string{"chess", "ski"}}

	// raw = 1 + 0.5*1 = 1.5, rounds to 2
	assert.Equal(t, 2, Popularity(a, []*User{a, b}))
}

func TestPopularity_DanglingFriendSkipped(t *testing.T) {
	a := &User{ID: "a", Friends: []string{"gone", "b"}, Hobbies: []string{"chess"}}
	b := &User{ID: "b", Friends: []string{"a"}, Hobbies: []string{"chess"}}

	// "gone" contributes to the friend count but nothing to shared hobbies
	// raw = 2 + 0.5*1 = 2.5, rounds to 3
	assert.Equal(t, 3, Popularity(a, []*User{a, b}))
}

func TestPopularity_OrderIndependent(t *testing.T) {
	a := &User{ID: "a", Friends: []string{"b", "c"}, Hobbies: []string{"chess", "ski"}}
	b := &User{ID: "b", Friends: []string{"a"}, Hobbies: []string{"chess"}}
	c := &User{ID: "c", Friends: []string{"a"}, Hobbies: []string{"ski", "golf"}}

	want := Popularity(a, []*User{a, b, c})
	assert.Equal(t, want, Popularity(a, []*User{c, a, b}))
	assert.Equal(t, want, Popularity(a, []*User{b, c, a}))
}

func TestPopularity_NoSideEffects(t *testing.T) {
	a := &User{ID: "a", Friends: []string{"b"}, Hobbies: []string{"chess"}, PopularityScore: 99}
	b := &User{ID: "b", Friends: []string{"a"}, Hobbies: []string{"chess"}}
	all := []*User{a, b}

	Popularity(a, all)

	assert.Equal(t, 99, a.PopularityScore)
	assert.Equal(t, []string{"b"}, a.Friends)
	assert.Equal(t, []string{"chess"}, a.Hobbies)
}
