package social

import "context"

// ============================================================================
// Social Graph Types
// ============================================================================

// User is a member of the social graph. Friendships are stored redundantly as
// matching id entries in both users' Friends slices; FriendshipManager-style
// operations on UserService are the only writers of both sides.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Age      int      `json:"age"`
	Friends  []string `json:"friends"`
	Hobbies  []string `json:"hobbies"`
	// PopularityScore is a cached projection of graph state, recomputed on
	// every scoring mutation. It is never authoritative on its own.
	PopularityScore int `json:"popularityScore"`
}

// NewUser creates a user with no friends, no hobbies and a zero score.
// The id is assigned by the store on first save.
func NewUser(username string, age int, hobbies []string) *User {
	u := &User{
		Username: username,
		Age:      age,
		Friends:  []string{},
		Hobbies:  []string{},
	}
	for _, h := range hobbies {
		u.AddHobby(h)
	}
	return u
}

// HasFriend reports whether friendID is already present in the friend set
func (u *User) HasFriend(friendID string) bool {
	for _, id := range u.Friends {
		if id == friendID {
			return true
		}
	}
	return false
}

// AddFriend appends friendID if absent and reports whether it was added
func (u *User) AddFriend(friendID string) bool {
	if u.HasFriend(friendID) {
		return false
	}
	u.Friends = append(u.Friends, friendID)
	return true
}

// RemoveFriend drops friendID from the friend set; a missing entry is a no-op
func (u *User) RemoveFriend(friendID string) {
	for i, id := range u.Friends {
		if id == friendID {
			u.Friends = append(u.Friends[:i], u.Friends[i+1:]...)
			return
		}
	}
}

// HasHobby reports whether the hobby tag is already present
func (u *User) HasHobby(hobby string) bool {
	for _, h := range u.Hobbies {
		if h == hobby {
			return true
		}
	}
	return false
}

// AddHobby appends the hobby if absent, preserving insertion order,
// and reports whether it was added
func (u *User) AddHobby(hobby string) bool {
	if u.HasHobby(hobby) {
		return false
	}
	u.Hobbies = append(u.Hobbies, hobby)
	return true
}

// Clone returns a deep copy so callers can mutate freely
func (u *User) Clone() *User {
	c := *u
	c.Friends = append([]string{}, u.Friends...)
	c.Hobbies = append([]string{}, u.Hobbies...)
	return &c
}

// GraphNode is a user projected for visualization
type GraphNode struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	PopularityScore int      `json:"popularityScore"`
	Hobbies         []string `json:"hobbies"`
}

// GraphEdge is an undirected friendship; source/target keep the orientation
// in which the edge was first discovered
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the deduplicated node-and-edge view of the user population
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ============================================================================
// Collaborator Contracts
// ============================================================================

// UserStore is the durable keyed storage of user records.
// Implementations must return defensive copies, assign an id on first save,
// and surface a missing id as *errors.ErrUserNotFound.
type UserStore interface {
	FindAll(ctx context.Context) ([]*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
	DeleteByID(ctx context.Context, id string) error
}

// GraphCache caches the projected graph between mutations.
// A (nil, nil) Get result is a cache miss.
type GraphCache interface {
	Get(ctx context.Context) (*Graph, error)
	Set(ctx context.Context, g *Graph) error
	Invalidate(ctx context.Context) error
}
