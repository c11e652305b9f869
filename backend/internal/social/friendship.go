package social

import (
	"context"

	"go.uber.org/zap"
)

// ============================================================================
// Friendship Operations
// ============================================================================

// LinkFriend establishes the symmetric friendship between two users. The
// call is idempotent and self-healing: after it returns, both friend sets
// contain the other id exactly once, even if only one direction existed
// before. Both popularity scores are recomputed against a single snapshot
// and persisted, the friend's record first. Returns the updated user.
func (s *UserService) LinkFriend(ctx context.Context, userID, friendID string) (*User, error) {
	s.logger.Info("linking users", zap.String("user", userID), zap.String("friend", friendID))

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	friend, err := s.store.FindByID(ctx, friendID)
	if err != nil {
		return nil, err
	}

	user.AddFriend(friendID)
	friend.AddFriend(userID)

	snapshot, err := s.snapshotWith(ctx, user, friend)
	if err != nil {
		return nil, err
	}
	user.PopularityScore = Popularity(user, snapshot)
	friend.PopularityScore = Popularity(friend, snapshot)

	if _, err := s.store.Save(ctx, friend); err != nil {
		return nil, err
	}
	saved, err := s.store.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.invalidateGraph(ctx)
	s.logger.Debug("linked users", zap.String("user", userID), zap.String("friend", friendID))
	return saved, nil
}

// UnlinkFriend removes the friendship in both directions; a missing entry on
// either side is a no-op. Both records are persisted as-is: cached
// popularity scores are left untouched until the next scoring mutation
// refreshes them. Returns the updated user.
func (s *UserService) UnlinkFriend(ctx context.Context, userID, friendID string) (*User, error) {
	s.logger.Info("unlinking users", zap.String("user", userID), zap.String("friend", friendID))

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	friend, err := s.store.FindByID(ctx, friendID)
	if err != nil {
		return nil, err
	}

	user.RemoveFriend(friendID)
	friend.RemoveFriend(userID)

	if _, err := s.store.Save(ctx, friend); err != nil {
		return nil, err
	}
	saved, err := s.store.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.invalidateGraph(ctx)
	s.logger.Debug("unlinked users", zap.String("user", userID), zap.String("friend", friendID))
	return saved, nil
}
