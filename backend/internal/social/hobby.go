package social

import (
	"context"

	"go.uber.org/zap"
)

// ============================================================================
// Hobby Operations
// ============================================================================

// AddHobby tags a user with a hobby. Re-adding an existing hobby is a silent
// no-op. The user's popularity score and the scores of every direct friend
// are recomputed against a single snapshot and persisted, since shared-hobby
// counts feed the neighbors' scores too.
//
// A friend id that no longer resolves in storage is a hard error here,
// unlike the scorer's drift tolerance: the cascade refuses to persist scores
// derived from an inconsistent friend set. Returns the updated user.
func (s *UserService) AddHobby(ctx context.Context, userID, hobby string) (*User, error) {
	s.logger.Info("adding hobby", zap.String("user", userID), zap.String("hobby", hobby))

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.AddHobby(hobby) {
		s.logger.Debug("hobby already present", zap.String("user", userID), zap.String("hobby", hobby))
	}

	snapshot, err := s.snapshotWith(ctx, user)
	if err != nil {
		return nil, err
	}
	user.PopularityScore = Popularity(user, snapshot)

	saved, err := s.store.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	for _, friendID := range user.Friends {
		friend, err := s.store.FindByID(ctx, friendID)
		if err != nil {
			return nil, err
		}
		friend.PopularityScore = Popularity(friend, snapshot)
		if _, err := s.store.Save(ctx, friend); err != nil {
			return nil, err
		}
	}

	s.invalidateGraph(ctx)
	s.logger.Debug("hobby added", zap.String("user", userID), zap.String("hobby", hobby))
	return saved, nil
}

// ListHobbies returns every distinct hobby across the population, in the
// order each one was first seen
func (s *UserService) ListHobbies(ctx context.Context) ([]string, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	hobbies := []string{}
	for _, u := range all {
		for _, h := range u.Hobbies {
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			hobbies = append(hobbies, h)
		}
	}
	return hobbies, nil
}
