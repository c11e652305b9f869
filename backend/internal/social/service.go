package social

import (
	"context"

	"go.uber.org/zap"

	"socialgraph/backend/pkg/errors"
	"socialgraph/backend/pkg/logger"
)

// UserService owns every mutation of the social graph. All friendship and
// hobby writes go through it, which keeps the symmetric-link invariant and
// the cached popularity scores consistent with each other.
type UserService struct {
	store  UserStore
	cache  GraphCache // optional; nil disables graph caching
	logger *zap.Logger
}

// NewUserService creates a user service backed by the given store.
// cache may be nil.
func NewUserService(store UserStore, cache GraphCache) *UserService {
	return &UserService{
		store:  store,
		cache:  cache,
		logger: logger.Named("social"),
	}
}

// ListUsers returns the full population with freshly computed popularity
// scores. The computed scores are a read-time view and are not persisted.
func (s *UserService) ListUsers(ctx context.Context) ([]*User, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		u.PopularityScore = Popularity(u, all)
	}
	s.logger.Debug("listed users", zap.Int("count", len(all)))
	return all, nil
}

// GetUser returns a single user record
func (s *UserService) GetUser(ctx context.Context, id string) (*User, error) {
	return s.store.FindByID(ctx, id)
}

// CreateUser stores a new user with a storage-assigned id, no friends and a
// zero popularity score. Hobbies are deduplicated, preserving order.
func (s *UserService) CreateUser(ctx context.Context, username string, age int, hobbies []string) (*User, error) {
	s.logger.Info("creating user", zap.String("username", username))

	saved, err := s.store.Save(ctx, NewUser(username, age, hobbies))
	if err != nil {
		return nil, err
	}

	s.invalidateGraph(ctx)
	s.logger.Debug("user created", zap.String("id", saved.ID))
	return saved, nil
}

// UpdateDetails replaces username, age and hobbies, then recomputes and
// persists the user's popularity score against the current population.
func (s *UserService) UpdateDetails(ctx context.Context, id, username string, age int, hobbies []string) (*User, error) {
	s.logger.Info("updating user details", zap.String("id", id))

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.Age = age
	user.Hobbies = []string{}
	for _, h := range hobbies {
		user.AddHobby(h)
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

	s.invalidateGraph(ctx)
	return saved, nil
}

// DeleteUser removes a user. A user that still participates in any
// friendship cannot be deleted; callers must unlink first, which keeps
// peers' friend sets free of dangling ids.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	s.logger.Info("deleting user", zap.String("id", id))

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if len(user.Friends) > 0 {
		s.logger.Warn("deletion blocked, user still linked",
			zap.String("id", id),
			zap.Int("friends", len(user.Friends)),
		)
		return errors.NewStillLinked(id, len(user.Friends))
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidateGraph(ctx)
	s.logger.Debug("user deleted", zap.String("id", id))
	return nil
}

// snapshotWith returns one FindAll snapshot with the given in-flight records
// substituted in, so every score recomputed from it sees the same population
// state regardless of save order.
func (s *UserService) snapshotWith(ctx context.Context, mutated ...*User) ([]*User, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range mutated {
		replaced := false
		for i, u := range all {
			if u.ID == m.ID {
				all[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			all = append(all, m)
		}
	}
	return all, nil
}

// invalidateGraph drops the cached graph projection after a mutation.
// Cache failures are logged and swallowed; the projection is rebuilt from
// the store on the next read either way.
func (s *UserService) invalidateGraph(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate graph cache", zap.Error(err))
	}
}
