package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"socialgraph/backend/internal/social"
	"socialgraph/backend/pkg/errors"
	"socialgraph/backend/pkg/logger"
)

// Neo4jStore persists user records as :User nodes. Each record is a flat
// document: friends and hobbies live as list properties on the node, so the
// symmetric-link invariant stays owned by the service layer rather than by
// relationship queries.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4jStore creates a store on top of an already-verified driver
func NewNeo4jStore(driver neo4j.DriverWithContext) *Neo4jStore {
	return &Neo4jStore{
		driver: driver,
		logger: logger.Named("store"),
	}
}

// Close closes the underlying driver
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// FindAll returns every stored user
func (s *Neo4jStore) FindAll(ctx context.Context) ([]*social.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User)
		RETURN u.id as id, u.username as username, u.age as age,
		       u.friends as friends, u.hobbies as hobbies,
		       u.popularity_score as popularity_score
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	all := []*social.User{}
	for result.Next(ctx) {
		all = append(all, userFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user records: %w", err)
	}
	return all, nil
}

// FindByID returns the user with the given id
func (s *Neo4jStore) FindByID(ctx context.Context, id string) (*social.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $id})
		RETURN u.id as id, u.username as username, u.age as age,
		       u.friends as friends, u.hobbies as hobbies,
		       u.popularity_score as popularity_score
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to read user record: %w", err)
		}
		return nil, errors.NewUserNotFound(id)
	}
	return userFromRecord(result.Record()), nil
}

// Save upserts the user, assigning a uuid on first save, and returns the
// stored record
func (s *Neo4jStore) Save(ctx context.Context, user *social.User) (*social.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	stored := user.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	query := `
		MERGE (u:User {id: $id})
		SET u.username = $username,
		    u.age = $age,
		    u.friends = $friends,
		    u.hobbies = $hobbies,
		    u.popularity_score = $popularityScore
		RETURN u.id as id, u.username as username, u.age as age,
		       u.friends as friends, u.hobbies as hobbies,
		       u.popularity_score as popularity_score
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":              stored.ID,
		"username":        stored.Username,
		"age":             stored.Age,
		"friends":         stored.Friends,
		"hobbies":         stored.Hobbies,
		"popularityScore": stored.PopularityScore,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to read saved user: %w", err)
		}
		return nil, fmt.Errorf("save returned no record for user %s", stored.ID)
	}

	s.logger.Debug("user saved", zap.String("id", stored.ID))
	return userFromRecord(result.Record()), nil
}

// DeleteByID removes the user with the given id
func (s *Neo4jStore) DeleteByID(ctx context.Context, id string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $id})
		DETACH DELETE u
		RETURN count(u) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.Next(ctx) {
		if getIntFromRecord(result.Record(), "deleted") == 0 {
			return errors.NewUserNotFound(id)
		}
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	s.logger.Debug("user deleted", zap.String("id", id))
	return nil
}
