package store

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"socialgraph/backend/internal/social"
)

// ============================================================================
// Record Helpers
// ============================================================================

func userFromRecord(record *neo4j.Record) *social.User {
	u := &social.User{
		ID:              getStringFromRecord(record, "id"),
		Username:        getStringFromRecord(record, "username"),
		Age:             getIntFromRecord(record, "age"),
		Friends:         getStringSliceFromRecord(record, "friends"),
		Hobbies:         getStringSliceFromRecord(record, "hobbies"),
		PopularityScore: getIntFromRecord(record, "popularity_score"),
	}
	return u
}

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getIntFromRecord(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	if i, ok := val.(int); ok {
		return i
	}
	return 0
}

func getStringSliceFromRecord(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return []string{}
	}
	if slice, ok := val.([]interface{}); ok {
		result := make([]string, 0, len(slice))
		for _, v := range slice {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}
