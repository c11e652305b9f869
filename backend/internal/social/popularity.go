package social

import "math"

// ============================================================================
// Popularity Scoring
// ============================================================================

// Popularity computes a user's popularity score from the current population:
//
//	score = round(uniqueFriendCount + 0.5 * sharedHobbyCount)
//
// where sharedHobbyCount sums, over every resolvable friend, the size of the
// hobby intersection between the user and that friend. Rounding is
// round-half-away-from-zero (math.Round). A user with no friends and no
// shared hobbies scores exactly 0; otherwise the result is clamped at 0.
//
// A friend id with no matching record in all is skipped rather than treated
// as an error, so the score degrades gracefully under referential drift.
// The function is pure and independent of the ordering of all.
func Popularity(u *User, all []*User) int {
	byID := make(map[string]*User, len(all))
	for _, other := range all {
		byID[other.ID] = other
	}

	uniqueFriends := len(u.Friends)
	shared := 0.0
	for _, friendID := range u.Friends {
		friend, ok := byID[friendID]
		if !ok {
			continue
		}
		shared += float64(countSharedHobbies(u, friend))
	}

	if uniqueFriends == 0 && shared == 0 {
		return 0
	}

	score := int(math.Round(float64(uniqueFriends) + 0.5*shared))
	if score < 0 {
		return 0
	}
	return score
}

// countSharedHobbies returns the size of the hobby set intersection
func countSharedHobbies(a, b *User) int {
	if len(a.Hobbies) == 0 || len(b.Hobbies) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a.Hobbies))
	for _, h := range a.Hobbies {
		set[h] = struct{}{}
	}
	count := 0
	for _, h := range b.Hobbies {
		if _, ok := set[h]; ok {
			count++
		}
	}
	return count
}
