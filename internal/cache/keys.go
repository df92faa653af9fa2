package cache

import "strings"

const (
	GlobalKeyPrefix = "companion"

	// Well-known per-learner key names.
	CourseProgressKey = "courseProgress"
	AuxIndexKey       = "auxIndex"
)

// GenerateStoreKey builds the storage key for one learner-scoped value:
// <prefix>:<learnerID>:<name>. An empty prefix falls back to GlobalKeyPrefix.
// If parts are provided, they are joined by ":" and appended.
func GenerateStoreKey(prefix, learnerID, name string, parts ...string) string {
	if prefix == "" {
		prefix = GlobalKeyPrefix
	}
	baseKey := strings.Join([]string{prefix, learnerID, name}, ":")
	if len(parts) > 0 {
		return strings.Join(append([]string{baseKey}, parts...), ":")
	}
	return baseKey
}
