package handler

import "strconv"

// versionTag renders a tree version as a strong ETag accepted back in If-Match.
func versionTag(version int64) string {
	return `"` + strconv.FormatInt(version, 10) + `"`
}
