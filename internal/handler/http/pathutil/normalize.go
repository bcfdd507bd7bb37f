// Package pathutil maps request paths to a bounded set of metric labels.
package pathutil

import (
	"strings"
)

// OtherPath is the label for every path that is not a known route.
const OtherPath = "/other"

// knownPaths are the routes served by the reader.
var knownPaths = map[string]struct{}{
	"/":             {},
	"/feeds":        {},
	"/api/articles": {},
	"/api/topics":   {},
	"/api/feeds":    {},
	"/api/refresh":  {},
	"/health":       {},
	"/ready":        {},
	"/live":         {},
	"/metrics":      {},
}

// NormalizePath returns path when it names a known route and OtherPath otherwise.
// Query strings and a trailing slash are ignored.
//
// Examples:
//
//	NormalizePath("/api/articles?q=btc") // "/api/articles"
//	NormalizePath("/api/feeds/")         // "/api/feeds"
//	NormalizePath("/wp-login.php")       // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return OtherPath
}

// ExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func ExpectedCardinality() int {
	return len(knownPaths) + 1
}
