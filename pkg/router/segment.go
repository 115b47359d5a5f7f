package router

import "strings"

type segmentKind int

const (
	segStatic segmentKind = iota
	segDynamic
	segCatchAll
)

type segment struct {
	kind segmentKind
	name string
}

// parsePattern splits a route pattern into segments. Bracketed segments
// `[id]` are dynamic; `[...slug]` is a catch-all.
func parsePattern(pattern string) []segment {
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		switch {
		case strings.HasPrefix(part, "[...") && strings.HasSuffix(part, "]"):
			segments = append(segments, segment{kind: segCatchAll, name: part[4 : len(part)-1]})
		case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]"):
			segments = append(segments, segment{kind: segDynamic, name: part[1 : len(part)-1]})
		default:
			segments = append(segments, segment{kind: segStatic, name: part})
		}
	}
	return segments
}

// splitPath breaks a request path into segments; "/" yields none.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
