package routedoc

import "strings"

// composePath joins path segments in order. Empty segments contribute
// nothing, every other segment starts with exactly one slash at its joint,
// and a trailing slash on the last segment is kept. An all-empty input
// composes to "/".
//
// The same function produces live routes, namespaces and document keys,
// so a documented path can never drift from the registered one.
func composePath(segments ...string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		seg = strings.TrimLeft(seg, "/")
		if b.Len() == 0 || !strings.HasSuffix(b.String(), "/") {
			b.WriteByte('/')
		}
		b.WriteString(seg)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// toDocPath converts a Go 1.22 mux path like "/files/{path...}" or
// "/users/{$}" into its documented form. Only wildcard markers are
// stripped; everything else is left as registered.
func toDocPath(path string) string {
	path = strings.ReplaceAll(path, "{$}", "")
	return strings.ReplaceAll(path, "...}", "}")
}

// pathParamNames returns the names of {name} segments in path, in order.
func pathParamNames(path string) []string {
	var names []string
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return names
		}
		name := strings.TrimSuffix(path[start+1:start+end], "...")
		if name != "" && name != "$" {
			names = append(names, name)
		}
		path = path[start+end+1:]
	}
}
