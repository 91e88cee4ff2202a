package template

import "strings"

// resolvePath resolves a dot-separated variable path against the data
// context. The literal path "." returns the reserved current-iteration
// element, which only exists mid-iteration. Resolution walks the context
// field by field; any non-object intermediate stops the walk and yields
// not-found. Array indexing is not supported in paths - arrays are only
// reachable through section iteration.
func resolvePath(data map[string]any, path string) (any, bool) {
	if path == "." {
		v, ok := data["."]
		return v, ok
	}

	var current any = data
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
