package routes

import "strings"

// Matches reports whether prefix matches path on segment boundaries.
//
// Letters are compared ASCII case-insensitively; other bytes must match
// exactly. Any query string or fragment on path is ignored. "/two" matches "/two", "/two/" and "/TWO/sub" but not
// "/twofold". A trailing slash on the prefix is ignored and the prefix "/"
// matches every absolute path.
func Matches(prefix, path string) bool {
	path = stripQuery(path)
	prefix = normalizePrefix(prefix)

	if prefix == "" {
		return strings.HasPrefix(path, "/")
	}
	if len(path) < len(prefix) {
		return false
	}
	if !equalFoldASCII(path[:len(prefix)], prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}

// normalizePrefix returns prefix with a leading slash and without trailing
// slashes. The root prefix normalises to "".
func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}

// equalFoldASCII compares a and b, which have the same length, folding
// only ASCII letters
func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
