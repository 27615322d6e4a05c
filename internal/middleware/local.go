package middleware

import (
	"fmt"
	"net/url"
)

var localHostnames = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
}

// IsLocal reports whether the database connection URL points at a local
// development database. The rate-limit gate uses this to decide whether a
// request without a client address may pass. Malformed URLs are an error.
func IsLocal(dbURL string) (bool, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return false, err
	}
	if u.Scheme == "" {
		return false, fmt.Errorf("invalid database URL %q: missing scheme", dbURL)
	}
	return localHostnames[u.Hostname()], nil
}
