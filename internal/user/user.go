// Package user names the person running taskboard
package user

import (
	"os"
	osuser "os/user"
	"strings"
)

var current = osuser.Current

// DisplayName returns the account's full name, falling back to the login
// name, then $USER, then "unknown". It never returns "".
func DisplayName() string {
	if u, err := current(); err == nil {
		// GECOS fields are comma separated; the first is the full name
		full, _, _ := strings.Cut(u.Name, ",")
		if full = strings.TrimSpace(full); full != "" {
			return full
		}
		if u.Username != "" {
			return u.Username
		}
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
