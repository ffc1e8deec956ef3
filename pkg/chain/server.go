package chain

import (
	"fmt"
	"strings"
)

// Server is a single linked server hop. Name is the identifier by which the
// previous hop in the chain knows this server; ImpersonationLogin, when set,
// is the login assumed (EXECUTE AS LOGIN) before anything else runs there.
//
// Servers are immutable once constructed.
type Server struct {
	Name               string
	ImpersonationLogin string
}

// NewServer validates and constructs a hop. The name must be non-empty after
// trimming.
func NewServer(name, impersonationLogin string) (Server, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Server{}, fmt.Errorf("server name cannot be empty")
	}

	return Server{
		Name:               name,
		ImpersonationLogin: strings.TrimSpace(impersonationLogin),
	}, nil
}

// ParseServer parses a single chain token of the form "name[:login]".
// The token is split on the first colon; a missing login is not an error.
func ParseServer(token string) (Server, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Server{}, fmt.Errorf("server token cannot be empty")
	}

	name, login, _ := strings.Cut(token, ":")
	return NewServer(name, login)
}

// String returns the token form, round-tripping with ParseServer.
func (s Server) String() string {
	if s.ImpersonationLogin != "" {
		return s.Name + ":" + s.ImpersonationLogin
	}
	return s.Name
}
