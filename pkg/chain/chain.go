package chain

import (
	"fmt"
	"strings"
)

// Chain is the ordered path of linked server hops from the directly-reachable
// server (implicit, not itself a hop) to the final execution target. An empty
// chain means statements execute on the direct connection unchanged.
type Chain struct {
	servers []Server
}

// New returns an empty chain.
func New() *Chain {
	return &Chain{}
}

// Parse builds a chain from a comma-separated list of "name[:login]" tokens,
// e.g. "SQL02:webuser,SQL03". An empty or blank spec yields an empty chain.
func Parse(spec string) (*Chain, error) {
	c := New()
	if strings.TrimSpace(spec) == "" {
		return c, nil
	}

	for _, token := range strings.Split(spec, ",") {
		srv, err := ParseServer(token)
		if err != nil {
			return nil, fmt.Errorf("invalid chain spec %q: %w", spec, err)
		}
		c.servers = append(c.servers, srv)
	}

	return c, nil
}

// Append validates and adds a hop to the end of the chain.
func (c *Chain) Append(name, impersonationLogin string) error {
	srv, err := NewServer(name, impersonationLogin)
	if err != nil {
		return err
	}
	c.servers = append(c.servers, srv)
	return nil
}

// AppendServer adds an already-validated hop.
func (c *Chain) AppendServer(srv Server) {
	c.servers = append(c.servers, srv)
}

// IsEmpty reports whether the chain has no hops.
func (c *Chain) IsEmpty() bool {
	return len(c.servers) == 0
}

// Len returns the number of hops.
func (c *Chain) Len() int {
	return len(c.servers)
}

// Servers returns a copy of the hop list.
func (c *Chain) Servers() []Server {
	out := make([]Server, len(c.servers))
	copy(out, c.servers)
	return out
}

// Names returns the hop names only, in chain order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.servers))
	for i, srv := range c.servers {
		names[i] = srv.Name
	}
	return names
}

// Last returns the final execution target, if any.
func (c *Chain) Last() (Server, bool) {
	if len(c.servers) == 0 {
		return Server{}, false
	}
	return c.servers[len(c.servers)-1], true
}

// Clone returns an independent deep copy. Mutating the clone never affects
// the original chain.
func (c *Chain) Clone() *Chain {
	clone := &Chain{servers: make([]Server, len(c.servers))}
	copy(clone.servers, c.servers)
	return clone
}

// Reset removes every hop.
func (c *Chain) Reset() {
	c.servers = nil
}

// Spec returns the comma-separated token form, round-tripping with Parse.
func (c *Chain) Spec() string {
	parts := make([]string, len(c.servers))
	for i, srv := range c.servers {
		parts[i] = srv.String()
	}
	return strings.Join(parts, ",")
}

// String renders a human-readable trail, e.g. "SQL02 -> SQL03".
func (c *Chain) String() string {
	if c.IsEmpty() {
		return "(direct)"
	}
	return strings.Join(c.Names(), " -> ")
}
