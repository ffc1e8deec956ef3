package chain

import "strings"

// The two encodings below rewrite a logical statement into the nested form
// the first-hop server understands. Both route execution to the last hop of
// the chain and assume each hop's impersonation login before anything else
// runs there; they differ only in how the remote indirection is phrased.
//
// OPENQUERY treats each remote call as an opaque string literal evaluated by
// the next hop, so every wrapping level must re-escape all quote characters
// of the levels inside it: the literal delimiter at nesting depth d is a run
// of 2^d apostrophes. EXEC AT requires valid T-SQL at every level and only
// doubles apostrophes once per level, which compounds to the same growth.

// directSentinel stands in for the directly-reachable server at the head of
// the working hop list. It is never emitted into the output.
const directSentinel = "0"

// EncodeDistributedQuery builds the nested OPENQUERY form of stmt. An empty
// chain returns the statement unchanged.
func (c *Chain) EncodeDistributedQuery(stmt string) string {
	servers := make([]string, 0, len(c.servers)+1)
	servers = append(servers, directSentinel)
	logins := make([]string, 0, len(c.servers))
	for _, srv := range c.servers {
		servers = append(servers, srv.Name)
		logins = append(logins, srv.ImpersonationLogin)
	}

	return encodeOpenQuery(servers, logins, stmt, 0)
}

// encodeOpenQuery peels the frontmost element off the working list. While
// more than one element remains, it asks the next hop to evaluate the encoded
// remainder as a string literal delimited by 2^depth apostrophes. The login
// consumed at each level belongs to the hop evaluating that literal, so its
// EXECUTE AS preamble is placed inside the literal and escaped one level
// deeper. The base case escapes the original statement with the closed-form
// 2^depth multiplier; a login still pending there wraps the statement for the
// frontmost element itself (only reachable for the direct connection).
func encodeOpenQuery(servers, logins []string, stmt string, depth int) string {
	var login string
	if len(logins) > 0 {
		login = logins[0]
		logins = logins[1:]
	}

	ticks := strings.Repeat("'", 1<<depth)

	if len(servers) == 1 {
		q := stmt
		if login != "" {
			q = impersonationWrap(q, login)
		}
		return strings.ReplaceAll(q, "'", ticks)
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM OPENQUERY(")
	b.WriteString("[" + servers[1] + "], ")
	b.WriteString(ticks)

	if login != "" {
		innerTicks := strings.Repeat("'", 1<<(depth+1))
		preamble := "EXECUTE AS LOGIN = '" + login + "'; "
		b.WriteString(strings.ReplaceAll(preamble, "'", innerTicks))
	}

	b.WriteString(encodeOpenQuery(servers[1:], logins, stmt, depth+1))

	if login != "" {
		b.WriteString(" REVERT;")
	}

	b.WriteString(ticks)
	b.WriteString(")")

	return b.String()
}

// EncodeRemoteProcedure builds the nested EXEC AT form of stmt, walking the
// chain from the final hop outward. Each level wraps the accumulated text
// with that hop's impersonation preamble if present, doubles every apostrophe
// once, and embeds the result as the ad hoc batch executed at that hop. An
// empty chain returns the statement unchanged.
func (c *Chain) EncodeRemoteProcedure(stmt string) string {
	current := stmt

	for i := len(c.servers) - 1; i >= 0; i-- {
		srv := c.servers[i]

		if srv.ImpersonationLogin != "" {
			current = impersonationWrap(current, srv.ImpersonationLogin)
		}

		escaped := strings.ReplaceAll(current, "'", "''")
		current = "EXEC ('" + escaped + " ') AT [" + srv.Name + "]"
	}

	return current
}

// impersonationWrap brackets a statement with EXECUTE AS LOGIN / REVERT.
// Trailing semicolons are trimmed first so the wrap never produces an empty
// batch between separators.
func impersonationWrap(stmt, login string) string {
	return "EXECUTE AS LOGIN = '" + login + "'; " + strings.TrimRight(stmt, ";") + "; REVERT;"
}
