// Package chain models SQL Server linked-server chains and rewrites logical
// statements into the nested wire form a chained execution path requires.
//
// A Chain is the ordered hop list from the directly-reachable server to the
// final execution target; each hop may carry an impersonation login assumed
// on arrival. Two encodings are provided:
//
//   - EncodeDistributedQuery: nested OPENQUERY calls, each remote level
//     passed as an opaque string literal (delimiter doubles per level).
//   - EncodeRemoteProcedure: nested EXEC ('...') AT [server] calls, valid
//     T-SQL at every level.
//
// OPENQUERY works even when a hop has the RPC Out option disabled, while
// EXEC AT supports statements whose result shape SQL Server cannot determine
// up front. The executor in pkg/query picks between them.
package chain
