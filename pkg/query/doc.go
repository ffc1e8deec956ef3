// Package query drives statement execution over a single SQL Server
// connection, rewriting statements for the active linked-server chain and
// adapting the encoding strategy to what the hops actually support.
package query
