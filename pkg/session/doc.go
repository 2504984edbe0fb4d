// Package session serializes snapshot access per (session, tab) pair and
// wires an optional distributed lock for multi-replica deployments.
package session
