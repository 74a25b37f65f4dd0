// Package accesslist reads and rewrites the access-control section of a proxy
// server's JSON configuration (V2Ray-style).
//
// The proxy document is foreign: useray neither creates it nor understands
// most of it. Only one array is touched, located by a gjson path (by default
// "inbounds.0.settings.clients"). Edits are applied to the raw bytes with
// sjson, so listeners, routing rules and everything else in the document
// come out of a rewrite exactly as they went in.
//
// Each entry useray writes has the form
//
//	{"id":"<uuid>","level":1,"alterId":0}
//
// where alterId is a fixed compatibility field expected by older servers.
//
// Mutations follow a read-modify-write cycle against the file on disk. There
// is no locking; useray must be the only writer while it runs.
package accesslist
