// Package metadata persists useray's client records.
//
// # Overview
//
// The package defines a Repository interface over an in-memory mapping of id
// to models.Client, and a FileRepository that backs it with a single JSON
// document (clients.json) in the configuration directory.
//
// # File format
//
// The document is an object keyed by client id:
//
//	{
//	    "6ba7b810-9dad-11d1-80b4-00c04fd430c8": {
//	        "duration": 2592000,
//	        "id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
//	        "level": 1,
//	        "name": "alice",
//	        "start_date": 1700000000
//	    }
//	}
//
// start_date and revoked_at are epoch seconds, duration is seconds. Derived
// fields (end_date, is_expired) are never written; when an older file carries
// them they are ignored on load and recomputed from the stored facts.
//
// # Concurrency
//
// FileRepository assumes a single writer and is not safe for concurrent use.
package metadata
