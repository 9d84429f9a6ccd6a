// Package source loads interval collections from disk.
//
// A collection is a named list of intervals: the "ics" reference timescale
// or a regional biozone scheme such as "nalma". Collections are stored as
// JSON, YAML or TOML documents with a top-level "intervals" list:
//
//	intervals:
//	  - id: danian
//	    label: Danian
//	    start: 66.0
//	    end: 61.6
//	    rank: Age
//	    color: "#fdb462"
//
// JSON documents may also be a bare array of records. Records without a
// start or end age are dropped. Ranks given as URIs are reduced to their
// last path segment.
//
// [Loader] resolves collection keys to files, falls back to the embedded
// [Builtin] collections, and caches each decoded collection for the life of
// the process.
package source
