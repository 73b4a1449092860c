// Package catalog provides the content model of the file catalog: a
// byte-sniffing classifier that decides what kind of content a payload holds,
// and the Object type that carries the payload together with descriptive
// tags derived from it.
//
// # Identity
//
// Objects are identified by their payload bytes only. Two objects with the
// same bytes are equal even when their tags or kinds differ, so a Collection
// deduplicates by content and keeps whichever object was inserted first.
//
// Persistence is left to the store subpackages; everything here is pure and
// performs no I/O.
package catalog
