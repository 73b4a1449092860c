// Package scan imports files into a catalog collection. It decides nothing
// about content: every file is handed to a catalog.Builder and the resulting
// object is inserted with the collection's first-write-wins rule.
package scan
