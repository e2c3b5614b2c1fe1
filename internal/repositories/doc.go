// package repositories implements SQLite-backed persistence.
//
// The only table is a cache of resolved source-platform lookups (oEmbed and
// public-API metadata), which saves a network round trip when the same link
// is converted repeatedly. Match results are intentionally never stored;
// every conversion re-queries the target platforms.
package repositories
