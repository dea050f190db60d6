// Package feeds expands YouTube channel and playlist feeds into video URLs.
//
// References of the form "channel:<id>" and "playlist:<id>" map to the
// public Atom endpoint; any other reference is fetched as a feed URL. Entries
// keep feed order and can be capped per feed with WithLimit.
package feeds
