// Package identity normalizes a profile into the search terms a scan
// uses: ordered name variants, URL slugs, and contact signals with
// punctuation and diacritics stripped.
package identity
