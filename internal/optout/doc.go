// Package optout resolves how to request removal from a source and
// executes the request. The resolver fuzzy-matches free-text source
// names onto canonical broker keys; the executor renders and delivers
// CCPA/GDPR removal letters or posts opt-out forms, and always returns
// a uniform outcome instead of raising.
package optout
