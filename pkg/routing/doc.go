// Package routing declares the bilingual route tree of the in-person
// application and resolves it in both directions: logical page id to
// localized URL and concrete path back to logical page id.
package routing
