// Package naming derives the canonical identifiers of a generated adapter from
// the free-form resource name a template user types in. Every function here is
// pure and total: any string, including the empty string, has a defined result.
package naming
