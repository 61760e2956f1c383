// Package manifest describes what the post-generation hook touches in a
// generated project: the placeholder tokens, the files that carry them, the
// auxiliary directories and the pinned dependency. A default manifest is
// embedded; a project can override it with a YAML file at its root, which is
// validated against an embedded JSON Schema before use.
package manifest
