// Package pypi looks up the latest released version of a Python package on a
// PyPI-compatible JSON index. The lookup is a single best-effort request: any
// failure falls back to a caller-supplied version instead of surfacing an error.
package pypi
