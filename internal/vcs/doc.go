// Package vcs initializes a git repository for a freshly generated project and
// records the initial commit. Git is driven through the command line; the
// Runner interface lets tests replace it.
package vcs
