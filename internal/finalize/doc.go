// Package finalize runs the post-generation setup of a rendered adapter
// project: it consumes the hand-off file, pins the graph library version,
// replaces the name placeholders, creates the working directories and makes
// the initial git commit.
//
// Every step is best-effort. A failure is recorded in the Report and the run
// moves on; Run itself never fails.
package finalize
