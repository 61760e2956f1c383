// Package handoff stores the names derived by the pre-generation hook so the
// post-generation hook can pick them up. The file is plain text with one
// key=value pair per line and is deleted once it has been read.
//
// Values containing a backslash, newline or carriage return are escaped, and
// such files start with a "#escaped" line. Files without that line are read
// verbatim, so a backslash in them is kept as is.
package handoff
