// Package buildinfo holds release metadata stamped into the forma binary.
//
// Release builds set these via -ldflags -X; everything else (go install,
// source builds) leaves them empty, and the version command falls back to
// module build info.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
