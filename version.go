package scotch

// libraryVersion is the version of this scotch implementation. Set by
// GitHub tag replacement: GitHub replaces $Format:%(describe:tags=true)$
// with the actual tag at archive-export time.
var libraryVersion = "$Format:%(describe:tags=true)$"

// specVersion identifies the revision of the Scotch semantics this
// library implements (major.minor, independent of the Go module's own
// release tags).
const specVersion = "7.0"

// Version returns the version of this scotch implementation, or "dev" if
// built from an untagged checkout.
func Version() string {
	if len(libraryVersion) == 0 || libraryVersion[0] == '$' {
		return "dev"
	}
	return libraryVersion
}

// SpecVersion returns the Scotch semantic-compatibility version this
// implementation targets.
func SpecVersion() string {
	return specVersion
}
