package source

import (
	"strings"
)

// File represents a chunk of source code to be processed by the front-end. The
// "Contents" field is a raw string representation of the file's contents. The
// "Lines" field is a cached slice of the file's contents split by '\n' so that
// error messages aren't required to repeatedly split the contents.
type File struct {
	Filename string
	Contents string
	Lines    []string
}

// FromString wraps a raw source string in a File. The pipeline accepts source
// text over standard input as well as from named files so the wrapper takes
// whatever name the caller wants attached to diagnostics
func FromString(filename string, contents string) *File {
	return &File{
		Filename: filename,
		Contents: contents,
		Lines:    strings.SplitAfter(contents, "\n"),
	}
}
