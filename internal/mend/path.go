package mend

import (
	"strconv"
	"strings"
)

// Root is the pointer for the top of the working value.
const Root = "/"

// field appends an object member segment, escaping '~' -> '~0' and
// '/' -> '~1' per RFC 6901.
func field(base, name string) string {
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	if base == Root || base == "" {
		return "/" + esc
	}
	return base + "/" + esc
}

// index appends an array element segment.
func index(base string, i int) string {
	if base == Root || base == "" {
		return "/" + strconv.Itoa(i)
	}
	return base + "/" + strconv.Itoa(i)
}
