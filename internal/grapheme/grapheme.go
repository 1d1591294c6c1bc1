// Package grapheme clips text by user-perceived characters.
package grapheme

import (
	"github.com/rivo/uniseg"
)

// Truncate returns the longest prefix of text holding at most n grapheme
// clusters. The result never ends inside a multi-byte sequence or a
// combining sequence.
func Truncate(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}

	state := -1
	rest := text
	end := 0
	for i := 0; i < n && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		end += len(cluster)
	}
	return text[:end]
}
