package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"code.cloudfoundry.org/bytefmt"
)

func isBinary(body string) bool {
	return !utf8.ValidString(body) || strings.ContainsRune(body, 0)
}

func printBinaryNote(w io.Writer, size int) {
	note := fmt.Sprintf("| NOTE: binary data not shown (%s) |", bytefmt.ByteSize(uint64(size)))
	border := "+" + strings.Repeat("-", len(note)-2) + "+"
	fmt.Fprintf(w, "%s\n%s\n%s\n", border, note, border)
}
