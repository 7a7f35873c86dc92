package output

import (
	"fmt"
	"io"

	"github.com/nojima/reqbuild/request"
	"github.com/pkg/errors"
)

type PlainPrinter struct {
	writer io.Writer
}

func NewPlainPrinter(writer io.Writer) Printer {
	return &PlainPrinter{
		writer: writer,
	}
}

func (p *PlainPrinter) PrintRequestLine(method, url string) error {
	fmt.Fprintf(p.writer, "%s %s HTTP/1.1\n", method, url)
	return nil
}

func (p *PlainPrinter) PrintHeader(headers []request.Header) error {
	for _, h := range headers {
		fmt.Fprintf(p.writer, "%s: %s\n", h.Name, h.Value)
	}
	fmt.Fprintln(p.writer)
	return nil
}

func (p *PlainPrinter) PrintBody(body string, contentType string) error {
	if isBinary(body) {
		printBinaryNote(p.writer, len(body))
		return nil
	}
	if _, err := io.WriteString(p.writer, body); err != nil {
		return errors.Wrap(err, "printing request body")
	}
	fmt.Fprintln(p.writer)
	return nil
}
