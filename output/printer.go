package output

import (
	"io"
	"strings"

	"github.com/nojima/reqbuild/request"
)

type Printer interface {
	PrintRequestLine(method, url string) error
	PrintHeader(headers []request.Header) error
	PrintBody(body string, contentType string) error
}

// PrintRequest writes r to w in the form selected by options.
func PrintRequest(w io.Writer, r request.Request, options *Options) error {
	var printer Printer
	if options.EnableColor || options.EnableFormat {
		printer = NewPrettyPrinter(PrettyPrinterConfig{
			Writer:       w,
			EnableColor:  options.EnableColor,
			EnableFormat: options.EnableFormat,
		})
	} else {
		printer = NewPlainPrinter(w)
	}

	headers := r.Headers()
	if options.PrintRequestHeader {
		if err := printer.PrintRequestLine(r.Method(), r.URL()); err != nil {
			return err
		}
		if err := printer.PrintHeader(headers); err != nil {
			return err
		}
	}
	if options.PrintRequestBody {
		if body, ok := r.Body(); ok {
			if err := printer.PrintBody(body, contentType(headers)); err != nil {
				return err
			}
		}
	}
	return nil
}

func contentType(headers []request.Header) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			return h.Value
		}
	}
	return ""
}
