package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/nojima/reqbuild/request"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	enableFormat  bool
	headerPalette *HeaderPalette
	jsonPalette   *JSONPalette
}

type PrettyPrinterConfig struct {
	Writer       io.Writer
	EnableColor  bool
	EnableFormat bool
}

type HeaderPalette struct {
	Method         aurora.Color
	URL            aurora.Color
	Proto          aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Method:         aurora.GreenFg | aurora.BoldFm,
	URL:            aurora.CyanFg,
	Proto:          aurora.BlueFg,
	FieldName:      aurora.GrayFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.GrayFg,
}

type JSONPalette struct {
	Name    aurora.Color
	String  aurora.Color
	Number  aurora.Color
	Boolean aurora.Color
	Null    aurora.Color
	Symbol  aurora.Color
}

var defaultJSONPalette = JSONPalette{
	Name:    aurora.BlueFg,
	String:  aurora.BrownFg,
	Number:  aurora.CyanFg,
	Boolean: aurora.MagentaFg,
	Null:    aurora.RedFg | aurora.BoldFm,
	Symbol:  aurora.GrayFg,
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		enableFormat:  config.EnableFormat,
		headerPalette: &defaultHeaderPalette,
		jsonPalette:   &defaultJSONPalette,
	}
}

func (p *PrettyPrinter) PrintRequestLine(method, url string) error {
	fmt.Fprintf(p.writer, "%s %s %s\n",
		p.aurora.Colorize(method, p.headerPalette.Method),
		p.aurora.Colorize(url, p.headerPalette.URL),
		p.aurora.Colorize("HTTP/1.1", p.headerPalette.Proto))
	return nil
}

// PrintHeader keeps the order in which the headers were added.
func (p *PrettyPrinter) PrintHeader(headers []request.Header) error {
	for _, h := range headers {
		fmt.Fprintf(p.writer, "%s%s %s\n",
			p.aurora.Colorize(h.Name, p.headerPalette.FieldName),
			p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
			p.aurora.Colorize(h.Value, p.headerPalette.FieldValue))
	}
	fmt.Fprintln(p.writer)
	return nil
}

func isJSON(contentType string) bool {
	contentType = strings.TrimSpace(contentType)

	semicolon := strings.Index(contentType, ";")
	if semicolon != -1 {
		contentType = strings.TrimSpace(contentType[:semicolon])
	}

	// See https://tools.ietf.org/html/rfc6839#section-3.1
	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}

func (p *PrettyPrinter) PrintBody(body string, contentType string) error {
	// Fallback to PlainPrinter when the body is not JSON
	if !p.enableFormat || !isJSON(contentType) {
		return p.plain.PrintBody(body, contentType)
	}

	var buffer bytes.Buffer
	if err := p.formatJSON(&buffer, body); err != nil {
		return p.plain.PrintBody(body, contentType)
	}
	buffer.WriteString("\n")
	if _, err := buffer.WriteTo(p.writer); err != nil {
		return errors.Wrap(err, "printing request body")
	}
	return nil
}

func (p *PrettyPrinter) formatJSON(w *bytes.Buffer, body string) error {
	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if err := p.formatValue(w, decoder, token, 0); err != nil {
		return err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

func (p *PrettyPrinter) formatValue(w *bytes.Buffer, decoder *json.Decoder, token json.Token, depth int) error {
	switch v := token.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.formatObject(w, decoder, depth)
		case '[':
			return p.formatArray(w, decoder, depth)
		default:
			return errors.Errorf("unexpected delimiter: %v", v)
		}
	case string:
		s, err := quoteJSONString(v)
		if err != nil {
			return err
		}
		fmt.Fprint(w, p.aurora.Colorize(s, p.jsonPalette.String))
	case json.Number:
		fmt.Fprint(w, p.aurora.Colorize(v.String(), p.jsonPalette.Number))
	case bool:
		fmt.Fprint(w, p.aurora.Colorize(fmt.Sprint(v), p.jsonPalette.Boolean))
	case nil:
		fmt.Fprint(w, p.aurora.Colorize("null", p.jsonPalette.Null))
	default:
		return errors.Errorf("unexpected JSON token: %v", token)
	}
	return nil
}

func (p *PrettyPrinter) formatObject(w *bytes.Buffer, decoder *json.Decoder, depth int) error {
	fmt.Fprint(w, p.aurora.Colorize("{", p.jsonPalette.Symbol))
	first := true
	for decoder.More() {
		if !first {
			fmt.Fprint(w, p.aurora.Colorize(",", p.jsonPalette.Symbol))
		}
		first = false
		w.WriteString("\n" + indent(depth+1))

		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		key, err := quoteJSONString(keyToken.(string))
		if err != nil {
			return err
		}
		fmt.Fprint(w, p.aurora.Colorize(key, p.jsonPalette.Name))
		fmt.Fprint(w, p.aurora.Colorize(":", p.jsonPalette.Symbol))
		w.WriteString(" ")

		valueToken, err := decoder.Token()
		if err != nil {
			return err
		}
		if err := p.formatValue(w, decoder, valueToken, depth+1); err != nil {
			return err
		}
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	if !first {
		w.WriteString("\n" + indent(depth))
	}
	fmt.Fprint(w, p.aurora.Colorize("}", p.jsonPalette.Symbol))
	return nil
}

func (p *PrettyPrinter) formatArray(w *bytes.Buffer, decoder *json.Decoder, depth int) error {
	fmt.Fprint(w, p.aurora.Colorize("[", p.jsonPalette.Symbol))
	first := true
	for decoder.More() {
		if !first {
			fmt.Fprint(w, p.aurora.Colorize(",", p.jsonPalette.Symbol))
		}
		first = false
		w.WriteString("\n" + indent(depth+1))

		token, err := decoder.Token()
		if err != nil {
			return err
		}
		if err := p.formatValue(w, decoder, token, depth+1); err != nil {
			return err
		}
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	if !first {
		w.WriteString("\n" + indent(depth))
	}
	fmt.Fprint(w, p.aurora.Colorize("]", p.jsonPalette.Symbol))
	return nil
}

func indent(depth int) string {
	return strings.Repeat("    ", depth)
}

func quoteJSONString(s string) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return "", errors.Wrap(err, "encoding JSON string")
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}
