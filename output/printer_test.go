package output

import (
	"strings"
	"testing"

	"github.com/nojima/reqbuild/request"
)

func buildRequest() request.Request {
	return request.Seal(
		request.New().
			Method("POST").
			URL("http://example.com/users").
			Header("Content-Type", "application/json").
			Header("X-Trace", "1").
			Body(`{"name":"alice"}`),
	).Build()
}

func TestPrintRequest(t *testing.T) {
	testCases := []struct {
		title    string
		options  Options
		expected string
	}{
		{
			title:   "Header and body, plain",
			options: Options{PrintRequestHeader: true, PrintRequestBody: true},
			expected: strings.Join([]string{
				"POST http://example.com/users HTTP/1.1",
				"Content-Type: application/json",
				"X-Trace: 1",
				"",
				`{"name":"alice"}`,
				"",
			}, "\n"),
		},
		{
			title:   "Body only, formatted",
			options: Options{PrintRequestBody: true, EnableFormat: true},
			expected: strings.Join([]string{
				`{`,
				`    "name": "alice"`,
				`}`,
				"",
			}, "\n"),
		},
		{
			title:   "Header only",
			options: Options{PrintRequestHeader: true},
			expected: strings.Join([]string{
				"POST http://example.com/users HTTP/1.1",
				"Content-Type: application/json",
				"X-Trace: 1",
				"",
				"",
			}, "\n"),
		},
		{
			title:    "Nothing",
			options:  Options{},
			expected: "",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			var buffer strings.Builder
			if err := PrintRequest(&buffer, buildRequest(), &tt.options); err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if buffer.String() != tt.expected {
				t.Errorf("unexpected output: expected=\n%q\nactual=\n%q\n", tt.expected, buffer.String())
			}
		})
	}
}

func TestPrintRequest_NoBody(t *testing.T) {
	var buffer strings.Builder
	r := request.Seal(request.New().URL("http://example.com/").Method("GET")).Build()
	if err := PrintRequest(&buffer, r, &Options{PrintRequestBody: true}); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if buffer.String() != "" {
		t.Errorf("unexpected output: %q", buffer.String())
	}
}

func TestPlainPrinter_PrintBody_Binary(t *testing.T) {
	// Setup
	var buffer strings.Builder
	printer := NewPlainPrinter(&buffer)
	body := string([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01}) + strings.Repeat("x", 2042)

	// Exercise
	if err := printer.PrintBody(body, "image/png"); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := strings.Join([]string{
		"+----------------------------------+",
		"| NOTE: binary data not shown (2K) |",
		"+----------------------------------+",
		"",
	}, "\n")
	if buffer.String() != expected {
		t.Errorf("unexpected output: expected=\n%s\nactual=\n%s", expected, buffer.String())
	}
}
