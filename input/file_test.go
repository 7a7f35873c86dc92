package input

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDecodeFile(t *testing.T) {
	testCases := []struct {
		title         string
		src           string
		expectedInput *Input
		shouldBeError bool
	}{
		{
			title: "Full request",
			src: `
request {
  method = "post"
  url    = "example.com/api"
  body   = "plain text"

  header "X-Foo" {
    value = "bar"
  }
  header "X-Foo" {
    value = "baz"
  }
  param "q" {
    value = "hello world"
  }
}
`,
			expectedInput: &Input{
				Method:     Method("POST"),
				URL:        mustURL("http://example.com/api"),
				Parameters: []Field{{Name: "q", Value: "hello world"}},
				Header: Header{Fields: []Field{
					{Name: "X-Foo", Value: "bar"},
					{Name: "X-Foo", Value: "baz"},
				}},
				Body: Body{BodyType: RawBody, Raw: []byte("plain text")},
			},
		},
		{
			title: "Object body is encoded as JSON",
			src: `
request {
  method = "PUT"
  url    = "http://example.com/users/1"
  body   = {
    name = "alice"
    tags = ["a", "b"]
  }
}
`,
			expectedInput: &Input{
				Method: Method("PUT"),
				URL:    mustURL("http://example.com/users/1"),
				Body: Body{
					BodyType: RawBody,
					Raw:      []byte(`{"name":"alice","tags":["a","b"]}`),
					RawType:  "application/json",
				},
			},
		},
		{
			title: "URL and method may be omitted",
			src: `
request {
  header "Accept" {
    value = "*/*"
  }
}
`,
			expectedInput: &Input{
				Header: Header{Fields: []Field{{Name: "Accept", Value: "*/*"}}},
			},
		},
		{
			title:         "No request block",
			src:           `url = "http://example.com"`,
			shouldBeError: true,
		},
		{
			title:         "Syntax error",
			src:           `request {`,
			shouldBeError: true,
		},
		{
			title: "Invalid method",
			src: `
request {
  method = "GET/POST"
}
`,
			shouldBeError: true,
		},
		{
			title: "Invalid header name",
			src: `
request {
  header "Bad\"header" {
    value = "x"
  }
}
`,
			shouldBeError: true,
		},
		{
			title: "Body references a variable",
			src: `
request {
  body = var.payload
}
`,
			shouldBeError: true,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			in, err := decodeFile([]byte(tt.src), "test.hcl")
			if (err != nil) != tt.shouldBeError {
				t.Fatalf("unexpected error: shouldBeError=%v, err=%v", tt.shouldBeError, err)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(in, tt.expectedInput) {
				t.Errorf("unexpected input: expected=%+v, actual=%+v", tt.expectedInput, in)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	// Setup
	dir, err := ioutil.TempDir("", "reqbuild-test-")
	if err != nil {
		t.Fatalf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "get.hcl")
	src := "request {\n  method = \"GET\"\n  url = \":8080/health\"\n}\n"
	if err := ioutil.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write request file: %v", err)
	}

	// Exercise
	in, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := &Input{
		Method: Method("GET"),
		URL:    mustURL("http://localhost:8080/health"),
	}
	if !reflect.DeepEqual(in, expected) {
		t.Errorf("unexpected input: expected=%+v, actual=%+v", expected, in)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	if _, err := LoadFile("/nonexistent/request.hcl"); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
