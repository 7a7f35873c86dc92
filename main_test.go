package reqbuild

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nojima/reqbuild/flags"
	"github.com/nojima/reqbuild/output"
	"github.com/nojima/reqbuild/request"
	"github.com/nojima/reqbuild/version"
	"github.com/pkg/errors"
)

func plainOptions() *flags.OptionSet {
	return &flags.OptionSet{
		OutputOptions: output.Options{
			PrintRequestHeader: true,
			PrintRequestBody:   true,
		},
	}
}

func TestRun_Args(t *testing.T) {
	// Setup
	var stdout, stderr bytes.Buffer
	args := []string{"PUT", "example.com/users/1", "X-Trace:abc", "name=alice", "admin:=true"}

	// Exercise
	err := run(args, plainOptions(), strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := strings.Join([]string{
		"PUT http://example.com/users/1 HTTP/1.1",
		"X-Trace: abc",
		"Content-Type: application/json",
		"User-Agent: reqbuild/" + version.Current().String(),
		"",
		`{"admin":true,"name":"alice"}`,
		"",
	}, "\n")
	if stdout.String() != expected {
		t.Errorf("unexpected output: expected=\n%s\nactual=\n%s", expected, stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr: %s", stderr.String())
	}
}

func TestRun_File(t *testing.T) {
	// Setup
	dir, err := ioutil.TempDir("", "reqbuild-test-")
	if err != nil {
		t.Fatalf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "req.hcl")
	src := `
request {
  method = "DELETE"
  url    = "http://example.com/users/1"
  header "Accept" {
    value = "*/*"
  }
}
`
	if err := ioutil.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write request file: %v", err)
	}
	options := plainOptions()
	options.RequestFile = path
	options.Debug = true
	var stdout, stderr bytes.Buffer

	// Exercise
	err = run(nil, options, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := strings.Join([]string{
		"DELETE http://example.com/users/1 HTTP/1.1",
		"Accept: */*",
		"User-Agent: reqbuild/" + version.Current().String(),
		"",
		"",
	}, "\n")
	if stdout.String() != expected {
		t.Errorf("unexpected output: expected=\n%s\nactual=\n%s", expected, stdout.String())
	}
	if !strings.Contains(stderr.String(), "built request") {
		t.Errorf("expected debug logs, got: %s", stderr.String())
	}
}

func TestRun_FileWithoutMethod(t *testing.T) {
	// Setup
	dir, err := ioutil.TempDir("", "reqbuild-test-")
	if err != nil {
		t.Fatalf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "req.hcl")
	if err := ioutil.WriteFile(path, []byte("request {\n  url = \"example.com\"\n}\n"), 0644); err != nil {
		t.Fatalf("failed to write request file: %v", err)
	}
	options := plainOptions()
	options.RequestFile = path

	// Exercise
	err = run(nil, options, strings.NewReader(""), ioutil.Discard, ioutil.Discard)

	// Verify
	if errors.Cause(err) != request.MissingMethod {
		t.Errorf("unexpected error: expected=%v, actual=%v", request.MissingMethod, err)
	}
}

func TestIsUsageError(t *testing.T) {
	testCases := []struct {
		title    string
		err      error
		expected bool
	}{
		{title: "Nil", err: nil, expected: false},
		{title: "Missing URL", err: errors.Wrap(errors.WithStack(request.MissingURL), "incomplete request"), expected: true},
		{title: "Missing method", err: errors.Wrap(errors.WithStack(request.MissingMethod), "incomplete request"), expected: true},
		{title: "Usage error from argv", err: runWithArgs(t, []string{}), expected: true},
		{title: "Other error", err: errors.New("reading stdin"), expected: false},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			if actual := isUsageError(tt.err); actual != tt.expected {
				t.Errorf("unexpected result: expected=%v, actual=%v, err=%v", tt.expected, actual, tt.err)
			}
		})
	}
}

func runWithArgs(t *testing.T, args []string) error {
	t.Helper()
	err := run(args, plainOptions(), strings.NewReader(""), ioutil.Discard, ioutil.Discard)
	if err == nil {
		t.Fatalf("expected an error for args %v", args)
	}
	return err
}

func TestRun_FileAndArgs(t *testing.T) {
	options := plainOptions()
	options.RequestFile = "req.hcl"
	err := run([]string{"example.com"}, options, strings.NewReader(""), ioutil.Discard, ioutil.Discard)
	if err == nil {
		t.Errorf("expected an error")
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	options := &flags.OptionSet{PrintVersion: true}
	if err := run(nil, options, strings.NewReader(""), &stdout, ioutil.Discard); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	expected := "reqbuild " + version.Current().String() + "\n"
	if stdout.String() != expected {
		t.Errorf("unexpected output: expected=%s, actual=%s", expected, stdout.String())
	}
}

func TestRun_Licenses(t *testing.T) {
	var stdout bytes.Buffer
	options := &flags.OptionSet{PrintLicenses: true}
	if err := run(nil, options, strings.NewReader(""), &stdout, ioutil.Discard); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if !strings.Contains(stdout.String(), "getopt:") {
		t.Errorf("unexpected output: %s", stdout.String())
	}
}
