package reqbuild

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/nojima/reqbuild/exchange"
	"github.com/nojima/reqbuild/flags"
	"github.com/nojima/reqbuild/input"
	"github.com/nojima/reqbuild/output"
	"github.com/nojima/reqbuild/request"
	"github.com/nojima/reqbuild/version"
	"github.com/pkg/errors"
)

func Main() error {
	flagSet, options, err := flags.Parse(os.Args)
	if err != nil {
		return err
	}

	err = run(flagSet.Args(), options, os.Stdin, os.Stdout, os.Stderr)
	if isUsageError(err) {
		flagSet.PrintUsage(os.Stderr)
	}
	return err
}

// isUsageError reports whether err stems from argv misuse or from a request
// that lacks a url or method.
func isUsageError(err error) bool {
	switch cause := errors.Cause(err).(type) {
	case *input.UsageError:
		return true
	case request.BuildError:
		return cause == request.MissingURL || cause == request.MissingMethod
	default:
		return false
	}
}

func run(args []string, options *flags.OptionSet, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := newLogger(options.Debug, stderr)

	if options.PrintVersion {
		fmt.Fprintf(stdout, "reqbuild %s\n", version.Current())
		return nil
	}
	if options.PrintLicenses {
		version.PrintLicenses(stdout)
		return nil
	}

	in, err := readInput(args, stdin, options)
	if err != nil {
		return err
	}
	logger.Debug("parsed input",
		"method", in.Method,
		"has_url", in.URL != nil,
		"parameters", len(in.Parameters),
		"headers", len(in.Header.Fields),
		"body_type", in.Body.BodyType)

	req, err := exchange.BuildRequest(in, &options.ExchangeOptions)
	switch errors.Cause(err) {
	case nil:
	case request.MissingURL, request.MissingMethod:
		return errors.Wrap(err, "incomplete request")
	default:
		return err
	}
	logger.Debug("built request",
		"method", req.Method(),
		"url", req.URL(),
		"headers", len(req.Headers()))

	writer := bufio.NewWriter(stdout)
	if err := output.PrintRequest(writer, req, &options.OutputOptions); err != nil {
		return err
	}
	return errors.Wrap(writer.Flush(), "flushing output")
}

func readInput(args []string, stdin io.Reader, options *flags.OptionSet) (*input.Input, error) {
	if options.RequestFile == "" {
		return input.ParseArgs(args, stdin, &options.InputOptions)
	}
	if len(args) > 0 {
		return nil, errors.Errorf("request items cannot be combined with --file: %v", args)
	}
	return input.LoadFile(options.RequestFile)
}
