package flags

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/nojima/reqbuild/exchange"
	"github.com/nojima/reqbuild/input"
	"github.com/nojima/reqbuild/output"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	RequestFile   string
	Debug         bool
	PrintVersion  bool
	PrintLicenses bool
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

func getTerminalInfo() terminalInfo {
	return terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// Parse parses the command line. args[0] is the program name.
func Parse(args []string) (FlagSet, *OptionSet, error) {
	flagSet, optionSet, err := parse(args, getTerminalInfo(), askPassword)
	if err != nil {
		return nil, nil, err
	}
	return flagSet, optionSet, nil
}

func parse(args []string, terminalInfo terminalInfo, ask func(userName string) (string, error)) (*getopt.Set, *OptionSet, error) {
	inputOptions := input.Options{}
	exchangeOptions := exchange.Options{}
	outputOptions := output.Options{}
	optionSet := &OptionSet{}
	var ignoreStdin bool
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	prettyFlag := "\000"
	authFlag := ""

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] URL [REQUEST_ITEM [REQUEST_ITEM ...]]")
	flagSet.BoolVarLong(&inputOptions.JSON, "json", 'j', "data items are serialized as JSON (default)")
	flagSet.BoolVarLong(&inputOptions.Form, "form", 'f', "data items are serialized as form fields")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (HB)")
	flagSet.StringVarLong(&prettyFlag, "pretty", 0, "controls output processing (all, colors, format, none)")
	flagSet.StringVarLong(&authFlag, "auth", 'a', "basic authentication (USER[:PASS])")
	flagSet.StringVarLong(&optionSet.RequestFile, "file", 'F', "read the request from an HCL file")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.BoolVarLong(&optionSet.Debug, "debug", 0, "print debug logs to stderr")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicenses, "licenses", 0, "print licenses of dependencies and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, nil, errors.Wrap(err, "parsing flags")
	}

	// Check stdin
	if !ignoreStdin && !terminalInfo.stdinIsTerminal {
		inputOptions.ReadStdin = true
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, &outputOptions); err != nil {
		return nil, nil, err
	}

	// Parse --pretty
	if err := parsePrettyFlag(prettyFlag, terminalInfo, &outputOptions); err != nil {
		return nil, nil, err
	}

	// Parse --auth
	if authFlag != "" {
		auth, err := parseAuth(authFlag, ask)
		if err != nil {
			return nil, nil, err
		}
		exchangeOptions.Auth = auth
	}

	optionSet.InputOptions = inputOptions
	optionSet.ExchangeOptions = exchangeOptions
	optionSet.OutputOptions = outputOptions
	return flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, outputOptions *output.Options) error {
	if printFlag == "\000" { // --print is not specified
		outputOptions.PrintRequestHeader = true
		outputOptions.PrintRequestBody = true
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'H':
			outputOptions.PrintRequestHeader = true
		case 'B':
			outputOptions.PrintRequestBody = true
		default:
			return errors.Errorf("invalid char in --print value (must be consist of HB): %c", c)
		}
	}
	return nil
}

func parsePrettyFlag(prettyFlag string, terminalInfo terminalInfo, outputOptions *output.Options) error {
	switch prettyFlag {
	case "\000":
		outputOptions.EnableColor = terminalInfo.stdoutIsTerminal
		outputOptions.EnableFormat = terminalInfo.stdoutIsTerminal
	case "all":
		outputOptions.EnableColor = true
		outputOptions.EnableFormat = true
	case "colors":
		outputOptions.EnableColor = true
	case "format":
		outputOptions.EnableFormat = true
	case "none":
	default:
		return errors.Errorf("unknown value of --pretty (must be one of all, colors, format, none): %s", prettyFlag)
	}
	return nil
}

// parseAuth splits USER[:PASS]. The password is asked for when it is omitted.
func parseAuth(authFlag string, ask func(userName string) (string, error)) (exchange.AuthOptions, error) {
	colon := strings.Index(authFlag, ":")
	if colon != -1 {
		return exchange.AuthOptions{
			Enabled:  true,
			UserName: authFlag[:colon],
			Password: authFlag[colon+1:],
		}, nil
	}
	password, err := ask(authFlag)
	if err != nil {
		return exchange.AuthOptions{}, err
	}
	return exchange.AuthOptions{
		Enabled:  true,
		UserName: authFlag,
		Password: password,
	}, nil
}
