// Package config parses jpq's command-line arguments using a
// ContinueOnError flag set with suppressed default usage/error output,
// returning (*Config, *exit.Result) so the caller can print and exit
// uniformly on any parse failure.
package config

import (
	"errors"
	"flag"
	"io"

	"github.com/jacoelho/jpq/internal/exit"
)

var (
	ErrNoArguments   = errors.New("no arguments provided")
	ErrNoExpression  = errors.New("no expression provided")
	ErrInvalidOutput = errors.New("output format must be one of json, yaml, raw")
)

// OutputFormat selects how a result value is rendered.
type OutputFormat int

const (
	OutputJSON OutputFormat = iota
	OutputYAML
	OutputRaw
)

// Config holds jpq's resolved command-line options.
type Config struct {
	Expression   string
	File         string
	YAML         bool
	Output       OutputFormat
	Compact      bool
	AST          bool
	Stream       bool
	RateLimit    float64
	VerifyCompat bool
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		file         string
		yamlIn       bool
		output       string
		compact      bool
		ast          bool
		stream       bool
		rateLimit    float64
		verifyCompat bool
	)

	fs.StringVar(&file, "file", "", "read input document from FILE (default: stdin)")
	fs.StringVar(&file, "f", "", "shorthand for --file")
	fs.BoolVar(&yamlIn, "yaml", false, "treat input as YAML (default: auto-detect)")
	fs.StringVar(&output, "output", "json", "output format: json|yaml|raw")
	fs.StringVar(&output, "o", "json", "shorthand for --output")
	fs.BoolVar(&compact, "compact", false, "emit JSON without indentation")
	fs.BoolVar(&ast, "ast", false, "print the compiled selector tree and exit, without evaluating")
	fs.BoolVar(&stream, "stream", false, "treat input as newline-delimited JSON; evaluate per line")
	fs.Float64Var(&rateLimit, "rate-limit", 0, "records/sec throttle for --stream (0 = unlimited)")
	fs.BoolVar(&verifyCompat, "verify-compat", false, "cross-check navigational subset against theory/jsonpath")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoExpression, Usage())
	}

	var outFmt OutputFormat
	switch output {
	case "json":
		outFmt = OutputJSON
	case "yaml":
		outFmt = OutputYAML
	case "raw":
		outFmt = OutputRaw
	default:
		return nil, exit.Errorf("Error: %v\n\n%s", ErrInvalidOutput, Usage())
	}

	return &Config{
		Expression:   rest[0],
		File:         file,
		YAML:         yamlIn,
		Output:       outFmt,
		Compact:      compact,
		AST:          ast,
		Stream:       stream,
		RateLimit:    rateLimit,
		VerifyCompat: verifyCompat,
	}, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jpq - a JMESPath query tool

Usage: jpq [options] <expression>

Options:
  -f, --file FILE        read input document from FILE (default: stdin)
  --yaml                 treat input as YAML (default: auto-detect)
  -o, --output FORMAT    json|yaml|raw (default json)
  --compact              emit JSON without indentation
  --ast                  print the compiled selector tree and exit, without evaluating
  --stream               treat input as newline-delimited JSON; evaluate per line
  --rate-limit N         records/sec throttle for --stream (0 = unlimited)
  --verify-compat        cross-check navigational subset against theory/jsonpath
  -h, --help             show this help message

Examples:
  jpq 'a.b.c' < doc.json
  jpq --yaml -f doc.yaml 'items[*].name'
  jpq --stream --rate-limit 5 'user.id' < records.jsonl`
}
