// Command jpq compiles and evaluates a JMESPath expression against a JSON
// or YAML document read from a file or stdin.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jpq/internal/compat"
	"github.com/jacoelho/jpq/internal/config"
	"github.com/jacoelho/jpq/internal/decode"
	"github.com/jacoelho/jpq/internal/jmespath"
	"github.com/jacoelho/jpq/internal/jmespath/compiler"
	"github.com/jacoelho/jpq/internal/jmespath/value"
	"github.com/jacoelho/jpq/internal/stream"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	expr, err := jmespath.Compile(cfg.Expression)
	if err != nil {
		printError(err)
		return 1
	}

	if cfg.AST {
		fmt.Println(expr.AST())
		return 0
	}

	in, closeIn, err := openInput(cfg.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeIn()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Stream {
		if err := stream.Run(ctx, in, os.Stdout, stream.Options{
			Expr:      expr.Selector(),
			RateLimit: cfg.RateLimit,
		}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	doc, err := decode.Decode(data, inputFormat(cfg.YAML))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cfg.VerifyCompat {
		return runVerifyCompat(doc, cfg.Expression)
	}

	result, err := expr.Search(doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return printResult(result, cfg)
}

func inputFormat(yamlIn bool) decode.Format {
	if yamlIn {
		return decode.FormatYAML
	}
	return decode.FormatAuto
}

func openInput(file string) (io.Reader, func() error, error) {
	if file == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", file, err)
	}
	return f, f.Close, nil
}

func printResult(result value.Value, cfg *config.Config) int {
	if cfg.Output == config.OutputRaw && result.IsString() {
		fmt.Println(result.String())
		return 0
	}

	outFmt := decode.FormatJSON
	if cfg.Output == config.OutputYAML {
		outFmt = decode.FormatYAML
	}

	out, err := decode.Encode(result, outFmt, !cfg.Compact)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	os.Stdout.Write(out)
	if outFmt == decode.FormatJSON {
		fmt.Println()
	}
	return 0
}

func runVerifyCompat(doc value.Value, expression string) int {
	agree, err := compat.Verify(doc, expression)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !agree {
		fmt.Fprintln(os.Stderr, "jpq and theory/jsonpath disagree on this expression")
		return 1
	}
	fmt.Println("ok")
	return 0
}

func printError(err error) {
	if pe, ok := err.(*compiler.ParseError); ok {
		fmt.Fprintf(os.Stderr, "%d:%d: %s\n", pe.Line, pe.Column, pe.Code)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
