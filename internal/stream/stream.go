// Package stream evaluates a compiled selector against a newline-delimited
// JSON input, one record at a time, tagging each result with a correlation
// ID and optionally throttling the evaluation rate.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jacoelho/jpq/internal/decode"
	"github.com/jacoelho/jpq/internal/jmespath/selector"
	"github.com/jacoelho/jpq/internal/jmespath/value"
	"github.com/jacoelho/jpq/internal/ratelimit"
)

const maxLineSize = 1 << 20

// Options configures a streaming evaluation run.
type Options struct {
	// Expr is the compiled selector applied to each record.
	Expr *selector.Selector
	// RateLimit throttles records per second; 0 or negative means unlimited.
	RateLimit float64
}

type envelope struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result"`
}

// Run reads newline-delimited JSON records from r, evaluates opts.Expr
// against each in a fresh arena, and writes one {"id", "result"} envelope
// per record to w. Evaluation of a record is never interrupted mid-flight;
// ctx is only checked between records, consistent with the evaluator's
// single-threaded, non-suspendable per-call semantics.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	limiter := ratelimit.New(opts.RateLimit)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if err := evalRecord(ctx, w, opts.Expr, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func evalRecord(_ context.Context, w io.Writer, sel *selector.Selector, line []byte) error {
	doc, err := value.DecodeJSON(bytes.NewReader(line))
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	evalCtx := selector.NewContext()
	result, err := selector.Evaluate(evalCtx, sel, doc)
	if err != nil {
		return fmt.Errorf("evaluate record: %w", err)
	}

	resultJSON, err := decode.Encode(result, decode.FormatJSON, false)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	env := envelope{ID: uuid.New().String(), Result: resultJSON}
	envJSON, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	if _, err := w.Write(append(envJSON, '\n')); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
