package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jacoelho/jpq/internal/jmespath/compiler"
)

func TestRunEvaluatesEachLine(t *testing.T) {
	sel, err := compiler.Compile("a")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	in := strings.NewReader("{\"a\":1}\n{\"a\":2}\n")
	var out bytes.Buffer

	if err := Run(context.Background(), in, &out, Options{Expr: sel}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	scanner := bufio.NewScanner(&out)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("Run: got %d lines, want 2", len(lines))
	}

	for _, line := range lines {
		var env envelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			t.Fatalf("unmarshal envelope: %v", err)
		}
		if env.ID == "" {
			t.Fatal("envelope missing correlation id")
		}
	}
}

func TestRunSkipsBlankLines(t *testing.T) {
	sel, err := compiler.Compile("a")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	in := strings.NewReader("{\"a\":1}\n\n   \n{\"a\":2}\n")
	var out bytes.Buffer

	if err := Run(context.Background(), in, &out, Options{Expr: sel}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	scanner := bufio.NewScanner(&out)
	count := 0
	for scanner.Scan() {
		count++
	}
	if count != 2 {
		t.Fatalf("Run: got %d lines, want 2", count)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	sel, err := compiler.Compile("a")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := strings.NewReader("{\"a\":1}\n")
	var out bytes.Buffer

	if err := Run(ctx, in, &out, Options{Expr: sel}); err == nil {
		t.Fatal("Run: expected cancellation error")
	}
}
