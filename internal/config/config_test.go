package config

import (
	"testing"
)

func TestParseRequiresExpression(t *testing.T) {
	_, res := Parse([]string{"jpq"})
	if res == nil {
		t.Fatal("Parse: expected exit.Result for missing expression")
	}
	if res.ExitCode != 1 {
		t.Fatalf("Parse: ExitCode = %d, want 1", res.ExitCode)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, res := Parse([]string{"jpq", "a.b.c"})
	if res != nil {
		t.Fatalf("Parse: unexpected exit result: %v", res.Message)
	}
	if cfg.Expression != "a.b.c" {
		t.Fatalf("Expression = %q, want a.b.c", cfg.Expression)
	}
	if cfg.Output != OutputJSON {
		t.Fatalf("Output = %v, want OutputJSON", cfg.Output)
	}
	if cfg.YAML || cfg.Compact || cfg.AST || cfg.Stream || cfg.VerifyCompat {
		t.Fatalf("Parse: unexpected non-zero flag in %#v", cfg)
	}
}

func TestParseFlags(t *testing.T) {
	cfg, res := Parse([]string{"jpq", "--yaml", "-f", "doc.yaml", "-o", "yaml", "--compact", "--stream", "--rate-limit", "5", "xs[*]"})
	if res != nil {
		t.Fatalf("Parse: unexpected exit result: %v", res.Message)
	}
	if !cfg.YAML || cfg.File != "doc.yaml" || cfg.Output != OutputYAML || !cfg.Compact || !cfg.Stream || cfg.RateLimit != 5 {
		t.Fatalf("Parse: got %#v", cfg)
	}
	if cfg.Expression != "xs[*]" {
		t.Fatalf("Expression = %q, want xs[*]", cfg.Expression)
	}
}

func TestParseInvalidOutput(t *testing.T) {
	_, res := Parse([]string{"jpq", "-o", "xml", "a"})
	if res == nil || res.ExitCode != 1 {
		t.Fatal("Parse: expected error exit result for invalid output format")
	}
}

func TestParseHelp(t *testing.T) {
	_, res := Parse([]string{"jpq", "-h"})
	if res == nil {
		t.Fatal("Parse: expected exit.Result for -h")
	}
	if res.ExitCode != 0 {
		t.Fatalf("Parse -h: ExitCode = %d, want 0", res.ExitCode)
	}
}
