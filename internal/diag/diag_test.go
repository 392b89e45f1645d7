package diag_test

import (
	"strings"
	"testing"

	"github.com/1995hnagamin/spacec/internal/diag"
	"github.com/1995hnagamin/spacec/internal/token"
)

func TestErrorPrefixes(t *testing.T) {
	pos := token.Position{Line: 3, Col: 5}

	tests := []struct {
		err    error
		prefix string
	}{
		{diag.NewLexError(pos, "boom"), "[LexError]"},
		{diag.NewParseError(pos, "boom"), "[ParseError]"},
		{diag.NewTypeError(pos, "boom"), "[TypeError]"},
		{diag.UnboundName(pos, "x"), "[TypeError]"},
		{diag.NewIREmitError(pos, "boom"), "[IREmitError]"},
	}

	for _, tt := range tests {
		if !strings.HasPrefix(tt.err.Error(), tt.prefix) {
			t.Errorf("Error() = %q, want prefix %q", tt.err.Error(), tt.prefix)
		}
	}
}

func TestUnboundNameMessage(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	err := diag.UnboundName(pos, "missing")
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("expected name in error, got %q", err.Error())
	}
}
