package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAlignmentErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantBase error
	}{
		{
			name:     "anchor mismatch",
			err:      &AnchorMismatchError{Left: 2, Right: 3},
			wantMsg:  "different number of anchors in texts: 2 groups on the left, 3 on the right",
			wantBase: ErrAnchorMismatch,
		},
		{
			name:     "invalid method",
			err:      &InvalidMethodError{Method: "viterbi"},
			wantMsg:  `invalid method "viterbi"`,
			wantBase: ErrInvalidMethod,
		},
		{
			name:     "invalid method with reason",
			err:      &InvalidMethodError{Method: "gale-church", Reason: "unknown parameter \"beta\""},
			wantMsg:  `invalid method "gale-church": unknown parameter "beta"`,
			wantBase: ErrInvalidMethod,
		},
		{
			name:     "consistency",
			err:      &ConsistencyError{Side: "left", Want: 4, Got: 3},
			wantMsg:  "error aligning regions: left blocks cover 3 of 4 items",
			wantBase: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.wantBase)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with field",
			err:      &ValidationError{Field: "variance", Message: "must be positive"},
			wantMsg:  "validation failed for variance: must be positive",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without field",
			err:      &ValidationError{Message: "invalid model"},
			wantMsg:  "validation failed: invalid model",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("out of range")
		err := &ValidationError{Field: "ratio", Message: "bad", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "read", Path: "/test/left.txt", Err: baseErr},
			wantMsg: "failed to read /test/left.txt: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "decompress", Err: baseErr},
			wantMsg: "failed to decompress: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, baseErr) {
				t.Errorf("Unwrap() = %v, want %v", got, baseErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with path",
			err:      &ParseError{Format: "TOML", Path: "bialign.toml", Message: "unexpected EOF"},
			wantMsg:  "failed to parse TOML at bialign.toml: unexpected EOF",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without path",
			err:      &ParseError{Format: "method", Message: "unexpected token \")\""},
			wantMsg:  "failed to parse method: unexpected token \")\"",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("toml: expected '='")
		err := &ParseError{Format: "TOML", Path: "bialign.toml", Message: "invalid syntax", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestUnsupportedError(t *testing.T) {
	tests := []struct {
		name    string
		err     *UnsupportedError
		wantMsg string
	}{
		{
			name:    "with reason",
			err:     &UnsupportedError{Feature: "weight policy", Reason: "\"syllables\""},
			wantMsg: "unsupported weight policy: \"syllables\"",
		},
		{
			name:    "without reason",
			err:     &UnsupportedError{Feature: "output format"},
			wantMsg: "unsupported output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrUnsupported) {
				t.Errorf("errors.Is(%v, ErrUnsupported) = false", tt.err)
			}
		})
	}
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewAnchorMismatch", func(t *testing.T) {
		err := NewAnchorMismatch(1, 2)
		if err.Left != 1 || err.Right != 2 {
			t.Errorf("NewAnchorMismatch() = %+v, want Left=1, Right=2", err)
		}
	})

	t.Run("NewInvalidMethod", func(t *testing.T) {
		err := NewInvalidMethod("dtw", "not implemented")
		if err.Method != "dtw" || err.Reason != "not implemented" {
			t.Errorf("NewInvalidMethod() = %+v, unexpected values", err)
		}
	})

	t.Run("NewConsistency", func(t *testing.T) {
		err := NewConsistency("right", 5, 6)
		if err.Side != "right" || err.Want != 5 || err.Got != 6 {
			t.Errorf("NewConsistency() = %+v, unexpected values", err)
		}
	})

	t.Run("NewValidation", func(t *testing.T) {
		err := NewValidation("workers", "must not be negative")
		if err.Field != "workers" || err.Message != "must not be negative" {
			t.Errorf("NewValidation() = %+v, unexpected values", err)
		}
	})

	t.Run("NewIO", func(t *testing.T) {
		baseErr := fmt.Errorf("disk full")
		err := NewIO("read", "/tmp/test", baseErr)
		if err.Operation != "read" || err.Path != "/tmp/test" || err.Err != baseErr {
			t.Errorf("NewIO() = %+v, unexpected values", err)
		}
	})

	t.Run("NewParse", func(t *testing.T) {
		err := NewParse("XPath", "", "unexpected token")
		if err.Format != "XPath" || err.Path != "" || err.Message != "unexpected token" {
			t.Errorf("NewParse() = %+v, unexpected values", err)
		}
	})

	t.Run("NewUnsupported", func(t *testing.T) {
		err := NewUnsupported("log format", "yaml")
		if err.Feature != "log format" || err.Reason != "yaml" {
			t.Errorf("NewUnsupported() = %+v, unexpected values", err)
		}
	})
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		wrapped := Wrap(NewAnchorMismatch(1, 2), "aligning chapter")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, ErrAnchorMismatch) {
			t.Errorf("Wrap() error does not unwrap to ErrAnchorMismatch")
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	t.Run("wraps error with formatting", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrapf(baseErr, "group %d", 3)
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrapf() error does not unwrap to base error")
		}
		wantMsg := "group 3: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrapf() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrapf(nil, "context %s", "test"); got != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", got)
		}
	})
}

func TestIsAs(t *testing.T) {
	err := Wrap(&InvalidMethodError{Method: "x"}, "aligning")
	if !Is(err, ErrInvalidMethod) {
		t.Error("Is() failed to match InvalidMethodError to ErrInvalidMethod")
	}
	var imErr *InvalidMethodError
	if !As(err, &imErr) {
		t.Fatal("As() failed to match InvalidMethodError")
	}
	if imErr.Method != "x" {
		t.Errorf("As() imErr.Method = %q, want %q", imErr.Method, "x")
	}
}
