package util

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	err := &FormatError{File: "switch1.txt"}
	if !strings.HasSuffix(err.Error(), "switch1.txt") {
		t.Errorf("FormatError message should end with file name: %s", err.Error())
	}
	if !errors.Is(err, ErrFormatUnknown) {
		t.Error("FormatError should unwrap to ErrFormatUnknown")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("core.conf", ErrInterfaceRangeParse, "member foo")
	msg := err.Error()
	if !strings.Contains(msg, "core.conf") || !strings.Contains(msg, "member foo") {
		t.Errorf("ParseError message missing context: %s", msg)
	}
	if !errors.Is(err, ErrInterfaceRangeParse) {
		t.Error("ParseError should unwrap to its kind")
	}
	if errors.Is(err, ErrSubnetParse) {
		t.Error("ParseError should not match an unrelated kind")
	}
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		var vb ValidationBuilder
		vb.Add(true, "never shown")
		if vb.HasErrors() || vb.Build() != nil {
			t.Error("expected no errors")
		}
	})

	t.Run("accumulates", func(t *testing.T) {
		var vb ValidationBuilder
		vb.Add(false, "name is required").AddErrorf("file %d missing", 2)
		err := vb.Build()
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, ErrValidationFailed) {
			t.Error("should unwrap to ErrValidationFailed")
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || len(ve.Errors) != 2 {
			t.Errorf("expected 2 messages, got %v", err)
		}
	})
}
