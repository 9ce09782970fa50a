package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TestGetCodeUnwrapsChains ensures codes survive fmt.Errorf wrapping.
func TestGetCodeUnwrapsChains(t *testing.T) {
	base := New(CodeNotFound, "layer missing")
	wrapped := fmt.Errorf("remove layer: %w", base)
	if got := GetCode(wrapped); got != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", got)
	}
	if !IsCode(wrapped, CodeNotFound) {
		t.Fatalf("IsCode should match through wrapping")
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Fatalf("plain errors should map to UNKNOWN")
	}
}

// TestErrorIsMatchesByCode ensures errors.Is compares codes, not instances.
func TestErrorIsMatchesByCode(t *testing.T) {
	a := New(CodeEmptyStack, "nothing to undo")
	b := New(CodeEmptyStack, "nothing to redo")
	if !errors.Is(a, b) {
		t.Fatalf("errors with the same code should match")
	}
	c := New(CodeNotLoaded, "asset not loaded")
	if errors.Is(a, c) {
		t.Fatalf("errors with different codes should not match")
	}
}

// TestGRPCCodeMapping checks the taxonomy maps to the expected status codes.
func TestGRPCCodeMapping(t *testing.T) {
	cases := []struct {
		code Code
		want codes.Code
	}{
		{CodeNotLoaded, codes.NotFound},
		{CodeNotFound, codes.NotFound},
		{CodeOutOfRange, codes.OutOfRange},
		{CodeTypeMismatch, codes.InvalidArgument},
		{CodeInvalidArgument, codes.InvalidArgument},
		{CodeEmptyStack, codes.FailedPrecondition},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range cases {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s mapped to %v, want %v", tc.code, got, tc.want)
		}
	}
}

// TestToGRPCStatusAttachesErrorInfo verifies the errdetails payload.
func TestToGRPCStatusAttachesErrorInfo(t *testing.T) {
	err := WithMetadata(CodeOutOfRange, "palette index 300 out of range", map[string]string{
		"index": "300",
	}).ToGRPCStatus()

	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected a gRPC status error")
	}
	if st.Code() != codes.OutOfRange {
		t.Fatalf("expected OutOfRange, got %v", st.Code())
	}
	if len(st.Details()) != 1 {
		t.Fatalf("expected one detail, got %d", len(st.Details()))
	}
}
