package layer

import (
	"context"
	"testing"

	"github.com/curatorsigma/blazing-agi/connection"
	"github.com/curatorsigma/blazing-agi/handler"
)

func recordingLayer(name string, order *[]string) Layer {
	return func(h handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(ctx context.Context, conn *connection.Connection, req *handler.Request) error {
			*order = append(*order, name)
			return h.Handle(ctx, conn, req)
		})
	}
}

func TestChainAppliesOuterFirst(t *testing.T) {
	var order []string
	base := handler.HandlerFunc(func(_ context.Context, _ *connection.Connection, _ *handler.Request) error {
		order = append(order, "base")
		return nil
	})

	composed := Chain(recordingLayer("L1", &order), recordingLayer("L2", &order))(base)

	if err := composed.Handle(context.Background(), nil, &handler.Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"L1", "L2", "base"}
	if len(order) != len(want) {
		t.Fatalf("unexpected order: %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order: %v", order)
		}
	}
}

func TestAndThenBeforeShortCircuits(t *testing.T) {
	ranInner := false
	inner := handler.HandlerFunc(func(_ context.Context, _ *connection.Connection, _ *handler.Request) error {
		ranInner = true
		return nil
	})
	denying := handler.HandlerFunc(func(_ context.Context, _ *connection.Connection, _ *handler.Request) error {
		return errDenied
	})

	wrapped := AndThenBefore(denying)(inner)
	err := wrapped.Handle(context.Background(), nil, &handler.Request{})
	if err != errDenied {
		t.Fatalf("expected errDenied, got %v", err)
	}
	if ranInner {
		t.Fatal("inner handler must not run when the leading handler fails")
	}
}

var errDenied = testError("denied")

type testError string

func (e testError) Error() string { return string(e) }
