package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsJobs(t *testing.T) {
	p := NewWorkerPool(4, 16)
	p.Start(context.Background())

	var ran int32
	jobs := 100
	for i := 0; i < jobs; i++ {
		err := p.Submit(func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := atomic.LoadInt32(&ran); int(got) != jobs {
		t.Fatalf("expected %d jobs executed, got %d", jobs, got)
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	p := NewWorkerPool(1, 2)
	p.Start(context.Background())
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := p.Submit(func(ctx context.Context) error { return nil }); err != ErrPoolClosed {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestWorkerPoolReportsFirstError(t *testing.T) {
	p := NewWorkerPool(1, 4)
	p.Start(context.Background())

	boom := errors.New("boom")
	if err := p.Submit(func(ctx context.Context) error { return boom }); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := p.Submit(func(ctx context.Context) error { return errors.New("later") }); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := p.Close(); err != boom {
		t.Fatalf("expected first error, got %v", err)
	}
}

func TestWorkerPoolErrorCancelsRemainingJobs(t *testing.T) {
	p := NewWorkerPool(1, 4)
	p.Start(context.Background())

	boom := errors.New("boom")
	sawCancel := make(chan bool, 1)

	_ = p.Submit(func(ctx context.Context) error { return boom })
	_ = p.Submit(func(ctx context.Context) error {
		sawCancel <- ctx.Err() != nil
		return nil
	})

	if err := p.Close(); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
	select {
	case canceled := <-sawCancel:
		if !canceled {
			t.Fatal("expected second job to observe a canceled context")
		}
	default:
		// Worker exited on cancellation before running the second job,
		// which is also a valid abort path.
	}
}
