package task

import (
	"context"
	"testing"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type bulkProcessorStub struct {
	done chan struct{}
	in   port.ProcessBulkInput
}

func (s *bulkProcessorStub) ProcessBulk(ctx context.Context, in port.ProcessBulkInput) error {
	s.in = in
	close(s.done)
	return nil
}

type panickingProcessor struct {
	entered chan struct{}
}

func (p *panickingProcessor) ProcessBulk(ctx context.Context, in port.ProcessBulkInput) error {
	close(p.entered)
	panic("processor blew up")
}

func TestInlineDispatcher_RunsProcessor(t *testing.T) {
	stub := &bulkProcessorStub{done: make(chan struct{})}
	d := NewInlineDispatcher(stub)

	in := port.ProcessBulkInput{BatchID: "batch-1", UserID: 7, URLs: []string{"url1"}}
	if err := d.EnqueueProcessBulk(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-stub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("processor was never invoked")
	}
	if stub.in.BatchID != "batch-1" || stub.in.UserID != 7 || len(stub.in.URLs) != 1 {
		t.Errorf("processor got wrong input: %+v", stub.in)
	}
}

func TestInlineDispatcher_SurvivesPanickingProcessor(t *testing.T) {
	proc := &panickingProcessor{entered: make(chan struct{})}
	d := NewInlineDispatcher(proc)

	if err := d.EnqueueProcessBulk(context.Background(), port.ProcessBulkInput{BatchID: "batch-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-proc.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("processor was never invoked")
	}
	// Let the goroutine finish unwinding; an unrecovered panic would
	// kill the test binary here.
	time.Sleep(50 * time.Millisecond)
}
