package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	out, err := q.Consume(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Message{Type: TypeScan, StudentID: "st-1", Lesson: 9, Paid: true}
	if err := q.Publish(ctx, want); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-out:
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("message never arrived")
	}
}

func TestInMemoryConsumeStopsWithoutReceiver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := NewInMemory(1)
	out, err := q.Consume(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// A queued message with nobody reading out must not wedge the consumer
	// goroutine past cancellation.
	if err := q.Publish(ctx, Message{Type: TypePayment, StudentID: "st-1"}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			// Drain the in-flight message; the channel must close next.
			if _, ok := <-out; ok {
				t.Fatal("consumer channel still open after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("consumer did not shut down after cancel")
	}
}

func TestInMemoryPublishHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewInMemory(0)
	if err := q.Publish(ctx, Message{Type: TypeScan}); err == nil {
		t.Fatal("publish on a cancelled context must fail")
	}
}
