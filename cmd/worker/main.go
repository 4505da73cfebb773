package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutordesk/internal/config"
	"tutordesk/internal/logging"
	"tutordesk/internal/notify"
	"tutordesk/internal/observability"
	"tutordesk/internal/queue"
	"tutordesk/internal/store"
)

// Worker drains the notification queue and sends parent messages through
// the messaging gateway.
func main() {
	cfg := config.Load()

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "tutordesk-worker")
	if err != nil {
		lg.Sugar.Warnw("sentry disabled", "err", err)
	} else {
		defer flushSentry()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		lg.Sugar.Info("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	gateway := notify.New(cfg.GatewayURL, cfg.GatewaySkip)
	if !cfg.GatewaySkip {
		if err := gateway.Health(ctx); err != nil {
			lg.Sugar.Warnw("messaging gateway not reachable, will retry per message", "err", err)
		} else {
			lg.Sugar.Info("messaging gateway connected")
		}
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		lg.Sugar.Fatalw("queue consume init failed", "err", err)
	}

	lg.Sugar.Info("worker started, waiting for messages")
	for msg := range messages {
		text := messageText(msg)
		if text == "" || msg.ParentPhone == "" {
			continue
		}

		id, err := gateway.Send(ctx, notify.Message{Phone: msg.ParentPhone, Text: text})
		if err != nil {
			lg.Sugar.Errorw("send failed", "type", msg.Type, "student", msg.StudentID, "err", err)
			observability.CaptureErr(err)
			continue
		}
		lg.Sugar.Infow("sent", "type", msg.Type, "student", msg.StudentID, "message_id", id)

		time.Sleep(10 * time.Millisecond)
	}

	lg.Sugar.Info("worker stopped")
}

// messageText composes the parent-facing line for one queue message.
func messageText(msg queue.Message) string {
	switch msg.Type {
	case queue.TypeScan:
		if msg.Paid {
			return fmt.Sprintf("%s checked in for lesson %d.", msg.StudentName, msg.Lesson)
		}
		return fmt.Sprintf("%s checked in for lesson %d. This lesson is not covered by a payment yet.", msg.StudentName, msg.Lesson)
	case queue.TypePayment:
		return fmt.Sprintf("Payment of %.2f received for %s (month: %s). Thank you.", msg.Amount, msg.StudentName, msg.MonthLabel)
	default:
		return ""
	}
}
