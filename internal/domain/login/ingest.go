package login

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

type IngestConfig struct {
	MaxMessages int
	WaitTime    time.Duration
	// после MaxEmptyPolls пустых ответов подряд между опросами растет пауза: IdleStep, 2*IdleStep, ...
	MaxEmptyPolls int
	// 0 - опрашивать, пока не отменен контекст
	MaxConsecutiveEmptyPolls int
	IdleStep                 time.Duration
}

// PollStats - итог одного опроса очереди
type PollStats struct {
	Received int
	Loaded   int
	Rejected int
}

// Ingester переносит события входа из очереди в user_logins: разбор, проверка, маскирование, вставка
type Ingester struct {
	queue  Queue
	store  Store
	cipher *Cipher
	cfg    IngestConfig
	log    *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewIngester(queue Queue, store Store, c *Cipher, cfg IngestConfig, log *slog.Logger) *Ingester {
	return &Ingester{
		queue:  queue,
		store:  store,
		cipher: c,
		cfg:    cfg,
		log:    log.With(slog.String("component", "login_ingester")),
		sleep:  sleepCtx,
	}
}

// Poll забирает одну пачку сообщений. Невалидные сообщения удаляются сразу,
// валидные - только после успешной вставки.
func (in *Ingester) Poll(ctx context.Context) (PollStats, error) {
	messages, err := in.queue.Receive(ctx, in.cfg.MaxMessages, in.cfg.WaitTime)
	if err != nil {
		return PollStats{}, fmt.Errorf("receive messages: %w", err)
	}

	stats := PollStats{Received: len(messages)}
	if len(messages) == 0 {
		return stats, nil
	}

	logins := make([]Login, 0, len(messages))
	done := make([]Message, 0, len(messages))
	var rejected []Message
	for _, msg := range messages {
		event, err := ParseEvent(msg.Body)
		if err != nil {
			in.log.Warn("Отброшено сообщение",
				slog.String("message_id", msg.ID),
				slog.Any("error", err),
			)
			rejected = append(rejected, msg)
			continue
		}
		logins = append(logins, event.Mask(in.cipher))
		done = append(done, msg)
	}
	stats.Rejected = len(rejected)

	if len(logins) > 0 {
		if err := in.store.InsertBatch(ctx, logins); err != nil {
			return stats, fmt.Errorf("insert logins: %w", err)
		}
		stats.Loaded = len(logins)
	}

	if err := in.queue.Delete(ctx, append(done, rejected...)); err != nil {
		return stats, fmt.Errorf("delete messages: %w", err)
	}

	in.log.Info("Пачка загружена",
		slog.Int("received", stats.Received),
		slog.Int("loaded", stats.Loaded),
		slog.Int("rejected", stats.Rejected),
	)
	return stats, nil
}

// Run опрашивает очередь до отмены ctx или до MaxConsecutiveEmptyPolls пустых ответов подряд.
// Ошибка опроса не останавливает цикл.
func (in *Ingester) Run(ctx context.Context) error {
	empty := 0
	wait := in.cfg.IdleStep

	for {
		if ctx.Err() != nil {
			return nil
		}

		stats, err := in.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			in.log.Error("Ошибка опроса очереди", slog.Any("error", err))
			if err := in.sleep(ctx, in.cfg.IdleStep); err != nil {
				return nil
			}
			continue
		}

		if stats.Received > 0 {
			empty = 0
			wait = in.cfg.IdleStep
			continue
		}

		empty++
		if in.cfg.MaxConsecutiveEmptyPolls > 0 && empty >= in.cfg.MaxConsecutiveEmptyPolls {
			in.log.Info("Очередь пуста, остановка", slog.Int("empty_polls", empty))
			return nil
		}
		if empty >= in.cfg.MaxEmptyPolls {
			in.log.Debug("Пустые ответы подряд, пауза",
				slog.Int("empty_polls", empty),
				slog.Duration("wait", wait),
			)
			if err := in.sleep(ctx, wait); err != nil {
				return nil
			}
			wait += in.cfg.IdleStep
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
