package service

import (
	"context"
	"errors"
	"time"

	"github.com/skrmarket/listings-service/internal/pkg/log"
	"github.com/skrmarket/listings-service/internal/storage"
)

// RunImageJanitor — фоновый цикл дочистки осиротевших блобов.
// Раз в cfg.Cleanup.Interval выбирает пачку записей журнала и пытается
// удалить блобы повторно. Завершается по отмене контекста.
func (s *Service) RunImageJanitor(ctx context.Context) {
	lg := log.From(ctx).With("op", "service/cleanup/RunImageJanitor")
	lg.Info("image janitor started", "interval", s.cfg.Cleanup.Interval.String())

	ticker := time.NewTicker(s.cfg.Cleanup.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("image janitor stopped")
			return
		case <-ticker.C:
			s.drainOrphans(ctx)
		}
	}
}

// drainOrphans обрабатывает одну пачку журнала очистки.
// Успешное удаление (и уже отсутствующий блоб) снимает запись;
// сбой фиксируется в записи и оставляет её для следующего прохода.
func (s *Service) drainOrphans(ctx context.Context) {
	lg := log.From(ctx).With("op", "service/cleanup/drainOrphans")

	batch, err := s.cleanup.OrphanBatch(ctx, s.cfg.Cleanup.BatchSize)
	if err != nil {
		lg.Error("failed to fetch orphan batch", "err", err)
		return
	}

	if len(batch) == 0 {
		return
	}

	var resolved, failed int
	for _, entry := range batch {
		if ctx.Err() != nil {
			return
		}

		err := s.images.RemoveImage(ctx, entry.URL)
		if err == nil || errors.Is(err, storage.ErrImageNotFound) {
			if err := s.cleanup.ResolveOrphan(ctx, entry.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				lg.Error("failed to resolve orphan entry", "id", entry.ID, "err", err)
				continue
			}

			resolved++
			continue
		}

		failed++
		if err := s.cleanup.MarkOrphanAttempt(ctx, entry.ID, err.Error()); err != nil && !errors.Is(err, storage.ErrNotFound) {
			lg.Error("failed to mark orphan attempt", "id", entry.ID, "err", err)
		}
	}

	lg.Info("orphan batch processed", "total", len(batch), "resolved", resolved, "failed", failed)
}
