package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/pkg/log"
	"github.com/skrmarket/listings-service/internal/storage"
)

// uploadAll загружает файлы по порядку и возвращает их URL в том же порядке.
// Первый сбой прерывает загрузку; уже загруженные блобы ставятся в журнал
// очистки, а ошибка возвращается вызывающему.
func (s *Service) uploadAll(ctx context.Context, ownerID, listingID string, files []models.ImageFile) ([]string, error) {
	urls := make([]string, 0, len(files))

	for i, f := range files {
		u, err := s.images.UploadImage(ctx, ownerID, listingID, f)
		if err != nil {
			s.deleteAll(ctx, urls, "upload_aborted")
			return nil, fmt.Errorf("upload image %d/%d: %w", i+1, len(files), err)
		}

		urls = append(urls, u)
	}

	return urls, nil
}

// deleteAll — best-effort удаление блобов по списку URL.
// Каждый URL обрабатывается независимо: отсутствие объекта считается успехом,
// любой иной сбой логируется и попадает в журнал очистки, чтобы джанитор
// дочистил блоб позже. Ошибок не возвращает.
func (s *Service) deleteAll(ctx context.Context, urls []string, cause string) {
	if len(urls) == 0 {
		return
	}

	lg := log.From(ctx).With("op", "service/assets/deleteAll", "cause", cause)

	var failed []string
	for _, u := range urls {
		err := s.images.RemoveImage(ctx, u)
		if err == nil || errors.Is(err, storage.ErrImageNotFound) {
			continue
		}

		lg.Warn("blob removal failed, enqueueing for cleanup", "url", u, "err", err)
		failed = append(failed, u)
	}

	if len(failed) == 0 {
		return
	}

	if err := s.cleanup.EnqueueOrphans(ctx, failed, cause); err != nil {
		// Журнал недоступен: блобы останутся осиротевшими до ручной чистки.
		lg.Error("failed to enqueue orphaned blobs", "count", len(failed), "err", err)
	}
}

// reconcileImages сверяет список keep с текущими изображениями объявления.
// Возвращает keep в порядке, заданном клиентом, и список отцепляемых URL.
// Если keep содержит URL не из current, возвращает ошибку.
func reconcileImages(current, keep []string) (kept []string, removed []string, err error) {
	present := make(map[string]bool, len(current))
	for _, u := range current {
		present[u] = true
	}

	seen := make(map[string]bool, len(keep))
	for _, u := range keep {
		if !present[u] {
			return nil, nil, fmt.Errorf("unknown image url %q", u)
		}

		if seen[u] {
			continue
		}

		seen[u] = true
		kept = append(kept, u)
	}

	for _, u := range current {
		if !seen[u] {
			removed = append(removed, u)
		}
	}

	return kept, removed, nil
}
