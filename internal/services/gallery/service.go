package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	"github.com/SodiqOgundairo/condolence-backend/internal/pkg/paging"
	"github.com/SodiqOgundairo/condolence-backend/internal/pkg/validate"
	"github.com/SodiqOgundairo/condolence-backend/internal/services/media"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrPhotoRequired = errors.New("photo is required")
)

const photoKeyPrefix = "photos"

type Store interface {
	Insert(ctx context.Context, p model.Photo) (model.Photo, error)
	ListPublic(ctx context.Context) ([]model.Photo, error)
	ListAll(ctx context.Context) ([]model.Photo, error)
}

type BlobStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Page is one window of the public gallery snapshot.
type Page struct {
	Photos     []model.Photo
	Page       int
	TotalPages int
	Total      int
}

// Service accepts gallery photo submissions and serves the public gallery
// from a periodically refreshed snapshot. The caption is optional; the
// submitter's name is not.
type Service struct {
	store    Store
	storage  BlobStorage
	notifier Notifier
	log      *zap.Logger
	pageSize int

	mu       sync.RWMutex
	snapshot []model.Photo
	loaded   bool
}

func NewService(store Store, storage BlobStorage, notifier Notifier, pageSize int, log *zap.Logger) *Service {
	if pageSize <= 0 {
		pageSize = 6
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		store:    store,
		storage:  storage,
		notifier: notifier,
		log:      log,
		pageSize: pageSize,
	}
}

// Submit uploads the image first, then records it. A failed insert removes
// the uploaded object.
func (s *Service) Submit(ctx context.Context, name, caption, fileName, contentType string, body io.Reader, size int64, isPublic bool) (model.Photo, error) {
	name = strings.TrimSpace(name)
	caption = strings.TrimSpace(caption)
	if !validate.Required(name) {
		return model.Photo{}, ErrNameRequired
	}
	if body == nil || size <= 0 {
		return model.Photo{}, ErrPhotoRequired
	}

	key, err := media.BuildObjectKey(photoKeyPrefix, name, fileName)
	if err != nil {
		return model.Photo{}, fmt.Errorf("build photo key: %w", err)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.storage.Put(ctx, key, body, size, contentType)
	if err != nil {
		return model.Photo{}, fmt.Errorf("upload photo: %w", err)
	}

	saved, err := s.store.Insert(ctx, model.Photo{
		Name:     name,
		Caption:  caption,
		PhotoURL: url,
		IsPublic: isPublic,
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn("delete orphaned photo", zap.String("key", key), zap.Error(delErr))
		}
		return model.Photo{}, fmt.Errorf("insert photo: %w", err)
	}

	s.notify(ctx, fmt.Sprintf("New gallery photo from %s", saved.Name))
	return saved, nil
}

func (s *Service) RefreshPublic(ctx context.Context) error {
	photos, err := s.store.ListPublic(ctx)
	if err != nil {
		return fmt.Errorf("list public photos: %w", err)
	}

	s.mu.Lock()
	s.snapshot = photos
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// ListPublic serves one page of the gallery snapshot, newest first. An
// out-of-range page is clamped, never an error; the empty set is a single
// empty page 1.
func (s *Service) ListPublic(ctx context.Context, page int) (Page, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		if err := s.RefreshPublic(ctx); err != nil {
			return Page{}, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.snapshot)
	totalPages := paging.TotalPages(total, s.pageSize)
	if totalPages == 0 {
		totalPages = 1
	}
	page = paging.Clamp(page, totalPages)
	lo, hi := paging.Slice(page, s.pageSize, total)

	window := make([]model.Photo, hi-lo)
	copy(window, s.snapshot[lo:hi])

	return Page{
		Photos:     window,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

func (s *Service) ListAll(ctx context.Context) ([]model.Photo, error) {
	photos, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all photos: %w", err)
	}
	return photos, nil
}

func (s *Service) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.notifier.Send(notifyCtx, text); err != nil {
		s.log.Warn("send gallery notification", zap.Error(err))
	}
}
