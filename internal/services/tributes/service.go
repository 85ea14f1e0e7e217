package tributes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	"github.com/SodiqOgundairo/condolence-backend/internal/pkg/paging"
	"github.com/SodiqOgundairo/condolence-backend/internal/pkg/validate"
	"github.com/SodiqOgundairo/condolence-backend/internal/services/media"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrMessageRequired   = errors.New("message is required")
	ErrRecordingRequired = errors.New("recording is required")
)

// VoicenotePlaceholder fills the text column of voice tributes so listings
// always have something to render next to the player.
const VoicenotePlaceholder = "Voice note"

const voicenoteKeyPrefix = "voicenotes"

type Store interface {
	Insert(ctx context.Context, m model.Message) (model.Message, error)
	ListPublic(ctx context.Context) ([]model.Message, error)
	ListAll(ctx context.Context) ([]model.Message, error)
}

type BlobStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Page is one window of the public snapshot.
type Page struct {
	Messages   []model.Message
	Page       int
	TotalPages int
	Total      int
}

// Service accepts tribute submissions and serves the public listing from an
// in-memory snapshot refreshed on a fixed cadence, so reads never wait on
// the database.
type Service struct {
	store    Store
	storage  BlobStorage
	notifier Notifier
	log      *zap.Logger
	pageSize int

	mu       sync.RWMutex
	snapshot []model.Message
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

// SubmitText validates and stores a text tribute. Validation failures are
// reported before anything is written.
func (s *Service) SubmitText(ctx context.Context, name, message string, isPublic bool) (model.Message, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if !validate.Required(name) {
		return model.Message{}, ErrNameRequired
	}
	if !validate.Required(message) {
		return model.Message{}, ErrMessageRequired
	}

	saved, err := s.store.Insert(ctx, model.Message{
		Name:     name,
		Message:  message,
		IsPublic: isPublic,
		Type:     enums.MessageTypeText,
	})
	if err != nil {
		return model.Message{}, fmt.Errorf("insert text tribute: %w", err)
	}

	s.notify(ctx, fmt.Sprintf("New tribute from %s", saved.Name))
	return saved, nil
}

// SubmitVoice uploads the recording first and inserts the row only after the
// upload succeeds. If the insert then fails the uploaded blob is removed so
// no orphan objects accumulate.
func (s *Service) SubmitVoice(ctx context.Context, name, fileName, contentType string, body io.Reader, size int64, isPublic bool) (model.Message, error) {
	name = strings.TrimSpace(name)
	if !validate.Required(name) {
		return model.Message{}, ErrNameRequired
	}
	if body == nil || size <= 0 {
		return model.Message{}, ErrRecordingRequired
	}

	key, err := media.BuildObjectKey(voicenoteKeyPrefix, name, fileName)
	if err != nil {
		return model.Message{}, fmt.Errorf("build voicenote key: %w", err)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.storage.Put(ctx, key, body, size, contentType)
	if err != nil {
		return model.Message{}, fmt.Errorf("upload voicenote: %w", err)
	}

	saved, err := s.store.Insert(ctx, model.Message{
		Name:         name,
		Message:      VoicenotePlaceholder,
		IsPublic:     isPublic,
		Type:         enums.MessageTypeVoicenote,
		VoicenoteURL: url,
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn("delete orphaned voicenote", zap.String("key", key), zap.Error(delErr))
		}
		return model.Message{}, fmt.Errorf("insert voice tribute: %w", err)
	}

	s.notify(ctx, fmt.Sprintf("New voice tribute from %s", saved.Name))
	return saved, nil
}

// RefreshPublic reloads the public snapshot from the store. Readers keep
// seeing the previous snapshot until the swap.
func (s *Service) RefreshPublic(ctx context.Context) error {
	messages, err := s.store.ListPublic(ctx)
	if err != nil {
		return fmt.Errorf("list public tributes: %w", err)
	}

	s.mu.Lock()
	s.snapshot = messages
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// ListPublic serves one page of the snapshot. An out-of-range page is
// clamped, never an error; the empty set is a single empty page 1.
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

	window := make([]model.Message, hi-lo)
	copy(window, s.snapshot[lo:hi])

	return Page{
		Messages:   window,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// ListAll returns every tribute, private ones included. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]model.Message, error) {
	messages, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all tributes: %w", err)
	}
	return messages, nil
}

func (s *Service) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.notifier.Send(notifyCtx, text); err != nil {
		s.log.Warn("send tribute notification", zap.Error(err))
	}
}
