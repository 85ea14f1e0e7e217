package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	tributesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/tributes"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/dto"
)

type tributeStoreStub struct {
	messages []model.Message
	nextID   int
}

func (s *tributeStoreStub) Insert(_ context.Context, m model.Message) (model.Message, error) {
	s.nextID++
	m.ID = fmt.Sprintf("msg-%d", s.nextID)
	m.CreatedAt = time.Now().UTC()
	s.messages = append([]model.Message{m}, s.messages...)
	return m, nil
}

func (s *tributeStoreStub) ListPublic(context.Context) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.IsPublic {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *tributeStoreStub) ListAll(context.Context) ([]model.Message, error) {
	return append([]model.Message(nil), s.messages...), nil
}

type blobStorageStub struct {
	puts []string
}

func (s *blobStorageStub) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	s.puts = append(s.puts, key)
	return "https://cdn.example.com/media/" + key, nil
}

func (s *blobStorageStub) Delete(context.Context, string) error { return nil }

func newMessagesHandlerForTest() (*MessagesHandler, *tributeStoreStub) {
	store := &tributeStoreStub{}
	svc := tributesvc.NewService(store, &blobStorageStub{}, nil, 6, nil)
	return NewMessagesHandler(svc, 20<<20), store
}

func TestCreateMessage(t *testing.T) {
	handler, store := newMessagesHandlerForTest()

	body := `{"name":"Ada","message":"Rest well."}`
	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var res dto.MessageResponse
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Type != "text" {
		t.Fatalf("type = %q, want text", res.Type)
	}
	if !res.IsPublic {
		t.Fatal("is_public should default to true")
	}
	if len(store.messages) != 1 {
		t.Fatalf("stored messages = %d, want 1", len(store.messages))
	}
}

func TestCreateMessageValidation(t *testing.T) {
	handler, store := newMessagesHandlerForTest()

	body := `{"name":"","message":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if len(store.messages) != 0 {
		t.Fatal("invalid submission must not be stored")
	}
}

func TestCreateVoiceMessage(t *testing.T) {
	handler, store := newMessagesHandlerForTest()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "Grace"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("voicenote", "clip.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("opus bytes")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/messages/voice", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	handler.CreateVoice(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var res dto.MessageResponse
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Type != "voicenote" {
		t.Fatalf("type = %q, want voicenote", res.Type)
	}
	if res.Message != tributesvc.VoicenotePlaceholder {
		t.Fatalf("message = %q, want placeholder", res.Message)
	}
	if res.VoicenoteURL == "" {
		t.Fatal("voicenote_url is empty")
	}
	if len(store.messages) != 1 {
		t.Fatalf("stored messages = %d, want 1", len(store.messages))
	}
}

func TestCreateVoiceMessageRequiresRecording(t *testing.T) {
	handler, _ := newMessagesHandlerForTest()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "Grace"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/messages/voice", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	handler.CreateVoice(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestListPublicMessagesPagination(t *testing.T) {
	handler, store := newMessagesHandlerForTest()

	for i := 0; i < 13; i++ {
		if _, err := store.Insert(context.Background(), model.Message{
			Name: "Visitor", Message: fmt.Sprintf("tribute %d", i), IsPublic: true, Type: "text",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/messages?page=99", nil)
	rr := httptest.NewRecorder()
	handler.ListPublic(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var res dto.MessagesPageResponse
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalPages != 3 {
		t.Fatalf("total_pages = %d, want 3", res.TotalPages)
	}
	if res.Page != 3 {
		t.Fatalf("page = %d, want clamped to 3", res.Page)
	}
	if len(res.Items) != 1 {
		t.Fatalf("items = %d, want 1 on the last page", len(res.Items))
	}

	badReq := httptest.NewRequest(http.MethodGet, "/v1/messages?page=abc", nil)
	badRR := httptest.NewRecorder()
	handler.ListPublic(badRR, badReq)
	if badRR.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric page status = %d, want %d", badRR.Code, http.StatusBadRequest)
	}
}
