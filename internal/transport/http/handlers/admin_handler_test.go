package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	tributesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/tributes"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/dto"
)

func TestAdminListMessagesIncludesPrivate(t *testing.T) {
	store := &tributeStoreStub{}
	if _, err := store.Insert(context.Background(), model.Message{
		Name: "Public Pat", Message: "shared", IsPublic: true, Type: "text",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Insert(context.Background(), model.Message{
		Name: "Private Pam", Message: "family only", IsPublic: false, Type: "text",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := tributesvc.NewService(store, &blobStorageStub{}, nil, 6, nil)
	handler := NewAdminHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	rr := httptest.NewRecorder()
	handler.ListMessages(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var res dto.MessagesListResponse
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want both public and private rows", len(res.Items))
	}
}

func TestAdminListMessagesWithoutStorage(t *testing.T) {
	handler := NewAdminHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	rr := httptest.NewRecorder()
	handler.ListMessages(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
