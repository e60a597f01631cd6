package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/ecofinds/internal/model"
)

// fakeUserService はUserServiceInterfaceのテスト用フェイク。
type fakeUserService struct {
	user        *model.User
	err         error
	gotUserID   string
	gotUsername string
	gotEmail    string
}

func (f *fakeUserService) Get(ctx context.Context, userID string) (*model.User, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserService) Update(ctx context.Context, userID, username, email string) (*model.User, error) {
	f.gotUserID = userID
	f.gotUsername = username
	f.gotEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestUserHandler_Profile_ReturnsPublicFields(t *testing.T) {
	svc := &fakeUserService{
		user: &model.User{
			ID:           "user-1",
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "secret-hash",
		},
	}
	h := NewUserHandler(svc, false)

	req := authedRequest(t, http.MethodGet, "/profile", "", "user-1")
	w := httptest.NewRecorder()

	h.Profile(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got model.PublicProfile
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != "user-1" || got.Username != "alice" || got.Email != "alice@example.com" {
		t.Errorf("unexpected profile: %+v", got)
	}
	if strings.Contains(w.Body.String(), "secret-hash") {
		t.Error("response must not contain the password hash")
	}
	if svc.gotUserID != "user-1" {
		t.Errorf("userID = %q, want user-1 (must come from token context)", svc.gotUserID)
	}
}

func TestUserHandler_Profile_UserGone_Returns404(t *testing.T) {
	svc := &fakeUserService{err: model.NewNotFoundError()}
	h := NewUserHandler(svc, false)

	req := authedRequest(t, http.MethodGet, "/profile", "", "user-gone")
	w := httptest.NewRecorder()

	h.Profile(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestUserHandler_UpdateProfile_Returns200(t *testing.T) {
	svc := &fakeUserService{
		user: &model.User{ID: "user-1", Username: "alice2", Email: "alice2@example.com"},
	}
	h := NewUserHandler(svc, false)

	body := `{"username":"alice2","email":"alice2@example.com"}`
	req := authedRequest(t, http.MethodPut, "/profile", body, "user-1")
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if svc.gotUsername != "alice2" || svc.gotEmail != "alice2@example.com" {
		t.Errorf("service called with (%q, %q)", svc.gotUsername, svc.gotEmail)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["message"] != "profile updated" {
		t.Errorf("message = %q, want %q", got["message"], "profile updated")
	}
}

func TestUserHandler_UpdateProfile_EmailTaken_Returns400(t *testing.T) {
	svc := &fakeUserService{err: model.NewEmailTakenError()}
	h := NewUserHandler(svc, false)

	body := `{"username":"alice","email":"taken@example.com"}`
	req := authedRequest(t, http.MethodPut, "/profile", body, "user-1")
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestUserHandler_UpdateProfile_MissingFields_Returns400(t *testing.T) {
	svc := &fakeUserService{err: model.NewValidationError("username and email required")}
	h := NewUserHandler(svc, false)

	req := authedRequest(t, http.MethodPut, "/profile", `{"username":""}`, "user-1")
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}
