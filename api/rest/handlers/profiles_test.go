package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"export-orchestrator/core/models"
	"export-orchestrator/core/registry"

	"github.com/gorilla/mux"
)

type fakeProfileStore struct {
	saved   map[string]*models.ExportProfile
	deleted []string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{saved: make(map[string]*models.ExportProfile)}
}

func (f *fakeProfileStore) SaveProfile(profile *models.ExportProfile) error {
	copied := *profile
	f.saved[profile.ID] = &copied
	return nil
}

func (f *fakeProfileStore) DeleteProfile(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newProfileTestSetup(t *testing.T) (*registry.ProfileRegistry, *fakeProfileStore, *mux.Router) {
	t.Helper()

	reg := registry.NewProfileRegistry()
	store := newFakeProfileStore()
	handler := NewProfileHandler(reg, store)

	r := mux.NewRouter()
	r.HandleFunc("/v1/profiles", handler.CreateProfile).Methods("POST")
	r.HandleFunc("/v1/profiles/{id}", handler.UpdateProfile).Methods("PUT")
	r.HandleFunc("/v1/profiles/{id}", handler.DeleteProfile).Methods("DELETE")
	return reg, store, r
}

func customProfile(t *testing.T, reg *registry.ProfileRegistry) *models.ExportProfile {
	t.Helper()

	base, err := reg.Get("web_png")
	if err != nil {
		t.Fatalf("Get builtin: %v", err)
	}
	profile := *base
	profile.ID = ""
	profile.Name = "Gallery PNG"
	return &profile
}

func TestCreateProfilePersists(t *testing.T) {
	reg, store, router := newProfileTestSetup(t)

	body, _ := json.Marshal(CreateProfileRequest{Profile: customProfile(t, reg)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/profiles", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	stored, ok := store.saved[resp["id"]]
	if !ok {
		t.Fatalf("profile %s not mirrored to the store", resp["id"])
	}
	if stored.Name != "Gallery PNG" {
		t.Errorf("stored name = %q", stored.Name)
	}
}

func TestUpdateProfilePersists(t *testing.T) {
	reg, store, router := newProfileTestSetup(t)

	id, err := reg.Register(customProfile(t, reg))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, _ := reg.Get(id)
	updated.Description = "gallery exports"
	body, _ := json.Marshal(updated)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("PUT", "/v1/profiles/"+id, bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	stored, ok := store.saved[id]
	if !ok {
		t.Fatal("updated profile not mirrored to the store")
	}
	if stored.Description != "gallery exports" {
		t.Errorf("stored description = %q", stored.Description)
	}
}

func TestDeleteProfilePersists(t *testing.T) {
	reg, store, router := newProfileTestSetup(t)

	id, err := reg.Register(customProfile(t, reg))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/v1/profiles/"+id, nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != id {
		t.Errorf("deleted = %v, want [%s]", store.deleted, id)
	}
	if _, err := reg.Get(id); err == nil {
		t.Error("profile still present in registry after delete")
	}
}
