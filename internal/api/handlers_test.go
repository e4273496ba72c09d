package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mergington/activities/internal/domain"
)

func newTestRouter(repo domain.EnrollmentRepository) *mux.Router {
	handler := NewHandler(domain.NewService(repo))
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func chessClubRepo() *stubRepo {
	return &stubRepo{
		activities: []domain.Activity{
			{
				ID:              1,
				Name:            "Chess Club",
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants: []domain.Participant{
					{Email: "michael@mergington.edu"},
				},
			},
		},
		participants: map[string]bool{"michael@mergington.edu": true},
		enrolled: map[int64]map[string]bool{
			1: {"michael@mergington.edu": true},
		},
	}
}

func TestListActivities(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]ActivityDetail
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	detail, ok := resp["Chess Club"]
	if !ok {
		t.Fatalf("expected Chess Club in response, got %v", resp)
	}
	if detail.MaxParticipants != 12 {
		t.Fatalf("expected max_participants 12 got %d", detail.MaxParticipants)
	}
	if detail.Schedule != "Fridays, 3:30 PM - 5:00 PM" {
		t.Fatalf("unexpected schedule %q", detail.Schedule)
	}
	if len(detail.Participants) != 1 || detail.Participants[0] != "michael@mergington.edu" {
		t.Fatalf("unexpected participants %v", detail.Participants)
	}
}

func TestSignupSuccess(t *testing.T) {
	repo := chessClubRepo()
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=new@mergington.edu", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Signed up new@mergington.edu for Chess Club" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if !repo.enrolled[1]["new@mergington.edu"] {
		t.Fatalf("expected enrollment to be recorded")
	}
}

func TestSignupDuplicate(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["detail"] != "Student is already signed up" {
		t.Fatalf("unexpected detail %q", resp["detail"])
	}
}

func TestSignupUnknownActivity(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodPost, "/activities/Fencing/signup?email=new@mergington.edu", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestSignupMissingEmail(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestUnregisterSuccess(t *testing.T) {
	repo := chessClubRepo()
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Unregistered michael@mergington.edu from Chess Club" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if repo.enrolled[1]["michael@mergington.edu"] {
		t.Fatalf("expected enrollment to be removed")
	}
}

func TestUnregisterNotSignedUp(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodDelete, "/activities/Chess%20Club/unregister?email=ghost@mergington.edu", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["detail"] != "Student is not signed up for this activity" {
		t.Fatalf("unexpected detail %q", resp["detail"])
	}
}

func TestUnregisterMissingEmail(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodDelete, "/activities/Chess%20Club/unregister", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestUnregisterUnknownActivity(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodDelete, "/activities/Fencing/unregister?email=michael@mergington.edu", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "ok" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRootRedirectsToStaticIndex(t *testing.T) {
	router := newTestRouter(chessClubRepo())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307 got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/static/index.html" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

type stubRepo struct {
	activities   []domain.Activity
	participants map[string]bool
	enrolled     map[int64]map[string]bool
}

func (s *stubRepo) ListActivities(_ context.Context) ([]domain.Activity, error) {
	return s.activities, nil
}

func (s *stubRepo) FindActivityByName(_ context.Context, name string) (*domain.Activity, error) {
	for i := range s.activities {
		if s.activities[i].Name == name {
			return &s.activities[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepo) FindParticipantByEmail(_ context.Context, email string) (*domain.Participant, error) {
	if s.participants[email] {
		return &domain.Participant{Email: email}, nil
	}
	return nil, nil
}

func (s *stubRepo) Enrolled(_ context.Context, activityID int64, email string) (bool, error) {
	return s.enrolled[activityID][email], nil
}

func (s *stubRepo) Enroll(_ context.Context, activityID int64, email string) error {
	s.participants[email] = true
	if s.enrolled[activityID] == nil {
		s.enrolled[activityID] = map[string]bool{}
	}
	s.enrolled[activityID][email] = true
	return nil
}

func (s *stubRepo) Withdraw(_ context.Context, activityID int64, email string) error {
	delete(s.enrolled[activityID], email)
	return nil
}
