package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/claimflow/internal/application/service"
	"github.com/campusworks/claimflow/internal/domain/claim"
)

// stubClaimService embeds the interface so each test overrides only the
// methods its routes reach
type stubClaimService struct {
	service.ClaimService
	profiles   []*claim.LecturerProfile
	byLecturer map[string][]*claim.Claim
}

func (s *stubClaimService) ListProfiles(ctx context.Context) ([]*claim.LecturerProfile, error) {
	return s.profiles, nil
}

func (s *stubClaimService) GetByLecturer(ctx context.Context, lecturerID string) ([]*claim.Claim, error) {
	return s.byLecturer[lecturerID], nil
}

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestServer(claimSvc service.ClaimService) *Server {
	return NewServer(DefaultServerConfig(), claimSvc, nil, nil, "", nopLogger{})
}

func TestListProfilesRoute(t *testing.T) {
	svc := &stubClaimService{
		profiles: []*claim.LecturerProfile{
			{ID: "l1", FullName: "N. Dlamini"},
			// No claims on record; must still appear
			{ID: "l2", FullName: "T. Mokoena"},
		},
	}
	server := newTestServer(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                    `json:"success"`
		Data    []claim.LecturerProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "l2", resp.Data[1].ID)
}

func TestListLecturerClaimsRoute(t *testing.T) {
	svc := &stubClaimService{
		byLecturer: map[string][]*claim.Claim{
			"lect-1": {
				{ID: "a", LecturerID: "lect-1", HoursWorked: 10, HourlyRate: 100, Status: claim.StatusPending},
				{ID: "b", LecturerID: "lect-1", HoursWorked: 2, HourlyRate: 50, Status: claim.StatusApproved},
			},
		},
	}
	server := newTestServer(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lecturers/lect-1/claims", nil)
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    []ClaimResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "a", resp.Data[0].ID)
	assert.InDelta(t, 1000, resp.Data[0].Amount, 0.001, "amount is derived per read")
}

func TestListLecturerClaimsRouteUnknownLecturer(t *testing.T) {
	server := newTestServer(&stubClaimService{byLecturer: map[string][]*claim.Claim{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lecturers/nobody/claims", nil)
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    []ClaimResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}
