package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/claimflow/internal/domain/claim"
)

func newClaimService(claims *mockClaimRepo, profiles *mockProfileRepo) ClaimService {
	if claims == nil {
		claims = &mockClaimRepo{}
	}
	if profiles == nil {
		profiles = &mockProfileRepo{}
	}
	return NewClaimService(claims, profiles, mockLogger{})
}

func TestClaimService_Create(t *testing.T) {
	var stored *claim.Claim
	repo := &mockClaimRepo{
		createFunc: func(ctx context.Context, c *claim.Claim) error {
			stored = c
			return nil
		},
	}
	svc := newClaimService(repo, nil)

	in := &claim.Claim{
		LecturerID:  "lect-1",
		Title:       "March tutoring",
		HoursWorked: 12,
		HourlyRate:  300,
		// Caller-supplied status must be ignored
		Status: claim.StatusApproved,
	}

	out, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NotEmpty(t, out.ID, "a new claim gets a generated id")
	assert.Equal(t, claim.StatusPending, out.Status, "new claims always start Pending")
	assert.Nil(t, out.UpdatedAt)
	assert.False(t, out.DateSubmitted.IsZero())
}

func TestClaimService_CreateKeepsProvidedID(t *testing.T) {
	svc := newClaimService(nil, nil)

	out, err := svc.Create(context.Background(), &claim.Claim{ID: "c-42", LecturerID: "lect-1"})
	require.NoError(t, err)
	assert.Equal(t, "c-42", out.ID)
}

func TestClaimService_CreateRequiresLecturer(t *testing.T) {
	svc := newClaimService(nil, nil)

	_, err := svc.Create(context.Background(), &claim.Claim{LecturerID: "   "})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), nil)
	assert.Error(t, err)
}

func TestClaimService_GetByIDBlank(t *testing.T) {
	called := false
	repo := &mockClaimRepo{
		getByIDFunc: func(ctx context.Context, id string) (*claim.Claim, error) {
			called = true
			return nil, nil
		},
	}
	svc := newClaimService(repo, nil)

	c, err := svc.GetByID(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.False(t, called, "blank id must not hit the store")
}

func TestClaimService_GetByLecturerBlank(t *testing.T) {
	svc := newClaimService(nil, nil)

	claims, err := svc.GetByLecturer(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, claims)
	assert.NotNil(t, claims)
}

func TestClaimService_SetStatus(t *testing.T) {
	existing := &claim.Claim{ID: "c-1", LecturerID: "lect-1", Status: claim.StatusPending}

	var updated *claim.Claim
	repo := &mockClaimRepo{
		getByIDFunc: func(ctx context.Context, id string) (*claim.Claim, error) {
			if id == "c-1" {
				return existing, nil
			}
			return nil, nil
		},
		updateFunc: func(ctx context.Context, c *claim.Claim) error {
			updated = c
			return nil
		},
	}
	svc := newClaimService(repo, nil)

	ok, err := svc.SetStatus(context.Background(), "c-1", "approved")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotNil(t, updated)
	assert.Equal(t, claim.StatusApproved, updated.Status)
	assert.Nil(t, updated.UpdatedAt, "manual override must not stamp UpdatedAt")
}

func TestClaimService_SetStatusNoOps(t *testing.T) {
	updateCalled := false
	repo := &mockClaimRepo{
		updateFunc: func(ctx context.Context, c *claim.Claim) error {
			updateCalled = true
			return nil
		},
	}
	svc := newClaimService(repo, nil)

	tests := []struct {
		name      string
		claimID   string
		newStatus string
	}{
		{"blank id", "", "Approved"},
		{"blank status", "c-1", "   "},
		{"unrecognized status", "c-1", "Archived"},
		{"unknown claim", "missing", "Approved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.SetStatus(context.Background(), tt.claimID, tt.newStatus)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	assert.False(t, updateCalled, "no-op paths must never reach Update")
}

func TestClaimService_SetStatusStorageError(t *testing.T) {
	repo := &mockClaimRepo{
		getByIDFunc: func(ctx context.Context, id string) (*claim.Claim, error) {
			return nil, errors.New("db locked")
		},
	}
	svc := newClaimService(repo, nil)

	ok, err := svc.SetStatus(context.Background(), "c-1", "Approved")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestClaimService_Delete(t *testing.T) {
	repo := &mockClaimRepo{
		deleteFunc: func(ctx context.Context, id string) (bool, error) {
			return id == "c-1", nil
		},
	}
	svc := newClaimService(repo, nil)

	ok, err := svc.Delete(context.Background(), "c-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(context.Background(), " ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClaimService_SaveProfileRequiresID(t *testing.T) {
	svc := newClaimService(nil, nil)

	_, err := svc.SaveProfile(context.Background(), &claim.LecturerProfile{FullName: "T. Mokoena"})
	assert.Error(t, err)

	_, err = svc.SaveProfile(context.Background(), nil)
	assert.Error(t, err)
}

func TestClaimService_ListProfiles(t *testing.T) {
	profiles := &mockProfileRepo{
		listFunc: func(ctx context.Context) ([]*claim.LecturerProfile, error) {
			// Includes a lecturer with no claims on record
			return []*claim.LecturerProfile{
				{ID: "l1", FullName: "N. Dlamini"},
				{ID: "l2", FullName: "T. Mokoena"},
			}, nil
		},
	}
	svc := newClaimService(nil, profiles)

	got, err := svc.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "l1", got[0].ID)
	assert.Equal(t, "l2", got[1].ID)
}

func TestClaimService_ListProfilesStorageError(t *testing.T) {
	profiles := &mockProfileRepo{
		listFunc: func(ctx context.Context) ([]*claim.LecturerProfile, error) {
			return nil, errors.New("db locked")
		},
	}
	svc := newClaimService(nil, profiles)

	got, err := svc.ListProfiles(context.Background())
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestClaimService_FilterForViewer(t *testing.T) {
	claims := []*claim.Claim{
		{ID: "a", LecturerID: "lect-1"},
		{ID: "b", LecturerID: "lect-2"},
		{ID: "c", LecturerID: "lect-1"},
		nil,
	}
	svc := newClaimService(nil, nil)

	t.Run("lecturer sees only own claims", func(t *testing.T) {
		got := svc.FilterForViewer(claims, claim.RoleLecturer, "lect-1")
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("lecturer with no claims sees none", func(t *testing.T) {
		got := svc.FilterForViewer(claims, claim.RoleLecturer, "lect-9")
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("coordinator sees everything", func(t *testing.T) {
		got := svc.FilterForViewer(claims, claim.RoleCoordinator, "lect-1")
		assert.Len(t, got, len(claims))
	})

	t.Run("unknown role sees everything", func(t *testing.T) {
		got := svc.FilterForViewer(claims, claim.RoleUnknown, "")
		assert.Len(t, got, len(claims))
	})
}
