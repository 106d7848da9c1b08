package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/g2g/mri/internal/platform/auth"
	"github.com/g2g/mri/internal/platform/errs"
)

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) List(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errs.NotFound("user %s not found", id)
	}
	cp := *u
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return errs.NotFound("user %s not found", u.ID)
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockRepo) ListAdminIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for _, u := range m.users {
		if u.Role == auth.RoleAdmin && u.Verified {
			ids = append(ids, u.ID.String())
		}
	}
	return ids, nil
}

func TestUpdateFlags(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.users[id] = &User{ID: id, Name: "N", Role: auth.RoleMedicalStaff}
	svc := NewService(repo)

	verified := true
	canDownload := true
	role := auth.RoleDoctor
	u, err := svc.Update(context.Background(), id, UpdateInput{
		Role: &role, Verified: &verified, CanDownload: &canDownload,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Role != auth.RoleDoctor || !u.Verified || !u.CanDownload {
		t.Errorf("flags not applied: %+v", u)
	}
}

func TestUpdateRejectsUnknownRole(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.users[id] = &User{ID: id}
	svc := NewService(repo)

	role := "janitor"
	if _, err := svc.Update(context.Background(), id, UpdateInput{Role: &role}); !errs.Is(err, errs.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc := NewService(newMockRepo())
	verified := true
	if _, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Verified: &verified}); !errs.Is(err, errs.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateLeavesNilFieldsAlone(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.users[id] = &User{ID: id, Role: auth.RoleDoctor, Verified: true, CanDownload: true}
	svc := NewService(repo)

	verified := false
	u, err := svc.Update(context.Background(), id, UpdateInput{Verified: &verified})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Verified {
		t.Error("verified should be cleared")
	}
	if u.Role != auth.RoleDoctor || !u.CanDownload {
		t.Errorf("untouched fields changed: %+v", u)
	}
}
