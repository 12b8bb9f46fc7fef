package facility

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/user"
)

type fakeRepo struct {
	facilities map[uuid.UUID]*Facility
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{facilities: map[uuid.UUID]*Facility{}}
}

func (f *fakeRepo) Create(ctx context.Context, fc *Facility) error {
	f.facilities[fc.ID] = fc
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return f.facilities[id], nil
}

func (f *fakeRepo) Update(ctx context.Context, fc *Facility) error {
	f.facilities[fc.ID] = fc
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.facilities, id)
	return nil
}

// List applies the same visibility rules as the SQL: drafts only show
// up when IncludeUnpublished is set, owner filter narrows to one tenant.
func (f *fakeRepo) List(ctx context.Context, filter *Filter, sortBy SortBy, pagination *Pagination) ([]*Facility, int, error) {
	out := []*Facility{}
	for _, fc := range f.facilities {
		if !fc.IsPublished && !filter.IncludeUnpublished {
			continue
		}
		if filter.OwnerID != nil && fc.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, fc)
	}
	return out, len(out), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	return nil
}
func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error { return nil }

func facilityFixture() (*Service, *fakeRepo, *fakeUserRepo) {
	repo := newFakeRepo()
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
	return NewService(repo, userRepo), repo, userRepo
}

func TestGetByIDHidesUnpublishedFromStrangers(t *testing.T) {
	svc, repo, _ := facilityFixture()
	ownerID := uuid.New()
	draft := &Facility{ID: uuid.New(), OwnerID: ownerID, Name: "Draft Club", IsPublished: false}
	repo.facilities[draft.ID] = draft

	if _, err := svc.GetByID(context.Background(), draft.ID, uuid.New()); err != ErrFacilityNotFound {
		t.Fatalf("stranger: err = %v, want ErrFacilityNotFound", err)
	}

	got, err := svc.GetByID(context.Background(), draft.ID, ownerID)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if got.ID != draft.ID {
		t.Fatalf("owner got facility %s, want %s", got.ID, draft.ID)
	}
}

func TestListMyIncludesDrafts(t *testing.T) {
	svc, repo, _ := facilityFixture()
	ownerID := uuid.New()
	published := &Facility{ID: uuid.New(), OwnerID: ownerID, Name: "Open Club", IsPublished: true}
	draft := &Facility{ID: uuid.New(), OwnerID: ownerID, Name: "Draft Club", IsPublished: false}
	repo.facilities[published.ID] = published
	repo.facilities[draft.ID] = draft

	mine, total, err := svc.ListMy(context.Background(), ownerID, &Pagination{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("ListMy: %v", err)
	}
	if total != 2 || len(mine) != 2 {
		t.Fatalf("ListMy returned %d/%d facilities, want both including the draft", len(mine), total)
	}

	public, total, err := svc.List(context.Background(), &Filter{}, SortByNewest, &Pagination{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(public) != 1 || public[0].ID != published.ID {
		t.Fatalf("public list returned %d facilities, want only the published one", len(public))
	}
}

func TestCreateRequiresOwnerRole(t *testing.T) {
	svc, _, userRepo := facilityFixture()
	customerID := uuid.New()
	userRepo.users[customerID] = &user.User{ID: customerID, Role: user.RoleCustomer, IsActive: true}

	req := &CreateFacilityRequest{Name: "Club", City: "Riga", Address: "Krasta iela 52"}
	if _, err := svc.Create(context.Background(), customerID, req); err != ErrOnlyOwnersAllowed {
		t.Fatalf("err = %v, want ErrOnlyOwnersAllowed", err)
	}

	ownerID := uuid.New()
	userRepo.users[ownerID] = &user.User{ID: ownerID, Role: user.RoleOwner, IsActive: true}
	f, err := svc.Create(context.Background(), ownerID, req)
	if err != nil {
		t.Fatalf("owner create: %v", err)
	}
	if f.OwnerID != ownerID {
		t.Fatalf("OwnerID = %s, want %s", f.OwnerID, ownerID)
	}
}
