package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-portal/internal/domain"
)

// In-memory repository stand-ins. Misses surface pgx.ErrNoRows, matching the
// Postgres implementations; failErr forces the next call to fail.

type fakeCustomerRepo struct {
	byID    map[string]domain.Customer
	order   []string
	seq     int
	failErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: map[string]domain.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.seq++
	customer.ID = fmt.Sprintf("cust-%d", r.seq)
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	r.byID[customer.ID] = *customer
	r.order = append(r.order, customer.ID)
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if r.failErr != nil {
		return r.failErr
	}
	existing, ok := r.byID[customer.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now()
	r.byID[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	if r.failErr != nil {
		return r.failErr
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	customer, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []domain.AuditLog
	seq     int
	failErr error
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.seq++
	entry.ID = fmt.Sprintf("audit-%d", r.seq)
	entry.CreatedAt = time.Unix(int64(r.seq), 0)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) ListRecent(_ context.Context, limit int) ([]domain.AuditLog, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]domain.AuditLog, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *fakeAuditRepo) byAction(action string) []domain.AuditLog {
	var out []domain.AuditLog
	for _, entry := range r.entries {
		if entry.Action == action {
			out = append(out, entry)
		}
	}
	return out
}

type fakeUserRepo struct {
	byID map[string]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]domain.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.byID)+1)
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	r.byID[id] = user
	return nil
}

type fakeTodoRepo struct {
	byID  map[string]domain.Todo
	order []string
	seq   int
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{byID: map[string]domain.Todo{}}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *domain.Todo) error {
	r.seq++
	todo.ID = fmt.Sprintf("todo-%d", r.seq)
	r.byID[todo.ID] = *todo
	r.order = append(r.order, todo.ID)
	return nil
}

func (r *fakeTodoRepo) GetByID(_ context.Context, id string) (*domain.Todo, error) {
	todo, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &todo, nil
}

func (r *fakeTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Todo, error) {
	var out []domain.Todo
	for _, id := range r.order {
		if r.byID[id].OwnerID == ownerID {
			out = append(out, r.byID[id])
		}
	}
	return out, nil
}

func (r *fakeTodoRepo) SetCompleted(_ context.Context, id string, completed bool) error {
	todo, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	todo.Completed = completed
	r.byID[id] = todo
	return nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type fakeProjectRepo struct {
	byID  map[string]domain.Project
	order []string
	seq   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: map[string]domain.Project{}}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.seq++
	project.ID = fmt.Sprintf("proj-%d", r.seq)
	r.byID[project.ID] = *project
	r.order = append(r.order, project.ID)
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.byID[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &project, nil
}

func (r *fakeProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

type fakeProfileRepo struct {
	byUserID map[string]domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: map[string]domain.UserProfile{}}
}

func (r *fakeProfileRepo) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	profile, ok := r.byUserID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &profile, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.UserProfile) error {
	r.byUserID[profile.UserID] = *profile
	return nil
}

type fakeAvatarRepo struct {
	byUserID map[string]domain.Avatar
}

func newFakeAvatarRepo() *fakeAvatarRepo {
	return &fakeAvatarRepo{byUserID: map[string]domain.Avatar{}}
}

func (r *fakeAvatarRepo) Get(_ context.Context, userID string) (*domain.Avatar, error) {
	avatar, ok := r.byUserID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &avatar, nil
}

func (r *fakeAvatarRepo) Upsert(_ context.Context, avatar *domain.Avatar) error {
	r.byUserID[avatar.UserID] = *avatar
	return nil
}

type fakeRoleCache struct {
	invalidated []string
}

func (c *fakeRoleCache) InvalidateRole(_ context.Context, userID string) {
	c.invalidated = append(c.invalidated, userID)
}

var errStoreDown = errors.New("store unavailable")
