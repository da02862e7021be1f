package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/auth"
)

type fakeUsers struct {
	users map[string]models.User
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (int64, error) {
	u.ID = int64(len(f.users) + 1)
	f.users[u.Username] = *u
	return u.ID, nil
}

func (f *fakeUsers) GetByID(context.Context, int64) (*models.User, error) { return nil, nil }

func (f *fakeUsers) GetByUsername(_ context.Context, name string) (*models.User, error) {
	u, ok := f.users[name]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) UsernameExists(_ context.Context, name string) (bool, error) {
	_, ok := f.users[name]
	return ok, nil
}

func (f *fakeUsers) UpdateLastLogin(context.Context, int64, time.Time) error { return nil }

type fakeSubjects struct {
	codes  map[string]bool
	failOn string
}

func (f *fakeSubjects) Create(_ context.Context, s *models.Subject) (int64, error) {
	if s.Code == f.failOn {
		return 0, errors.New("boom")
	}
	if f.codes[s.Code] {
		return 0, apperrors.ErrSubjectCodeExists
	}
	f.codes[s.Code] = true
	return int64(len(f.codes)), nil
}

func (f *fakeSubjects) GetByID(context.Context, int64) (*models.Subject, error) { return nil, nil }
func (f *fakeSubjects) List(context.Context) ([]models.SubjectSummary, error)   { return nil, nil }
func (f *fakeSubjects) ListIDs(context.Context) ([]int64, error)                { return nil, nil }
func (f *fakeSubjects) Update(context.Context, *models.Subject) error           { return nil }
func (f *fakeSubjects) Delete(context.Context, int64) error                     { return nil }
func (f *fakeSubjects) Count(context.Context) (int64, error)                    { return int64(len(f.codes)), nil }

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	users := &fakeUsers{users: map[string]models.User{}}
	subjects := &fakeSubjects{codes: map[string]bool{}}
	admin := Admin{Username: "admin1", Password: "admin123"}

	require.NoError(t, CreateDefaultData(context.Background(), users, subjects, admin, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(context.Background(), users, subjects, admin, zerolog.Nop()))

	assert.Len(t, subjects.codes, len(FirstSemesterSubjects))
	assert.True(t, subjects.codes["EGS11101"])
	assert.True(t, subjects.codes["HUM12302"])

	require.Len(t, users.users, 1)
	stored := users.users["admin1"]
	assert.Equal(t, models.RoleAdmin, stored.Role)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "admin123"))
}

func TestCreateDefaultDataSkipsAdminWithoutPassword(t *testing.T) {
	users := &fakeUsers{users: map[string]models.User{}}
	subjects := &fakeSubjects{codes: map[string]bool{}}

	require.NoError(t, CreateDefaultData(context.Background(), users, subjects, Admin{Username: "admin"}, zerolog.Nop()))
	assert.Empty(t, users.users)
}

func TestCreateDefaultDataCollectsErrors(t *testing.T) {
	users := &fakeUsers{users: map[string]models.User{}}
	subjects := &fakeSubjects{codes: map[string]bool{}, failOn: "EGS11203"}

	err := CreateDefaultData(context.Background(), users, subjects, Admin{}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EGS11203")
	assert.Len(t, subjects.codes, len(FirstSemesterSubjects)-1)
}
