package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/smowhabuth/SKBday/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byCode map[string]dom.User
	nextID int64
	err    error // forced infrastructure failure
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byCode: map[string]dom.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByAccessCode(_ context.Context, code string) (dom.User, error) {
	if f.err != nil {
		return dom.User{}, f.err
	}
	u, ok := f.byCode[code]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	for _, u := range f.byCode {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]dom.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []dom.User
	for _, u := range f.byCode {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, name, code string) (dom.User, error) {
	if _, ok := f.byCode[code]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dom.User{ID: f.nextID, Name: name, AccessCode: code}
	f.nextID++
	f.byCode[code] = u
	return u, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, name, code string) (dom.User, error) {
	if u, ok := f.byCode[code]; ok {
		u.Name = name
		f.byCode[code] = u
		return u, nil
	}
	return f.Create(context.Background(), name, code)
}

func TestAuthenticateExactMatch(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byCode["SZA42"] = dom.User{ID: 1, AccessCode: "SZA42", Name: "Sarah"}
	svc := NewUserService(repo)

	u, err := svc.Authenticate(context.Background(), "SZA42")
	require.NoError(t, err)
	require.Equal(t, "Sarah", u.Name)
}

func TestAuthenticateIsCaseSensitive(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byCode["SZA42"] = dom.User{ID: 1, AccessCode: "SZA42", Name: "Sarah"}
	svc := NewUserService(repo)

	_, err := svc.Authenticate(context.Background(), "sza42")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownCode(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Authenticate(context.Background(), "NOPE1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateStoreFaultIsDistinct(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("connection refused")
	svc := NewUserService(repo)

	_, err := svc.Authenticate(context.Background(), "SZA42")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	_, err := svc.Create(context.Background(), "Sarah", "SZA42")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Impostor", "SZA42")
	require.ErrorIs(t, err, ErrCodeTaken)
}

func TestUpsertIsIdempotentByCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	first, err := svc.Upsert(context.Background(), "Sarah", "SZA42")
	require.NoError(t, err)

	second, err := svc.Upsert(context.Background(), "Sarah B", "SZA42")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Sarah B", second.Name)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}
