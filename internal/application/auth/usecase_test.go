package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-obra/internal/application/auth"
	"github.com/jhoicas/inventario-obra/internal/application/dto"
	"github.com/jhoicas/inventario-obra/internal/domain"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/pkg/jwt"
)

type memUsers struct {
	mu    sync.Mutex
	byKey map[string]entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[strings.ToLower(u.Email)]; ok {
		return domain.ErrDuplicate
	}
	m.byKey[strings.ToLower(u.Email)] = *u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byKey[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

const secret = "secreto-de-prueba"

func newAuth() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{byKey: map[string]entity.User{}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"}), repo
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Bodega@Obra.co", Password: "clave-segura", Role: entity.RoleBodeguero})
	require.NoError(t, err)
	assert.Equal(t, "bodega@obra.co", user.Email)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "bodega@obra.co", Password: "clave-segura"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleBodeguero, role)
}

func TestRegisterUser_Errores(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "suficiente", Role: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "suficiente"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "suficiente"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_Errores(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "r@obra.co", Password: "suficiente"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@obra.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "r@obra.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u := repo.byKey["r@obra.co"]
	u.Status = entity.UserStatusInactive
	repo.byKey["r@obra.co"] = u
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "r@obra.co", Password: "suficiente"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
