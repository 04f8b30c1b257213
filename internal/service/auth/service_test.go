package auth

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/directory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service, *metrics.Metrics) {
	t.Helper()

	dir, err := directory.Load("", bcrypt.MinCost)
	require.NoError(t, err)

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)

	m := metrics.New()
	return NewAuthService(dir, jwtService, m), jwtService, m
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantRole user.Role
		wantName string
		wantDept string
	}{
		{"hr", "vishnu_@gmail.com", ")(*&^%$#@!", nil, user.RoleHR, "Vishnu", ""},
		{"team lead", "suhas.app@gmail.com", "!@#$%^&*()", nil, user.RoleTeamLead, "Suhas", "App Development"},
		{"employee", "harikaappdevelopment@gmail.com", "!@#$%^&", nil, user.RoleEmployee, "Harika", "App Development"},
		{"wrong password", "harikaappdevelopment@gmail.com", "!@#$%^&*", auth.ErrInvalidCredentials, "", "", ""},
		{"email case differs", "Harikaappdevelopment@gmail.com", "!@#$%^&", auth.ErrInvalidCredentials, "", "", ""},
		{"unknown email", "nobody@gmail.com", "!@#$%^&", auth.ErrInvalidCredentials, "", "", ""},
		{"empty", "", "", auth.ErrInvalidCredentials, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, user.Identity{}, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, identity.Email)
			assert.Equal(t, tt.wantRole, identity.Role)
			assert.Equal(t, tt.wantName, identity.Name)
			assert.Equal(t, tt.wantDept, identity.Department)
		})
	}
}

type directoryEntry struct {
	Email      string `yaml:"email"`
	Name       string `yaml:"name"`
	Role       string `yaml:"role"`
	Department string `yaml:"department"`
	Password   string `yaml:"password"`
}

// directoryEntries reads the plain passwords of the built-in directory.
func directoryEntries(t *testing.T) []directoryEntry {
	t.Helper()
	data, err := os.ReadFile("../../repository/directory/identities.yaml")
	require.NoError(t, err)

	var file struct {
		Identities []directoryEntry `yaml:"identities"`
	}
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.NotEmpty(t, file.Identities)
	return file.Identities
}

func TestAuthenticate_EveryDirectoryEntry(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	for _, e := range directoryEntries(t) {
		t.Run(e.Email, func(t *testing.T) {
			identity, err := svc.Authenticate(ctx, e.Email, e.Password)
			require.NoError(t, err)
			assert.Equal(t, e.Email, identity.Email)
			assert.Equal(t, e.Name, identity.Name)
			assert.Equal(t, user.Role(e.Role), identity.Role)
			wantDept := e.Department
			if identity.Role == user.RoleHR {
				wantDept = ""
			}
			assert.Equal(t, wantDept, identity.Department)

			last := e.Password[len(e.Password)-1]
			changed := e.Password[:len(e.Password)-1] + string(last^1)
			_, err = svc.Authenticate(ctx, e.Email, changed)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

			_, err = svc.Authenticate(ctx, e.Email, e.Password+"x")
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestAuthenticate_LongPasswordIsNotTruncated(t *testing.T) {
	stored := strings.Repeat("a", user.MaxPasswordBytes)
	hash, err := bcrypt.GenerateFromPassword([]byte(stored), bcrypt.MinCost)
	require.NoError(t, err)

	dir, err := directory.Parse([]byte("identities:\n  - {email: a@x.io, name: A, role: HR, password_hash: '"+string(hash)+"'}"), bcrypt.MinCost)
	require.NoError(t, err)
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)
	svc := NewAuthService(dir, jwtService, nil)
	ctx := context.Background()

	identity, err := svc.Authenticate(ctx, "a@x.io", stored)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", identity.Email)

	_, err = svc.Authenticate(ctx, "a@x.io", stored+"WRONG-SUFFIX")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin(t *testing.T) {
	svc, jwtService, m := newTestAuthService(t)
	ctx := context.Background()

	t.Run("success issues a token carrying the identity", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "suhas.app@gmail.com", Password: "!@#$%^&*()"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, user.RoleTeamLead, resp.User.Role)

		token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.AccessToken)
		require.NoError(t, err)
		email, _ := token.Get("email")
		dept, _ := token.Get("department")
		assert.Equal(t, "suhas.app@gmail.com", email)
		assert.Equal(t, "App Development", dept)
	})

	t.Run("failure", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "suhas.app@gmail.com", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	count, err := testutil.GatherAndCount(m.Registry(), "teamdesk_logins_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIssueSSEToken(t *testing.T) {
	svc, jwtService, _ := newTestAuthService(t)

	resp, err := svc.IssueSSEToken(context.Background(), user.Identity{Email: "vishnu_@gmail.com"})
	require.NoError(t, err)
	assert.Equal(t, 300, resp.ExpiresIn)

	email, err := jwtService.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "vishnu_@gmail.com", email)
}
