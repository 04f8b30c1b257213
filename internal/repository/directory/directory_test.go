package directory

import (
	"errors"
	"strings"
	"testing"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func loadDefault(t *testing.T) user.Directory {
	t.Helper()
	dir, err := Load("", bcrypt.MinCost)
	require.NoError(t, err)
	return dir
}

func TestLoad_DefaultDirectory(t *testing.T) {
	dir := loadDefault(t)

	assert.Len(t, dir.All(), 24)
	assert.Len(t, dir.ListByRole(user.RoleHR), 2)
	assert.Len(t, dir.ListByRole(user.RoleTeamLead), 4)

	harika, err := dir.GetByEmail("harikaappdevelopment@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "Harika", harika.Name)
	assert.Equal(t, user.RoleEmployee, harika.Role)
	assert.Equal(t, "App Development", harika.Department)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(harika.PasswordHash), []byte("!@#$%^&")))

	hr, err := dir.GetByEmail("vishnu_@gmail.com")
	require.NoError(t, err)
	assert.Empty(t, hr.Department)
}

func TestDirectory_Lookups(t *testing.T) {
	dir := loadDefault(t)

	_, err := dir.GetByEmail("HARIKAAPPDEVELOPMENT@gmail.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	members := dir.ListMembers("App Development")
	require.Len(t, members, 3)
	for _, m := range members {
		assert.Equal(t, user.RoleEmployee, m.Role)
	}

	leads := dir.TeamLeadsOf("App Development")
	require.Len(t, leads, 1)
	assert.Equal(t, "Suhas", leads[0].Name)
	assert.Empty(t, dir.TeamLeadsOf("Backend"))

	_, err = dir.FindMember("App Development", "Krishna")
	assert.NoError(t, err)
	_, err = dir.FindMember("App Development", "Chaitu")
	assert.ErrorIs(t, err, user.ErrNotInDepartment)
	_, err = dir.FindMember("App Development", "Suhas")
	assert.ErrorIs(t, err, user.ErrNotInDepartment)
}

func TestParse_PrehashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	dir, err := Parse([]byte(`
identities:
  - email: a@b.co
    name: A
    role: HR
    department: ignored
    password_hash: "`+string(hash)+`"
`), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := dir.GetByEmail("a@b.co")
	require.NoError(t, err)
	assert.Equal(t, string(hash), a.PasswordHash)
	assert.Empty(t, a.Department)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":         `identities: []`,
		"bad yaml":      `identities: [`,
		"unknown role":  "identities:\n  - {email: a@b.co, name: A, role: Boss, password: x}",
		"no department": "identities:\n  - {email: a@b.co, name: A, role: Employee, password: x}",
		"no password":   "identities:\n  - {email: a@b.co, name: A, role: HR}",
		"bad hash":      "identities:\n  - {email: a@b.co, name: A, role: HR, password_hash: nope}",
		"duplicate":     "identities:\n  - {email: a@b.co, name: A, role: HR, password: x}\n  - {email: a@b.co, name: B, role: HR, password: y}",
		"missing name":  "identities:\n  - {email: a@b.co, role: HR, password: x}",
		"missing email": "identities:\n  - {name: A, role: HR, password: x}",
		"long password": "identities:\n  - {email: a@b.co, name: A, role: HR, password: " + strings.Repeat("a", 72) + "}",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), bcrypt.MinCost)
			require.Error(t, err)
			assert.True(t, errors.Is(err, user.ErrInvalidDirectory))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/identities.yaml", bcrypt.MinCost)
	assert.Error(t, err)
}
