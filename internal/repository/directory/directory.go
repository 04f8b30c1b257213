package directory

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed identities.yaml
var defaultIdentities []byte

type fileFormat struct {
	Identities []entry `yaml:"identities"`
}

type entry struct {
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	Department   string `yaml:"department"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

type directory struct {
	all     []user.Identity
	byEmail map[string]user.Identity
}

// Load reads the directory file at path, or the built-in demo directory when path is empty.
func Load(path string, cost int) (user.Directory, error) {
	data := defaultIdentities
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read identity file: %w", err)
		}
		data = b
	}
	return Parse(data, cost)
}

// Parse builds a directory from YAML. Plain passwords are hashed with the given bcrypt cost.
func Parse(data []byte, cost int) (user.Directory, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", user.ErrInvalidDirectory, err)
	}
	if len(file.Identities) == 0 {
		return nil, fmt.Errorf("%w: no identities", user.ErrInvalidDirectory)
	}

	d := &directory{
		all:     make([]user.Identity, 0, len(file.Identities)),
		byEmail: make(map[string]user.Identity, len(file.Identities)),
	}

	for i, e := range file.Identities {
		identity, err := e.identity(cost)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", user.ErrInvalidDirectory, i, err)
		}
		if _, dup := d.byEmail[identity.Email]; dup {
			return nil, fmt.Errorf("%w: duplicate email %q", user.ErrInvalidDirectory, identity.Email)
		}
		d.byEmail[identity.Email] = identity
		d.all = append(d.all, identity)
	}

	return d, nil
}

func (e entry) identity(cost int) (user.Identity, error) {
	email := strings.TrimSpace(e.Email)
	if email == "" {
		return user.Identity{}, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return user.Identity{}, fmt.Errorf("name is required for %s", email)
	}
	role, ok := user.ParseRole(e.Role)
	if !ok {
		return user.Identity{}, fmt.Errorf("unknown role %q for %s", e.Role, email)
	}
	if role != user.RoleHR && strings.TrimSpace(e.Department) == "" {
		return user.Identity{}, fmt.Errorf("department is required for %s", email)
	}

	hash := e.PasswordHash
	switch {
	case hash != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return user.Identity{}, fmt.Errorf("password_hash for %s: %v", email, err)
		}
	case e.Password != "":
		if len(e.Password) >= user.MaxPasswordBytes {
			return user.Identity{}, fmt.Errorf("password for %s must be shorter than %d bytes", email, user.MaxPasswordBytes)
		}
		b, err := bcrypt.GenerateFromPassword([]byte(e.Password), cost)
		if err != nil {
			return user.Identity{}, fmt.Errorf("hash password for %s: %v", email, err)
		}
		hash = string(b)
	default:
		return user.Identity{}, fmt.Errorf("password is required for %s", email)
	}

	department := strings.TrimSpace(e.Department)
	if role == user.RoleHR {
		department = ""
	}

	return user.Identity{
		Email:        email,
		Name:         strings.TrimSpace(e.Name),
		Role:         role,
		Department:   department,
		PasswordHash: hash,
	}, nil
}

// GetByEmail matches the email exactly.
func (d *directory) GetByEmail(email string) (user.Identity, error) {
	identity, ok := d.byEmail[email]
	if !ok {
		return user.Identity{}, user.ErrUserNotFound
	}
	return identity, nil
}

func (d *directory) ListByRole(role user.Role) []user.Identity {
	return d.filter(func(i user.Identity) bool { return i.Role == role })
}

// ListMembers returns the employees of a department.
func (d *directory) ListMembers(department string) []user.Identity {
	return d.filter(func(i user.Identity) bool {
		return i.IsEmployee() && i.SameDepartment(department)
	})
}

func (d *directory) FindMember(department string, name string) (user.Identity, error) {
	for _, i := range d.ListMembers(department) {
		if i.Name == name {
			return i, nil
		}
	}
	return user.Identity{}, user.ErrNotInDepartment
}

func (d *directory) TeamLeadsOf(department string) []user.Identity {
	return d.filter(func(i user.Identity) bool {
		return i.IsTeamLead() && i.SameDepartment(department)
	})
}

func (d *directory) All() []user.Identity {
	out := make([]user.Identity, len(d.all))
	copy(out, d.all)
	return out
}

func (d *directory) filter(keep func(user.Identity) bool) []user.Identity {
	out := []user.Identity{}
	for _, i := range d.all {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}
