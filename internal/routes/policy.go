// Пакет routes - таблица допуска страниц и действий по роли.
package routes

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultPolicy []byte

// ErrInvalidPolicy - таблица не прошла проверку.
var ErrInvalidPolicy = errors.New("invalid route policy")

// Policy - разобранная таблица допуска.
type Policy struct {
	Login   string                   `yaml:"login"`
	Homes   map[domain.Role]string   `yaml:"homes"`
	Public  []string                 `yaml:"public"`
	Pages   map[string][]domain.Role `yaml:"pages"`
	Actions map[string][]domain.Role `yaml:"actions"`
}

// Default - встроенная таблица.
func Default() (*Policy, error) {
	return Parse(defaultPolicy)
}

// MustDefault - Default для корня сборки и тестов; встроенная таблица проверена тестами.
func MustDefault() *Policy {
	p, err := Default()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse - разбирает YAML и проверяет, что все роли из закрытого множества.
func Parse(raw []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if p.Login == "" {
		return nil, fmt.Errorf("%w: login path is required", ErrInvalidPolicy)
	}
	for role := range p.Homes {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q in homes", ErrInvalidPolicy, role)
		}
	}
	for name, table := range map[string]map[string][]domain.Role{"pages": p.Pages, "actions": p.Actions} {
		for key, roles := range table {
			if len(roles) == 0 {
				return nil, fmt.Errorf("%w: %s %q has no roles", ErrInvalidPolicy, name, key)
			}
			for _, r := range roles {
				if !r.Valid() {
					return nil, fmt.Errorf("%w: unknown role %q for %s %q", ErrInvalidPolicy, r, name, key)
				}
			}
		}
	}
	return &p, nil
}

// Page - роли, допущенные к странице; public == true для страниц без проверки.
// Неизвестная страница требует любой аутентифицированной роли.
func (p *Policy) Page(path string) (roles []domain.Role, public bool) {
	for _, pub := range p.Public {
		if pub == path {
			return nil, true
		}
	}
	return p.Pages[path], false
}

// Action - роли, которым разрешено действие; nil - любой аутентифицированной.
func (p *Policy) Action(name string) []domain.Role {
	return p.Actions[name]
}

// Home - домашняя страница роли; без роли - страница входа.
func (p *Policy) Home(role domain.Role) string {
	if home, ok := p.Homes[role]; ok {
		return home
	}
	return p.Login
}
