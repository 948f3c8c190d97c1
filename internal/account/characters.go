// Package account loads the character list of a game account: which characters
// exist and on which world endpoint each one lives.
package account

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/otsession/internal/game/session"
)

// Character is one entry of the character list.
//
// Precondition: Name, World and Host must be non-empty and Port in 1-65535 after loading.
type Character struct {
	Name  string `yaml:"name"`
	World string `yaml:"world"`
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
}

// Endpoint returns the world the character logs in to.
func (c Character) Endpoint() session.World {
	return session.World{Name: c.World, Host: c.Host, Port: c.Port}
}

// Validate checks the entry's fields.
//
// Postcondition: Returns nil if valid, or an error listing every violation.
func (c Character) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.World == "" {
		errs = append(errs, errors.New("world must not be empty"))
	}
	if c.Host == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be 1-65535, got %d", c.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("character %q: %v", c.Name, errs)
	}
	return nil
}

// CharacterList holds the characters of one account.
type CharacterList struct {
	Characters []Character `yaml:"characters"`
}

// Load reads and validates a YAML character list.
//
// Precondition: path must name a readable YAML file.
// Postcondition: Returns a list with unique, valid characters or a non-nil error.
func Load(path string) (*CharacterList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading character list %s: %w", path, err)
	}
	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("character list %s: %w", path, err)
	}
	return list, nil
}

// Parse decodes and validates a YAML character list.
func Parse(data []byte) (*CharacterList, error) {
	var list CharacterList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing character list: %w", err)
	}
	if len(list.Characters) == 0 {
		return nil, errors.New("character list is empty")
	}
	seen := make(map[string]bool, len(list.Characters))
	for _, c := range list.Characters {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return nil, fmt.Errorf("character %q listed twice", c.Name)
		}
		seen[key] = true
	}
	return &list, nil
}

// Find returns the character with name, ignoring case.
func (l *CharacterList) Find(name string) (Character, bool) {
	for _, c := range l.Characters {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Character{}, false
}

// Names returns the character names in sorted order.
func (l *CharacterList) Names() []string {
	names := make([]string, 0, len(l.Characters))
	for _, c := range l.Characters {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Select picks the character to log in with. An empty name selects the only
// character of a single-entry list.
//
// Postcondition: Returns the selected character, or an error naming the choices.
func (l *CharacterList) Select(name string) (Character, error) {
	if name == "" {
		if len(l.Characters) == 1 {
			return l.Characters[0], nil
		}
		return Character{}, fmt.Errorf("no character selected, choose one of [%s]", strings.Join(l.Names(), ", "))
	}
	c, ok := l.Find(name)
	if !ok {
		return Character{}, fmt.Errorf("unknown character %q, choose one of [%s]", name, strings.Join(l.Names(), ", "))
	}
	return c, nil
}
