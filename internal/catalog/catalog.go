// Package catalog holds the bundled seed data for heroes, equipment and events.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dom/hero-companion/internal/domain"
)

//go:embed data/*.json
var files embed.FS

// Bundle is the full static catalog shipped with the binary
type Bundle struct {
	Version string
	Heroes  []domain.Hero
	Pets    []domain.Pet
	Relics  []domain.Relic
	Skins   []domain.Skin
	Events  []domain.GameEvent
}

type manifest struct {
	Version string `json:"version"`
}

// Load parses every embedded catalog file
func Load() (*Bundle, error) {
	var m manifest
	if err := decode("manifest.json", &m); err != nil {
		return nil, err
	}
	if m.Version == "" {
		return nil, errors.New("catalog manifest has no version")
	}

	b := &Bundle{Version: m.Version}
	targets := []struct {
		name string
		dst  any
	}{
		{"heroes.json", &b.Heroes},
		{"pets.json", &b.Pets},
		{"relics.json", &b.Relics},
		{"skins.json", &b.Skins},
		{"events.json", &b.Events},
	}
	for _, t := range targets {
		if err := decode(t.name, t.dst); err != nil {
			return nil, err
		}
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func decode(name string, dst any) error {
	raw, err := files.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", name, err)
	}
	return nil
}

func (b *Bundle) validate() error {
	heroIDs := make(map[string]bool, len(b.Heroes))
	for _, h := range b.Heroes {
		if h.ID == "" {
			return fmt.Errorf("catalog hero %q has no id", h.Name)
		}
		if heroIDs[h.ID] {
			return fmt.Errorf("duplicate catalog hero %s", h.ID)
		}
		if !h.Faction.IsValid() || !h.Rarity.IsValid() {
			return fmt.Errorf("catalog hero %s has invalid faction or rarity", h.ID)
		}
		heroIDs[h.ID] = true
	}
	for _, h := range b.Heroes {
		for _, bond := range h.Bonds {
			if !heroIDs[bond.PartnerID] {
				return fmt.Errorf("catalog hero %s bonds with unknown hero %s", h.ID, bond.PartnerID)
			}
		}
	}
	for _, r := range b.Relics {
		if !r.Type.IsValid() {
			return fmt.Errorf("catalog relic %s has invalid slot type %q", r.ID, r.Type)
		}
	}
	return nil
}

// Equipment returns the pet, relic and skin lists as one value
func (b *Bundle) Equipment() domain.Equipment {
	return domain.Equipment{Pets: b.Pets, Relics: b.Relics, Skins: b.Skins}
}
