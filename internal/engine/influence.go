package engine

import "github.com/dom/hero-companion/internal/domain"

const (
	soldierInfluencePerTier = 5000
	petInfluencePerLevel    = 250
	petInfluencePerStar     = 2000
	relicInfluencePerLevel  = 150
)

// EquipmentCatalog indexes pets, relics and skins by id
type EquipmentCatalog struct {
	pets   map[string]domain.Pet
	relics map[string]domain.Relic
	skins  map[string]domain.Skin
}

// NewEquipmentCatalog builds an index over the given catalog rows
func NewEquipmentCatalog(pets []domain.Pet, relics []domain.Relic, skins []domain.Skin) *EquipmentCatalog {
	c := &EquipmentCatalog{
		pets:   make(map[string]domain.Pet, len(pets)),
		relics: make(map[string]domain.Relic, len(relics)),
		skins:  make(map[string]domain.Skin, len(skins)),
	}
	for _, p := range pets {
		c.pets[p.ID] = p
	}
	for _, r := range relics {
		c.relics[r.ID] = r
	}
	for _, s := range skins {
		c.skins[s.ID] = s
	}
	return c
}

// Pet looks up a pet; a nil catalog resolves nothing
func (c *EquipmentCatalog) Pet(id string) (domain.Pet, bool) {
	if c == nil {
		return domain.Pet{}, false
	}
	p, ok := c.pets[id]
	return p, ok
}

// Relic looks up a relic; a nil catalog resolves nothing
func (c *EquipmentCatalog) Relic(id string) (domain.Relic, bool) {
	if c == nil {
		return domain.Relic{}, false
	}
	r, ok := c.relics[id]
	return r, ok
}

// Skin looks up a skin; a nil catalog resolves nothing
func (c *EquipmentCatalog) Skin(id string) (domain.Skin, bool) {
	if c == nil {
		return domain.Skin{}, false
	}
	s, ok := c.skins[id]
	return s, ok
}

// InfluenceCalculator aggregates hero power and equipment into formation scores
type InfluenceCalculator struct {
	equipment *EquipmentCatalog
}

// NewInfluenceCalculator creates a calculator; equipment may be nil
func NewInfluenceCalculator(equipment *EquipmentCatalog) *InfluenceCalculator {
	return &InfluenceCalculator{equipment: equipment}
}

// QueueInfluence scores one formation. Ids that do not resolve in the roster
// or the equipment catalog contribute nothing.
func (c *InfluenceCalculator) QueueInfluence(q *domain.Queue, roster []domain.OwnedHero) int {
	if q == nil {
		return 0
	}

	total := 0
	for _, id := range q.HeroIDs {
		if id == "" {
			continue
		}
		if h, ok := findOwned(roster, id); ok {
			total += Power(h)
		}
	}

	if q.SoldierType != "" {
		tier := q.SoldierTier
		if tier <= 0 {
			tier = 1
		}
		total += tier * soldierInfluencePerTier
	}

	if q.PetID != "" {
		if pet, ok := c.equipment.Pet(q.PetID); ok {
			total += pet.BaseInfluence + q.PetLevel*petInfluencePerLevel + q.PetStars*petInfluencePerStar
		}
	}

	for _, slot := range q.Relics {
		if slot.RelicID == "" {
			continue
		}
		if relic, ok := c.equipment.Relic(slot.RelicID); ok {
			total += relic.BaseInfluence + slot.Level*relicInfluencePerLevel
		}
	}

	for _, skinID := range []string{q.CastleSkinID, q.MarchSkinID} {
		if skinID == "" {
			continue
		}
		if skin, ok := c.equipment.Skin(skinID); ok {
			total += skin.BaseInfluence
		}
	}

	return total
}

// TotalInfluence sums QueueInfluence over every formation of the player
func (c *InfluenceCalculator) TotalInfluence(data *domain.UserData) int {
	if data == nil || data.Queues == nil || data.Roster == nil {
		return 0
	}
	total := 0
	for i := range data.Queues {
		total += c.QueueInfluence(&data.Queues[i], data.Roster)
	}
	return total
}

// ProgressTrendPercent compares the first and last snapshot only.
// Returns 0 with fewer than two snapshots or a zero starting value.
func ProgressTrendPercent(snapshots []domain.ProgressSnapshot) float64 {
	if len(snapshots) < 2 {
		return 0
	}
	first := snapshots[0].Value
	last := snapshots[len(snapshots)-1].Value
	if first == 0 {
		return 0
	}
	return float64(last-first) / float64(first) * 100
}

func findOwned(roster []domain.OwnedHero, id string) (domain.OwnedHero, bool) {
	for _, h := range roster {
		if h.ID == id {
			return h, true
		}
	}
	return domain.OwnedHero{}, false
}
