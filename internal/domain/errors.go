package domain

import "errors"

// Formation and settings validation errors
var (
	ErrTooManyHeroes    = errors.New("a formation holds at most 5 heroes")
	ErrInvalidRelicSlot = errors.New("invalid relic slot")
	ErrInvalidFaction   = errors.New("invalid faction")
	ErrInvalidLevel     = errors.New("level must be between 1 and 200")
	ErrInvalidStars     = errors.New("stars must be between 0 and 15")
)

// Profile errors
var (
	ErrVersionConflict  = errors.New("profile was modified by another request")
	ErrHeroNotInCatalog = errors.New("hero not in catalog")
	ErrHeroAlreadyOwned = errors.New("hero already recruited")
	ErrHeroNotOwned     = errors.New("hero not in roster")
)
