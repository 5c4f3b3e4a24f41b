package draft

import (
	"fmt"
	"strings"
	"sync"
)

// SelectionValidator decides whether a candidate value may be selected,
// given everything already picked or banned in the draft. Implementations
// are keyed by game type so game-specific pools stay out of the engine.
type SelectionValidator interface {
	GameType() string

	Validate(value string, excluded map[string]struct{}) error
}

// FreeformValidator accepts any non-empty value that has not been
// excluded yet. It is the fallback for game types without a registered
// validator.
type FreeformValidator struct{}

func (v *FreeformValidator) GameType() string { return "freeform" }

func (v *FreeformValidator) Validate(value string, excluded map[string]struct{}) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: empty value", ErrInvalidSelection)
	}
	if _, ok := excluded[value]; ok {
		return fmt.Errorf("%w: %q", ErrItemAlreadyExcluded, value)
	}
	return nil
}

// PoolValidator restricts selections to a fixed item pool, e.g. the
// champion or agent roster of a specific game.
type PoolValidator struct {
	gameType string
	pool     map[string]struct{}
}

func NewPoolValidator(gameType string, pool []string) *PoolValidator {
	items := make(map[string]struct{}, len(pool))
	for _, item := range pool {
		items[item] = struct{}{}
	}
	return &PoolValidator{gameType: gameType, pool: items}
}

func (v *PoolValidator) GameType() string { return v.gameType }

func (v *PoolValidator) Validate(value string, excluded map[string]struct{}) error {
	if _, ok := v.pool[value]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSelection, value)
	}
	if _, ok := excluded[value]; ok {
		return fmt.Errorf("%w: %q", ErrItemAlreadyExcluded, value)
	}
	return nil
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]SelectionValidator)
)

// RegisterValidator installs a validator for its game type, replacing any
// previous registration.
func RegisterValidator(v SelectionValidator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[v.GameType()] = v
}

// ValidatorFor resolves the validator for a game type, falling back to
// freeform validation for unknown games.
func ValidatorFor(gameType string) SelectionValidator {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if v, ok := registry[gameType]; ok {
		return v
	}
	return &FreeformValidator{}
}
