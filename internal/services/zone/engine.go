// Package zone evaluates geofenced zones against connected participants.
package zone

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/KirkDiggler/eventtools/internal/common/names"
	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

// Engine owns zone definitions and occupancy. Effects are pushed while the
// lock is held so recorded occupancy always matches what was applied.
// Violations found by a pass are eliminated after the lock is released.
type Engine struct {
	gate         *lifecycle.Gate
	eliminations EliminationReader
	roster       platform.Roster
	effects      platform.Effects
	eliminator   Eliminator
	maxRadius    int

	mu    sync.Mutex
	zones map[string]*models.Zone
	order []string
	epoch uint64
}

// New creates a zone engine
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Gate == nil {
		return nil, ErrNilGate
	}
	if cfg.Eliminations == nil {
		return nil, ErrNilEliminations
	}
	if cfg.Roster == nil {
		return nil, ErrNilRoster
	}
	if cfg.Effects == nil {
		return nil, ErrNilEffects
	}
	if cfg.Eliminator == nil {
		return nil, ErrNilEliminator
	}

	maxRadius := cfg.MaxRadius
	if maxRadius <= 0 {
		maxRadius = DefaultMaxRadius
	}

	return &Engine{
		gate:         cfg.Gate,
		eliminations: cfg.Eliminations,
		roster:       cfg.Roster,
		effects:      cfg.Effects,
		eliminator:   cfg.Eliminator,
		maxRadius:    maxRadius,
		zones:        make(map[string]*models.Zone),
	}, nil
}

// Create defines an active zone. The radius is clamped to the maximum.
func (e *Engine) Create(ctx context.Context, input *CreateZoneInput) (*models.Zone, error) {
	if input == nil || !names.Valid(input.Name) {
		return nil, ErrInvalidZoneName
	}
	if input.Radius <= 0 {
		return nil, ErrInvalidRadius
	}

	switch input.Shape {
	case models.ShapeCircle, models.ShapeSquare:
	default:
		return nil, ErrInvalidShape
	}

	var effect *models.Effect
	switch input.Type {
	case models.ZoneTypeEffect:
		if input.Effect == nil || input.Effect.Type == "" || input.Effect.Amplifier < 0 {
			return nil, ErrEffectRequired
		}
		effect = &models.Effect{Type: input.Effect.Type, Amplifier: input.Effect.Amplifier}
	case models.ZoneTypeMustStay, models.ZoneTypeSafe:
		if input.Effect != nil {
			return nil, ErrUnexpectedEffect
		}
	default:
		return nil, ErrInvalidZoneType
	}

	key := names.Key(input.Name)

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.zones[key]; ok {
		return nil, ErrZoneExists
	}

	z := &models.Zone{
		Name:   input.Name,
		Center: input.Center,
		Shape:  input.Shape,
		Radius: min(input.Radius, e.maxRadius),
		Type:   input.Type,
		Effect: effect,
		Active: true,
	}
	e.zones[key] = z
	e.order = append(e.order, key)

	slog.InfoContext(ctx, "zone created",
		"zone", z.Name, "type", z.Type, "shape", z.Shape, "radius", z.Radius)
	return cloneZone(z), nil
}

// Delete removes a zone and clears its effects from every recorded occupant
func (e *Engine) Delete(ctx context.Context, name string) error {
	key := names.Key(name)

	e.mu.Lock()
	defer e.mu.Unlock()

	z, ok := e.zones[key]
	if !ok {
		return ErrZoneNotFound
	}
	e.evictLocked(ctx, z)
	delete(e.zones, key)
	e.order = slices.DeleteFunc(e.order, func(k string) bool { return k == key })
	return nil
}

// Toggle flips a zone's active flag and returns the new value
func (e *Engine) Toggle(ctx context.Context, name string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	z, ok := e.zones[names.Key(name)]
	if !ok {
		return false, ErrZoneNotFound
	}
	e.setActiveLocked(ctx, z, !z.Active)
	return z.Active, nil
}

// SetActive sets a zone's active flag
func (e *Engine) SetActive(ctx context.Context, name string, active bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	z, ok := e.zones[names.Key(name)]
	if !ok {
		return ErrZoneNotFound
	}
	e.setActiveLocked(ctx, z, active)
	return nil
}

func (e *Engine) setActiveLocked(ctx context.Context, z *models.Zone, active bool) {
	if z.Active == active {
		return
	}
	z.Active = active
	if !active {
		e.evictLocked(ctx, z)
	}
	slog.InfoContext(ctx, "zone toggled", "zone", z.Name, "active", active)
}

// Zone returns a copy of the named zone
func (e *Engine) Zone(name string) (*models.Zone, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	z, ok := e.zones[names.Key(name)]
	if !ok {
		return nil, false
	}
	return cloneZone(z), true
}

// Zones returns copies of every zone in creation order
func (e *Engine) Zones() []*models.Zone {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*models.Zone, 0, len(e.order))
	for _, key := range e.order {
		out = append(out, cloneZone(e.zones[key]))
	}
	return out
}

type action struct {
	zone *models.Zone
	id   models.ParticipantID
}

// Evaluate runs one zone pass. Clears are pushed before applies so a
// participant standing in two overlapping zones keeps the effect. Each
// participant found outside an active must-stay zone is eliminated once.
func (e *Engine) Evaluate(ctx context.Context) {
	if !e.gate.IsActive() {
		return
	}
	epoch := e.gate.Epoch()

	online, err := e.roster.Online(ctx)
	if err != nil {
		slog.WarnContext(ctx, "zone pass skipped", "error", err)
		return
	}

	var violations []*models.Participant

	e.mu.Lock()
	if e.epoch != epoch {
		// occupancy from an earlier event was cleaned up by its teardown
		for _, z := range e.zones {
			z.Occupants = nil
		}
		e.epoch = epoch
	}

	var clears, applies []action
	violated := make(map[models.ParticipantID]struct{})

	for _, key := range e.order {
		z := e.zones[key]
		previous := make(map[models.ParticipantID]struct{}, len(z.Occupants))
		for _, id := range z.Occupants {
			previous[id] = struct{}{}
		}

		var next []models.ParticipantID
		for _, p := range online {
			_, wasInside := previous[p.ID]

			if p.Exempt || e.eliminations.IsEliminated(p.ID) {
				if wasInside {
					clears = append(clears, action{zone: z, id: p.ID})
				}
				continue
			}

			if z.Active && z.Contains(p.Location) {
				applies = append(applies, action{zone: z, id: p.ID})
				next = append(next, p.ID)
				continue
			}

			if wasInside {
				clears = append(clears, action{zone: z, id: p.ID})
			}
			if z.Active && z.Type == models.ZoneTypeMustStay {
				if _, ok := violated[p.ID]; !ok {
					violated[p.ID] = struct{}{}
					violations = append(violations, p)
				}
			}
		}
		z.Occupants = next
	}

	for _, a := range clears {
		e.clear(ctx, a.zone, a.id)
	}
	for _, a := range applies {
		e.apply(ctx, a.zone, a.id)
	}
	e.mu.Unlock()

	for _, p := range violations {
		if !e.gate.IsActive() || e.gate.Epoch() != epoch {
			return
		}
		e.eliminator.HandleElimination(ctx, p, "left the zone")
	}
}

// Shutdown clears the effects of every zone from its recorded occupants
func (e *Engine) Shutdown(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, key := range e.order {
		e.evictLocked(ctx, e.zones[key])
	}
}

func (e *Engine) evictLocked(ctx context.Context, z *models.Zone) {
	for _, id := range z.Occupants {
		e.clear(ctx, z, id)
	}
	z.Occupants = nil
}

func (e *Engine) apply(ctx context.Context, z *models.Zone, id models.ParticipantID) {
	var err error
	switch z.Type {
	case models.ZoneTypeEffect:
		err = e.effects.ApplyEffect(ctx, id, *z.Effect)
	case models.ZoneTypeSafe:
		err = e.effects.SetInvulnerable(ctx, id, true)
	case models.ZoneTypeMustStay:
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to apply zone", "zone", z.Name, "participant", id, "error", err)
	}
}

func (e *Engine) clear(ctx context.Context, z *models.Zone, id models.ParticipantID) {
	var err error
	switch z.Type {
	case models.ZoneTypeEffect:
		err = e.effects.ClearEffect(ctx, id, z.Effect.Type)
	case models.ZoneTypeSafe:
		err = e.effects.SetInvulnerable(ctx, id, false)
	case models.ZoneTypeMustStay:
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to clear zone", "zone", z.Name, "participant", id, "error", err)
	}
}

// Describe renders a zone for listings
func Describe(z *models.Zone) string {
	status := "inactive"
	if z.Active {
		status = "active"
	}
	desc := fmt.Sprintf("%s (%s, %s r=%d at %s %.0f,%.0f,%.0f, %s)",
		z.Name, z.Type, z.Shape, z.Radius, z.Center.World, z.Center.X, z.Center.Y, z.Center.Z, status)
	if z.Effect != nil {
		desc += " effect " + z.Effect.String()
	}
	return desc
}

func cloneZone(z *models.Zone) *models.Zone {
	out := *z
	if z.Effect != nil {
		effect := *z.Effect
		out.Effect = &effect
	}
	out.Occupants = slices.Clone(z.Occupants)
	return &out
}
