package sim

import "fmt"

const (
	// arrivalEpsilon is the snap distance for reaching a movement target.
	arrivalEpsilon = 1e-5
	// contactBackoff is the small retreat applied when a unit cannot move
	// at all along its segment or is already interpenetrating.
	contactBackoff = 0.02
	// contactMinAdvance is the travel below which a contact counts as t≈0.
	contactMinAdvance = 1e-3
)

// updateMovements advances every moving unit by one tick: terrain-resolve
// the target, advance along the straight line at terrain-scaled speed, and
// stop at the first unit contact on the travel segment. Every contact branch
// collapses the target onto the stop point so units never keep pushing
// against an obstacle across ticks.
func (e *Engine) updateMovements(dt float64) {
	for _, u := range e.units {
		if u.State() != UnitStateMoving || !u.IsAlive() {
			continue
		}
		e.moveUnit(u, dt)
	}
}

func (e *Engine) moveUnit(u *Unit, dt float64) {
	r := u.Stats().CollisionRadius

	// Re-clamp the stored target each tick: world bounds may have changed
	// while the unit was in flight.
	target := e.bounds.Clamp(u.TargetPosition(), r)
	u.SetTargetPosition(target)

	resolved := e.terrain.ResolveMovementTarget(u.Position(), target, r)
	remaining := u.Position().Distance(resolved)
	if remaining < arrivalEpsilon {
		// Either arrived, or terrain blocks all further progress.
		u.stopAt(resolved)
		e.logPosition(u)
		return
	}

	speed := u.Stats().MoveSpeed * e.terrain.MovementMultiplier(u.Position(), r)
	step := speed * dt
	if step <= 0 {
		u.stopAt(u.Position())
		e.logPosition(u)
		return
	}

	var candidate Position
	if step >= remaining-arrivalEpsilon {
		candidate = resolved
	} else {
		candidate = u.Position().lerp(resolved, step/remaining)
	}

	contact, blocker, found := FindFirstContactOnPath(u.Position(), candidate, e.units, u, r)
	if !found {
		// Defensive second terrain pass before committing.
		final := e.terrain.ResolveMovementTarget(u.Position(), candidate, r)
		u.arrive(final)
		e.logPosition(u)
		return
	}

	dir := direction(u.Position(), candidate)

	if HasCollisionAt(u.Position(), e.units, u, r) {
		// Pre-existing interpenetration: back off opposite the direction of
		// travel, then fall back to the avoidance ring.
		backoff := Position{
			X: u.Position().X - dir.X*contactBackoff,
			Y: u.Position().Y - dir.Y*contactBackoff,
		}
		chosen := backoff
		if HasCollisionAt(backoff, e.units, u, r) {
			chosen = CalculateAvoidancePosition(u, u.Position(), e.units)
		}
		stop := e.terrain.ResolveMovementTarget(u.Position(), chosen, r)
		u.stopAt(stop)
		e.logContact(u, blocker, "overlap")
		e.logPosition(u)
		return
	}

	if u.Position().Distance(contact) < contactMinAdvance {
		// Contact essentially at t≈0: the unit cannot move along this
		// segment at all. Stop just short of the contact point.
		stop := Position{
			X: contact.X - dir.X*contactBackoff,
			Y: contact.Y - dir.Y*contactBackoff,
		}
		stop = e.terrain.ResolveMovementTarget(u.Position(), stop, r)
		u.stopAt(stop)
		e.logContact(u, blocker, "blocked")
		e.logPosition(u)
		return
	}

	// Partial movement: advance to the contact point, terrain-adjusted.
	stop := e.terrain.ResolveMovementTarget(u.Position(), contact, r)
	u.stopAt(stop)
	e.logContact(u, blocker, "contact")
	e.logPosition(u)
}

// direction returns the unit vector from a toward b, or zero when they
// coincide.
func direction(a, b Position) Position {
	d := a.Distance(b)
	if d < posEpsilon {
		return Position{}
	}
	return Position{X: (b.X - a.X) / d, Y: (b.Y - a.Y) / d}
}

func (e *Engine) logContact(u, blocker *Unit, kind string) {
	name := "?"
	if blocker != nil {
		name = blocker.Name()
	}
	e.log.Add(e.tick, u.Name(), u.Faction(), "move", kind, "stopped by "+name, 0)
}

func (e *Engine) logPosition(u *Unit) {
	e.log.AddVerbose(e.tick, u.Name(), u.Faction(), "move", "position",
		fmt.Sprintf("(%.3f,%.3f)", u.Position().X, u.Position().Y), 0)
}
