package lighting

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/logger"
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// ErrDegenerateVector is returned when the light and the body coincide or
// a position is not finite, so no direction can be formed.
var ErrDegenerateVector = errors.New("degenerate light vector")

// DegenerateEpsilon is the shortest light-to-body offset considered usable.
const DegenerateEpsilon = 1e-6

// DefaultFallback is the direction used before any good update has happened.
var DefaultFallback = m.Vec3{Z: 1}

// Direction returns the unit vector from body towards light.
func Direction(light, body m.Vec3) (m.Vec3, error) {
	d := light.Sub(body)
	if !d.IsFinite() || d.Length() < DegenerateEpsilon {
		return m.Vec3{}, ErrDegenerateVector
	}
	return d.Normalize(), nil
}

// Tracker keeps one body's light direction across ticks. On degenerate
// input it holds the last good direction, so callers always get a unit
// vector.
type Tracker struct {
	name       string
	dir        m.Vec3
	degenerate bool
	log        *zap.Logger
}

// NewTracker creates a tracker for the named body. A zero or non-finite
// fallback is replaced by DefaultFallback.
func NewTracker(name string, fallback m.Vec3) *Tracker {
	if !fallback.IsFinite() || fallback.Length() < DegenerateEpsilon {
		fallback = DefaultFallback
	}
	return &Tracker{
		name: name,
		dir:  fallback.Normalize(),
		log:  logger.Named("lighting"),
	}
}

// Update recomputes the direction from world positions and returns it.
func (t *Tracker) Update(light, body m.Vec3) m.Vec3 {
	dir, err := Direction(light, body)
	if err != nil {
		if !t.degenerate {
			t.log.Warn("light direction degenerate, holding last direction",
				zap.String("body", t.name),
				vecField("light", light),
				vecField("position", body),
				vecField("direction", t.dir))
		}
		t.degenerate = true
		return t.dir
	}
	if t.degenerate {
		t.log.Info("light direction recovered", zap.String("body", t.name))
	}
	t.degenerate = false
	t.dir = dir
	return dir
}

// Direction returns the current direction without recomputing it.
func (t *Tracker) Direction() m.Vec3 {
	return t.dir
}

// Degenerate reports whether the last Update fell back.
func (t *Tracker) Degenerate() bool {
	return t.degenerate
}

func vecField(key string, v m.Vec3) zap.Field {
	a := v.Array()
	return zap.Float32s(key, a[:])
}
