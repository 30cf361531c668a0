package records

import (
	"encoding/json"
	"fmt"
)

// Condition is the display state of one tooth.
type Condition string

const (
	Healthy Condition = "healthy"
	Decayed Condition = "decayed"
	Treated Condition = "treated"
	Missing Condition = "missing"
)

// conditionRing is the click cycle: each interaction advances a tooth to the
// next condition, wrapping from the last back to the first.
var conditionRing = []Condition{Healthy, Decayed, Treated, Missing}

// Next returns the condition after c in the ring. Unrecognized conditions
// restart at the beginning of the ring.
func (c Condition) Next() Condition {
	for i, cond := range conditionRing {
		if cond == c {
			return conditionRing[(i+1)%len(conditionRing)]
		}
	}
	return conditionRing[0]
}

// Valid reports whether c is one of the four known conditions.
func (c Condition) Valid() bool {
	for _, cond := range conditionRing {
		if cond == c {
			return true
		}
	}
	return false
}

// Quadrant labels for the permanent dentition, FDI numbering.
const (
	QuadrantSupDir = "SUP DIR"
	QuadrantSupEsq = "SUP ESQ"
	QuadrantInfDir = "INF DIR"
	QuadrantInfEsq = "INF ESQ"
)

// Tooth pairs an FDI identifier with its quadrant label.
type Tooth struct {
	ID       string `json:"id"`
	Quadrant string `json:"quadrant"`
}

// PermanentTeeth lists the 32 permanent teeth in display order: upper right
// 18..11, upper left 21..28, lower right 48..41, lower left 31..38.
var PermanentTeeth = buildPermanentTeeth()

func buildPermanentTeeth() []Tooth {
	var teeth []Tooth
	for n := 8; n >= 1; n-- {
		teeth = append(teeth, Tooth{ID: fmt.Sprintf("1%d", n), Quadrant: QuadrantSupDir})
	}
	for n := 1; n <= 8; n++ {
		teeth = append(teeth, Tooth{ID: fmt.Sprintf("2%d", n), Quadrant: QuadrantSupEsq})
	}
	for n := 8; n >= 1; n-- {
		teeth = append(teeth, Tooth{ID: fmt.Sprintf("4%d", n), Quadrant: QuadrantInfDir})
	}
	for n := 1; n <= 8; n++ {
		teeth = append(teeth, Tooth{ID: fmt.Sprintf("3%d", n), Quadrant: QuadrantInfEsq})
	}
	return teeth
}

// KnownTooth reports whether id is one of the 32 permanent teeth.
func KnownTooth(id string) bool {
	for _, t := range PermanentTeeth {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Odontogram maps every permanent tooth to its current condition. A valid
// odontogram always carries all 32 entries.
type Odontogram map[string]Condition

// NewOdontogram returns the initial all-healthy map.
func NewOdontogram() Odontogram {
	o := make(Odontogram, len(PermanentTeeth))
	for _, t := range PermanentTeeth {
		o[t.ID] = Healthy
	}
	return o
}

// FromMap normalizes an arbitrary tooth map: unknown tooth ids are ignored,
// missing teeth default to healthy, and unrecognized condition values are
// reset to healthy.
func FromMap(m map[string]Condition) Odontogram {
	o := NewOdontogram()
	for id, cond := range m {
		if !KnownTooth(id) {
			continue
		}
		if !cond.Valid() {
			cond = Healthy
		}
		o[id] = cond
	}
	return o
}

// Parse deserializes a stored odontogram string. Malformed payloads fall
// back to the all-healthy default instead of failing the record load.
func Parse(raw string) Odontogram {
	if raw == "" {
		return NewOdontogram()
	}
	var m map[string]Condition
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return NewOdontogram()
	}
	return FromMap(m)
}

// Advance cycles the tooth's condition one step along the ring.
func (o Odontogram) Advance(toothID string) error {
	if !KnownTooth(toothID) {
		return fmt.Errorf("dente desconhecido: %s", toothID)
	}
	o[toothID] = o[toothID].Next()
	return nil
}

// Serialize renders the full 32-entry map in the stored wire format.
func (o Odontogram) Serialize() (string, error) {
	full := FromMap(o)
	b, err := json.Marshal(full)
	if err != nil {
		return "", fmt.Errorf("serializar odontograma: %w", err)
	}
	return string(b), nil
}
