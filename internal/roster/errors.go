package roster

import (
	"fmt"
	"strings"
)

// The builder never short-circuits: every violation found anywhere in the
// proposed composition tree is collected so the caller can report the
// complete set in one round trip.

// SlotCardinalityError reports a count out of its declared bounds, either
// the number of instances of one unit model configuration or the number of
// items filling one slot.
type SlotCardinalityError struct {
	UnitModel string
	Slot      string // empty for per-configuration model counts
	Count     int
	Min       int
	Max       int
}

func (e *SlotCardinalityError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("slot %q on model %q takes %d to %d items, got %d",
			e.Slot, e.UnitModel, e.Min, e.Max, e.Count)
	}
	return fmt.Sprintf("model %q allows %d to %d instances, got %d",
		e.UnitModel, e.Min, e.Max, e.Count)
}

// UnitSizeError reports a total model count outside the unit's bounds.
type UnitSizeError struct {
	Unit  string
	Count int
	Min   int
	Max   int
}

func (e *UnitSizeError) Error() string {
	return fmt.Sprintf("unit %q needs %d to %d models, got %d",
		e.Unit, e.Min, e.Max, e.Count)
}

// ItemSlotError reports an item choice outside a slot's eligible set.
type ItemSlotError struct {
	UnitModel string
	Slot      string
	Item      string
}

func (e *ItemSlotError) Error() string {
	return fmt.Sprintf("item %q is not eligible for slot %q on model %q",
		e.Item, e.Slot, e.UnitModel)
}

// ArmyLimitError reports that fielding another instance of a unit would
// exceed its per-army cap.
type ArmyLimitError struct {
	Unit  string
	Count int
	Max   int
}

func (e *ArmyLimitError) Error() string {
	return fmt.Sprintf("army already fields %d of unit %q, at most %d allowed",
		e.Count, e.Unit, e.Max)
}

// ValidationErrors aggregates every violation found in one build attempt.
type ValidationErrors struct {
	Violations []error
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("composition invalid: %s", strings.Join(msgs, "; "))
}

func (e *ValidationErrors) Unwrap() []error {
	return e.Violations
}

func (e *ValidationErrors) add(err error) {
	e.Violations = append(e.Violations, err)
}
