// Package trigger implements the TriggerPolicy interface defined by package
// graph: the decision, made at every node visit during a pulse, of whether
// a node should notify its own observers (spec.md §4.6).
package trigger

import "github.com/flowgraph/reactor/internal/reactorlog"

// Always fires regardless of whether the node's own value changed this
// pulse, grounded on original_source's AlwaysTrigger.
type Always struct{}

func (Always) ShouldFire(changed bool) bool { return true }

// OnChange fires only when the node's value changed this pulse, grounded on
// original_source's ValueChangeTrigger. This is the default trigger policy
// for Computed cells per spec.md §4.6.
type OnChange struct{}

func (OnChange) ShouldFire(changed bool) bool { return changed }

// Predicate is the user-supplied threshold function a Threshold trigger
// evaluates at every visit; it takes no arguments because it closes over
// whatever handles the caller captured when calling SetThreshold.
type Predicate func() bool

// Threshold fires based on an arbitrary predicate over the node's captured
// arguments rather than its own change flag, grounded on original_source's
// ThresholdTrigger. RepeatDependent mirrors ThresholdTrigger's
// m_repeatDependent: when true, the predicate was built to read its
// arguments with GetUpdate() (forcing them fresh) rather than Get() (plain,
// possibly stale, read), resolving the spec's Open Question on Threshold +
// repeat-dependency interaction.
type Threshold struct {
	Predicate       Predicate
	RepeatDependent bool
	log             *reactorlog.Logger
}

// NewThreshold builds a Threshold trigger. log may be nil.
func NewThreshold(pred Predicate, repeatDependent bool, log *reactorlog.Logger) *Threshold {
	if log == nil {
		log = reactorlog.Default
	}
	return &Threshold{Predicate: pred, RepeatDependent: repeatDependent, log: log}
}

func (t *Threshold) ShouldFire(changed bool) bool {
	if t.Predicate == nil {
		return true
	}
	if t.RepeatDependent {
		t.log.Info("threshold predicate is repeat-dependent; evaluating against fresh updates")
	}
	return t.Predicate()
}

// SetThreshold replaces the predicate and repeat-dependency flag, mirroring
// ThresholdTrigger::setThreshold + setRepeatDependent.
func (t *Threshold) SetThreshold(pred Predicate, repeatDependent bool) {
	t.Predicate = pred
	t.RepeatDependent = repeatDependent
}
