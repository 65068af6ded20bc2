package rulebook

// Cadence is the rest that recovers a resource
type Cadence string

const (
	CadenceNone      Cadence = "none"
	CadenceShortRest Cadence = "short rest"
	CadenceLongRest  Cadence = "long rest"
)

// Trigger is a rest event
type Trigger string

const (
	TriggerShortRest Trigger = "short"
	TriggerLongRest  Trigger = "long"
)

// RecoversOn reports whether a resource with this cadence resets on trigger.
// A long rest recovers everything a short rest does.
func (c Cadence) RecoversOn(trigger Trigger) bool {
	switch trigger {
	case TriggerShortRest:
		return c == CadenceShortRest
	case TriggerLongRest:
		return c == CadenceShortRest || c == CadenceLongRest
	}
	return false
}

// IsValid reports whether c is a known cadence
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceNone, CadenceShortRest, CadenceLongRest:
		return true
	}
	return false
}
