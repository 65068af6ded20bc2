package shared

import (
	"bytes"
	"encoding/json"

	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

// Kind tags the shape of a resource instance
type Kind string

const (
	KindCounter Kind = "counter"
	KindToggle  Kind = "toggle"
	KindPool    Kind = "pool"
	KindStatic  Kind = "static"
)

// Instance is one class resource. The set of implementations is closed:
// *Counter, *Toggle, *Pool and *Static.
type Instance interface {
	Kind() Kind
	cloneInstance() Instance
}

// Counter is a resource spent one use at a time.
// Invariant: 0 <= Used <= Max.
type Counter struct {
	Max  int `json:"max"`
	Used int `json:"used"`
}

func (c *Counter) Kind() Kind { return KindCounter }

func (c *Counter) cloneInstance() Instance {
	cp := *c
	return &cp
}

// Remaining returns the uses left
func (c *Counter) Remaining() int {
	return c.Max - c.Used
}

// Adjust moves the remaining uses by delta. The result saturates at 0 and Max.
func (c *Counter) Adjust(delta int) {
	remaining := Clamp(c.Remaining()+delta, 0, c.Max)
	c.Used = c.Max - remaining
}

// Reset restores every use
func (c *Counter) Reset() {
	c.Used = 0
}

// Normalize re-establishes the counter invariant
func (c *Counter) Normalize() {
	if c.Max < 0 {
		c.Max = 0
	}
	c.Used = Clamp(c.Used, 0, c.Max)
}

// Toggle is a once-per-rest feature that is either available or spent
type Toggle struct {
	Available bool `json:"available"`
}

func (t *Toggle) Kind() Kind { return KindToggle }

func (t *Toggle) cloneInstance() Instance {
	cp := *t
	return &cp
}

// Reset makes the feature available again
func (t *Toggle) Reset() {
	t.Available = true
}

// Pool is a resource spent in arbitrary amounts, tracked by what is left.
// Invariant: 0 <= Remaining <= Max.
type Pool struct {
	Max       int `json:"max"`
	Remaining int `json:"remaining"`
}

func (p *Pool) Kind() Kind { return KindPool }

func (p *Pool) cloneInstance() Instance {
	cp := *p
	return &cp
}

// SetMax changes the capacity and pulls Remaining down if it no longer fits
func (p *Pool) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	p.Max = max
	p.Remaining = Clamp(p.Remaining, 0, p.Max)
}

// SetRemaining sets what is left, bounded by the capacity
func (p *Pool) SetRemaining(remaining int) {
	p.Remaining = Clamp(remaining, 0, p.Max)
}

// Reset refills the pool
func (p *Pool) Reset() {
	p.Remaining = p.Max
}

// Normalize re-establishes the pool invariant
func (p *Pool) Normalize() {
	p.SetMax(p.Max)
}

// Static is display-only data stored alongside a class's resources
type Static struct {
	Value json.RawMessage
}

func (s *Static) Kind() Kind { return KindStatic }

func (s *Static) cloneInstance() Instance {
	return &Static{Value: append(json.RawMessage(nil), s.Value...)}
}

// MarshalJSON writes the raw display value
func (s *Static) MarshalJSON() ([]byte, error) {
	if len(s.Value) == 0 {
		return []byte("null"), nil
	}
	return s.Value, nil
}

// CloneInstance returns a deep copy of inst
func CloneInstance(inst Instance) Instance {
	if inst == nil {
		return nil
	}
	return inst.cloneInstance()
}

// ResourceSet holds one class's resource instances by name
type ResourceSet map[string]Instance

// Clone deep-copies the set
func (rs ResourceSet) Clone() ResourceSet {
	if rs == nil {
		return nil
	}
	cp := make(ResourceSet, len(rs))
	for name, inst := range rs {
		cp[name] = CloneInstance(inst)
	}
	return cp
}

// MarshalJSON writes each instance in its own shape
func (rs ResourceSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]Instance, len(rs))
	for name, inst := range rs {
		out[name] = inst
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads instances, telling kinds apart by their fields:
// "available" marks a toggle, "remaining" a pool, "max" a counter, and any
// non-object value is static.
func (rs *ResourceSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	set := make(ResourceSet, len(raw))
	for name, msg := range raw {
		inst, err := decodeInstance(msg)
		if err != nil {
			return dnderr.Wrapf(err, "resource %q", name).WithMeta("resource", name)
		}
		set[name] = inst
	}
	*rs = set
	return nil
}

func decodeInstance(msg json.RawMessage) (Instance, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return nil, err
		}
		return &Static{Value: compact.Bytes()}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}

	var inst Instance
	switch {
	case has(fields, "available"):
		inst = &Toggle{}
	case has(fields, "remaining"):
		inst = &Pool{}
	case has(fields, "max"):
		inst = &Counter{}
	default:
		return nil, dnderr.Validationf("unrecognised resource shape %s", string(trimmed))
	}

	if err := json.Unmarshal(trimmed, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func has(fields map[string]json.RawMessage, key string) bool {
	_, ok := fields[key]
	return ok
}
