package shared

// HPResource tracks hit points and temporary HP.
// Invariant: 0 <= Current <= Max, Temp >= 0.
type HPResource struct {
	Max     int `json:"max"`
	Current int `json:"current"`
	Temp    int `json:"temp"`
}

// Adjust moves current HP by delta, clamped to [0, Max]
func (hp *HPResource) Adjust(delta int) {
	hp.Current = Clamp(hp.Current+delta, 0, hp.Max)
}

// Restore brings current HP to max and drops temporary HP
func (hp *HPResource) Restore() {
	hp.Current = hp.Max
	hp.Temp = 0
}

// Normalize re-establishes the HP invariants
func (hp *HPResource) Normalize() {
	if hp.Max < 0 {
		hp.Max = 0
	}
	if hp.Temp < 0 {
		hp.Temp = 0
	}
	hp.Current = Clamp(hp.Current, 0, hp.Max)
}

// HitDiceResource tracks hit dice for healing.
// Invariant: 0 <= Remaining <= Total.
type HitDiceResource struct {
	Die       string `json:"die"` // "d6", "d8", "d10", "d12"
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
}

// Adjust moves remaining hit dice by delta, clamped to [0, Total]
func (hd *HitDiceResource) Adjust(delta int) {
	hd.Remaining = Clamp(hd.Remaining+delta, 0, hd.Total)
}

// RecoverHalfSpent restores half of the spent dice, rounded down
func (hd *HitDiceResource) RecoverHalfSpent() int {
	recovered := (hd.Total - hd.Remaining) / 2
	if recovered < 0 {
		recovered = 0
	}
	before := hd.Remaining
	hd.Remaining = Clamp(hd.Remaining+recovered, 0, hd.Total)
	return hd.Remaining - before
}

// Normalize re-establishes the hit dice invariants
func (hd *HitDiceResource) Normalize() {
	if hd.Total < 0 {
		hd.Total = 0
	}
	hd.Remaining = Clamp(hd.Remaining, 0, hd.Total)
}

// Clamp bounds v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
