// Package sensorfeed is the domain-stack wiring that stands in for the
// physical sensor board's hardware transport: a local websocket protocol
// carrying (mask, state) readings, played either live from a boardsim
// fixture replay or from a real board driver speaking the same wire
// format. See cmd/boardctl and cmd/boardsim.
package sensorfeed

// Frame is one sensor observation: Mask identifies which squares the
// reading covers, State is the full board occupancy after the reading
// (bit i set = square i occupied).
// Both are raw 64-bit fields matching rules.Engine.Observe's wire
// contract directly -- no reinterpretation happens in this package.
type Frame struct {
	Mask  uint64 `json:"mask"`
	State uint64 `json:"state"`
}
