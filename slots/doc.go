// Package slots implements the slot-accumulation primitives shared by every
// flow: the pure merge of stored slot values with newly extracted entity
// values, and the declared entity-type-to-slot-name mapping each flow
// validates at startup instead of matching entity strings ad hoc inside
// handler code.
package slots
