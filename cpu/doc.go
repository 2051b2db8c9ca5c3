// Package cpu implements the arithmetic register file of the µCalc
// calculator CPU.
//
// The processor holds seven 14-nibble BCD registers. Registers A and B
// together drive the display: A holds the digit data, B the per-cell
// display mask. Register C is the canonical arithmetic ("X") register,
// derived from the display pair by the canonicalization pass. Registers
// D, E, and F form the operational stack and M is the memory scratch
// register; none of them participate in canonicalization.
package cpu
