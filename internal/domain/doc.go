// Package domain models design-storm hyetographs derived from an
// intensity–duration–frequency (IDF) curve.
//
// # IDF Formula
//
// The average rainfall intensity over a duration T (minutes) is
//
//	K = C / (T^A + B)    [mm/h]
//
// where A, B and C are regional coefficients published by the local
// hydrologic authority. A is a dimensionless exponent, B an additive
// constant and C the numerator constant.
//
// # Time Discretisation
//
// A storm of total duration TT (hours) is split into NT = TT*60/T steps of
// T minutes each. NT must be a whole number; parameters that do not divide
// evenly are rejected by [NewRainfallParams].
//
// # Incremental Depths
//
// For step i (1-indexed) with ti = T*i:
//
//	k_i   = C / (ti^A + B)
//	cum_i = k_i * i
//	r_i   = cum_i - cum_(i-1),  cum_0 = 0
//
// cum_i is the depth accumulated by step i expressed in step units, so the
// differences r_i are the increments attributable to each step. For
// 0 < A <= 1 the increments are positive and strictly decreasing; larger
// exponents can produce negative increments and are outside the range this
// package is tuned for. See [Calculate].
//
// # Alternating Block Method
//
// The increments are re-ordered in time according to a [DistributionPattern]:
//
//	Front:  largest first, decaying to the end of the storm.
//	Rear:   smallest first, peaking in the last step.
//	Center: peak at index NT/2 (floor), next largest immediately before it,
//	        then alternating one step after, one step before.
//
// For odd NT the Center peak lands on the exact middle slot. For even NT
// there is no single middle, and the peak takes the right-hand slot of the
// middle pair (index 6 of 0..11 for NT=12). The same rule serves both cases.
// See [Arrange].
package domain
