// Package bigint wraps math/big.Int with exactly the operations the
// interpreter's value domain needs: parse/format, the four basic
// operations with truncating division, comparison, bitwise logic, and
// the narrow small-integer escape hatch that loop bounds, shift counts,
// and dictionary/variable indices all need at some point.
package bigint

import "math/big"

// Int is an arbitrary-precision signed integer.
type Int struct {
	v big.Int
}

// Zero is the additive identity.
var Zero = Int{}

// FromInt64 builds an Int from a small signed integer.
func FromInt64(n int64) Int {
	var x Int
	x.v.SetInt64(n)
	return x
}

// Parse reads a base-10 signed integer, as accepted by the outer
// interpreter for numeric literals ("-7", "42", ...). ok is false on any
// malformed input, mirroring mpz_set_str's non-zero return.
func Parse(s string) (x Int, ok bool) {
	_, success := x.v.SetString(s, 10)
	return x, success
}

// String formats x in decimal, the inverse of Parse.
func (x Int) String() string { return x.v.String() }

// Sign returns -1, 0, or 1.
func (x Int) Sign() int { return x.v.Sign() }

// IsZero reports whether x is exactly 0.
func (x Int) IsZero() bool { return x.v.Sign() == 0 }

// Cmp returns -1, 0, or 1 as x is less than, equal to, or greater than y.
func (x Int) Cmp(y Int) int { return x.v.Cmp(&y.v) }

// Add returns x+y.
func (x Int) Add(y Int) Int {
	var r Int
	r.v.Add(&x.v, &y.v)
	return r
}

// Sub returns x-y.
func (x Int) Sub(y Int) Int {
	var r Int
	r.v.Sub(&x.v, &y.v)
	return r
}

// Mul returns x*y.
func (x Int) Mul(y Int) Int {
	var r Int
	r.v.Mul(&x.v, &y.v)
	return r
}

// Quo returns the truncated (toward zero) quotient x/y. Callers must
// check y.IsZero() first; Quo panics on division by zero the same way
// math/big does.
func (x Int) Quo(y Int) Int {
	var r Int
	r.v.Quo(&x.v, &y.v)
	return r
}

// Inc returns x+1.
func (x Int) Inc() Int {
	var r Int
	r.v.Add(&x.v, big.NewInt(1))
	return r
}

// And returns the bitwise AND of x and y (two's complement, infinite
// precision).
func (x Int) And(y Int) Int {
	var r Int
	r.v.And(&x.v, &y.v)
	return r
}

// Or returns the bitwise OR of x and y.
func (x Int) Or(y Int) Int {
	var r Int
	r.v.Or(&x.v, &y.v)
	return r
}

// Xor returns the bitwise XOR of x and y.
func (x Int) Xor(y Int) Int {
	var r Int
	r.v.Xor(&x.v, &y.v)
	return r
}

// Not returns the bitwise complement of x (^x == -x-1), involutive.
func (x Int) Not() Int {
	var r Int
	r.v.Not(&x.v)
	return r
}

// Lsh returns x shifted left by n bits (x * 2^n).
func (x Int) Lsh(n uint) Int {
	var r Int
	r.v.Lsh(&x.v, n)
	return r
}

// Rsh returns x shifted right by n bits, truncating toward zero (GMP's
// mpz_tdiv_q_2exp convention) rather than math/big.Int.Rsh's floor
// convention, which differ for negative x.
func (x Int) Rsh(n uint) Int {
	if x.v.Sign() >= 0 {
		var r Int
		r.v.Rsh(&x.v, n)
		return r
	}
	var neg, shifted big.Int
	neg.Neg(&x.v)
	shifted.Rsh(&neg, n)
	var r Int
	r.v.Neg(&shifted)
	return r
}

// Small reports whether x fits in an int, narrowing it if so. This backs
// every place the interpreter needs a machine-sized index or count
// (PICK distance, shift amount, dictionary/variable index) derived from
// a stack value.
func (x Int) Small() (int, bool) {
	if !x.v.IsInt64() {
		return 0, false
	}
	n := x.v.Int64()
	if int64(int(n)) != n {
		return 0, false
	}
	return int(n), true
}
