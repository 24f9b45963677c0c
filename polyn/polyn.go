// Package polyn is for arithmetic with polynomials in a single variable t,
// as used for the per-axis cubic segments of interpolating splines.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/schuko/tracing"
)

// ErrNegativeExponent flags a term with exponent < 1 passed to New.
var ErrNegativeExponent = errors.New("term exponent must be at least 1")

// tracer writes to trace with key 'pathflow'
func tracer() tracing.Trace {
	return tracing.Select("pathflow")
}

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅t^I
//
// I > 0
type X struct {
	I int     // exponent of t
	C float64 // coefficient
}

// New creates a polynomial, given the term coefficients and exponents
//
// Use it as
//
//	polyn.New(8, polyn.X{2,5}, polyn.X{1,2/3} )
//
// to get
//
//	P(t) = 8 + 2/3 t + 5 t²
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 1 {
			err = fmt.Errorf("%w, skipping term %g⋅t^%d", ErrNegativeExponent, t.C, t.I)
		} else {
			p.SetTerm(t.I, t.C)
		}
	}
	return p, err
}

// Polynomial is a type for polynomials in one variable
//
//	c + a.1 t + a.2 t² + ... a.n t^n .
//
// We store the coefficients only. Index 0 is the constant term.
// We store the coefficients in a TreeMap (sorted map), keyed by exponent.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c) // initialize with constant term (at position 0)
	return p.Zap()
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for a term a.i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, scale float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, scale)
	return p
}

// GetCoeffForTerm returns the coefficient of t^i, or 0 if not present.
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	if p.Terms == nil {
		return 0.0
	}
	if c, ok := p.Terms.Get(i); ok {
		return c.(float64)
	}
	return 0.0
}

// Exponents returns the exponents of all terms present, ascending.
func (p Polynomial) Exponents() []int {
	p.checkTerms()
	keys := p.Terms.Keys()
	exps := make([]int, len(keys))
	for i, k := range keys {
		exps[i] = k.(int)
	}
	return exps
}

// TermCount returns the number of terms, including the constant term.
func (p Polynomial) TermCount() int {
	p.checkTerms()
	return p.Terms.Size()
}

// Degree is the highest exponent with a non-zero coefficient.
func (p Polynomial) Degree() int {
	p.checkTerms()
	deg := 0
	it := p.Terms.Iterator()
	for it.Next() {
		if !pathflow.Is0(it.Value().(float64)) {
			deg = it.Key().(int)
		}
	}
	return deg
}

// CopyPolynomial creates an independent copy of p.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := NewConstantPolynomial(0.0) // will become our return value
	p.checkTerms()
	it := p.Terms.Iterator()
	for it.Next() { // copy all terms of p into p1
		p1.SetTerm(it.Key().(int), it.Value().(float64))
	}
	return p1
}

// Add adds two Polynomials. Returns a new Polynomial; neither operand is altered.
func (p Polynomial) Add(p2 Polynomial) Polynomial {
	p.checkTerms()
	p1 := p.CopyPolynomial()
	p2.checkTerms()
	it2 := p2.Terms.Iterator()
	for it2.Next() {
		pos2 := it2.Key().(int)
		scale2 := it2.Value().(float64)
		if !pathflow.Is0(scale2) {
			p1.SetTerm(pos2, p1.GetCoeffForTerm(pos2)+scale2)
		}
	}
	return p1.Zap()
}

// Scaled multiplies every coefficient by c. Returns a new Polynomial.
func (p Polynomial) Scaled(c float64) Polynomial {
	p.checkTerms()
	p1 := NewConstantPolynomial(0.0)
	it := p.Terms.Iterator()
	for it.Next() {
		p1.SetTerm(it.Key().(int), it.Value().(float64)*c)
	}
	return p1.Zap()
}

// Derivative returns dP/dt.
func (p Polynomial) Derivative() Polynomial {
	p.checkTerms()
	d := NewConstantPolynomial(0.0)
	it := p.Terms.Iterator()
	for it.Next() {
		pos := it.Key().(int)
		if pos == 0 {
			continue
		}
		d.SetTerm(pos-1, float64(pos)*it.Value().(float64))
	}
	return d.Zap()
}

// Eval evaluates P(t). Terms are visited in descending exponent order,
// accumulating Horner-style over the gaps between exponents.
func (p Polynomial) Eval(t float64) float64 {
	if p.Terms == nil {
		return 0.0
	}
	it := p.Terms.Iterator()
	if !it.Last() {
		return 0.0
	}
	acc := it.Value().(float64)
	prev := it.Key().(int)
	for it.Prev() {
		pos := it.Key().(int)
		acc = acc*math.Pow(t, float64(prev-pos)) + it.Value().(float64)
		prev = pos
	}
	if prev > 0 {
		acc *= math.Pow(t, float64(prev))
	}
	return acc
}

// Zap eliminates all terms with coefficient=0 from a polynomial.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	positions := p.Terms.Keys()
	for _, pos := range positions {
		if scale, _ := p.Terms.Get(pos); pathflow.Is0(scale.(float64)) {
			p.Terms.Remove(pos) // may lose constant term c
		}
	}
	if _, ok := p.Terms.Get(0); !ok {
		p.Terms.Put(0, 0.0) // set p = 0: re-introduce c
	}
	return p
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	p.checkTerms()
	return p.GetCoeffForTerm(0), p.Degree() == 0
}

// String creates a readable string representation for a Polynomial, as
//
//	{ c } { a.1 t^1 } { a.2 t^2 } …
//
// Coefficients are rounded to ε.
func (p Polynomial) String() string {
	var buffer bytes.Buffer
	p.checkTerms()
	it := p.Terms.Iterator()
	for it.Next() {
		pos := it.Key().(int)
		c := pathflow.Round(it.Value().(float64))
		if pos == 0 {
			buffer.WriteString(fmt.Sprintf("{ %g } ", c))
		} else {
			buffer.WriteString(fmt.Sprintf("{ %g t^%d } ", c, pos))
		}
	}
	return buffer.String()
}
