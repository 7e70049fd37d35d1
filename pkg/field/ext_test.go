package field

import (
	"math/rand/v2"
	"testing"

	"github.com/fasteater/risc0/pkg/util/assert"
)

// The extension basis element x, i.e. coefficients [0,1,0,0,0].
func basisX() Ext {
	return NewExt(0, 1, 0, 0, 0)
}

func TestExt_ReductionIdentity(t *testing.T) {
	// x⁵ must reduce to the modulus constant: mul(x,x,x,x,x) = [2,0,0,0,0],
	// computed through the generic multiplication routine.
	var (
		x   = basisX()
		acc = basisX()
	)
	//
	for range 4 {
		acc.Mul(&acc, &x)
	}
	//
	expected := NewExt(Beta, 0, 0, 0, 0)
	assert.True(t, acc.Equal(&expected), "x^5 = %s, expected %s", acc.String(), expected.String())
}

func TestExt_AddLaws(t *testing.T) {
	for range 1000 {
		var (
			a = randomExt()
			b = randomExt()
			c = randomExt()
			l Ext
			r Ext
		)
		//
		l.Add(&a, &b)
		r.Add(&b, &a)
		assert.True(t, l.Equal(&r), "a+b != b+a")
		//
		l.Add(&a, &b)
		l.Add(&l, &c)
		r.Add(&b, &c)
		r.Add(&a, &r)
		assert.True(t, l.Equal(&r), "(a+b)+c != a+(b+c)")
		//
		var zero Ext
		//
		l.Add(&a, &zero)
		assert.True(t, l.Equal(&a), "a+0 != a")
	}
}

func TestExt_MulLaws(t *testing.T) {
	for range 1000 {
		var (
			a = randomExt()
			b = randomExt()
			c = randomExt()
			l Ext
			r Ext
		)
		//
		l.Mul(&a, &b)
		r.Mul(&b, &a)
		assert.True(t, l.Equal(&r), "a*b != b*a")
		//
		l.Mul(&a, &b)
		l.Mul(&l, &c)
		r.Mul(&b, &c)
		r.Mul(&a, &r)
		assert.True(t, l.Equal(&r), "(a*b)*c != a*(b*c)")
		//
		var one Ext
		//
		one.SetOne()
		l.Mul(&a, &one)
		assert.True(t, l.Equal(&a), "a*1 != a")
	}
}

func TestExt_Distributivity(t *testing.T) {
	for range 1000 {
		var (
			a   = randomExt()
			b   = randomExt()
			c   = randomExt()
			l   Ext
			r   Ext
			tmp Ext
		)
		//
		l.Add(&b, &c)
		l.Mul(&a, &l)
		r.Mul(&a, &b)
		tmp.Mul(&a, &c)
		r.Add(&r, &tmp)
		assert.True(t, l.Equal(&r), "a*(b+c) != a*b + a*c")
	}
}

func TestExt_BaseEmbedding(t *testing.T) {
	// Multiplication of embedded base elements must agree with base field
	// multiplication.
	for range 1000 {
		var (
			a = randomElement()
			b = randomElement()
			x Ext
			y Ext
			c Element
		)
		//
		x.SetBase(a)
		y.SetBase(b)
		x.Mul(&x, &y)
		c.Mul(&a, &b)
		//
		var expected Ext
		//
		expected.SetBase(c)
		assert.True(t, x.Equal(&expected), "embedding does not commute with mul")
	}
}

func TestExt_MulBase(t *testing.T) {
	for range 1000 {
		var (
			a = randomExt()
			s = randomElement()
			l Ext
			r Ext
			y Ext
		)
		// scaling must agree with multiplication by the embedding of s
		l.MulBase(&a, s)
		y.SetBase(s)
		r.Mul(&a, &y)
		assert.True(t, l.Equal(&r), "MulBase disagrees with Mul of embedding")
	}
}

func TestExt_SubNeg(t *testing.T) {
	for range 1000 {
		var (
			a = randomExt()
			b = randomExt()
			l Ext
			r Ext
		)
		// a - b == a + (-b)
		l.Sub(&a, &b)
		r.Neg(&b)
		r.Add(&a, &r)
		assert.True(t, l.Equal(&r), "a-b != a+(-b)")
		// a - a == 0
		l.Sub(&a, &a)
		assert.True(t, l.IsZero(), "a-a != 0")
	}
}

func randomExt() Ext {
	var e Ext
	//
	for i := range e {
		e[i] = NewElement(rand.Uint64N(Prime))
	}
	//
	return e
}
