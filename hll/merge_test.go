/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergedSketch(t *testing.T, variant Variant, operands ...*Sketch) *Sketch {
	sk := newTestSketch(t, variant)
	require.NoError(t, sk.Merge(operands...))
	return sk
}

func TestMergeDisjointEqualsUnion(t *testing.T) {
	for _, variant := range variants {
		a := newTestSketch(t, variant, rangeElements(0, 500)...)
		b := newTestSketch(t, variant, rangeElements(500, 1000)...)
		all := newTestSketch(t, variant, rangeElements(0, 1000)...)

		merged := mergedSketch(t, variant, a, b)
		assert.Equal(t, registersOf(t, all), registersOf(t, merged))
		assert.False(t, merged.GetHeader().CacheValid)

		est, err := merged.GetEstimate()
		assert.NoError(t, err)
		assert.Equal(t, uint64(1001), est, "%s", variant)
	}
}

func TestMergeReadsOperandsOnly(t *testing.T) {
	a := newTestSketch(t, VariantV4, "a", "b")
	sparse, err := NewSketchFromSlice(VariantV4, encodeSparse(randomSparseRegisters(5, 50)))
	require.NoError(t, err)
	aBefore, sparseBefore := a.ToSlice(), sparse.ToSlice()

	target := newTestSketch(t, VariantV4, "c")
	require.NoError(t, target.Merge(a, sparse))
	assert.Equal(t, aBefore, a.ToSlice())
	assert.Equal(t, sparseBefore, sparse.ToSlice())
	assert.Equal(t, EncodingSparse, sparse.GetEncoding())
	assert.Equal(t, EncodingDense, target.GetEncoding())
}

func TestMergeIdempotent(t *testing.T) {
	for _, variant := range variants {
		a := newTestSketch(t, variant, rangeElements(0, 300)...)
		regs := registersOf(t, a)

		require.NoError(t, a.Merge(a))
		assert.Equal(t, regs, registersOf(t, a))

		require.NoError(t, a.Merge(a.Copy(), a.Copy()))
		assert.Equal(t, regs, registersOf(t, a))
	}
}

func TestMergeCommutativeAssociative(t *testing.T) {
	for _, variant := range variants {
		a := newTestSketch(t, variant, rangeElements(0, 200)...)
		b := newTestSketch(t, variant, rangeElements(100, 400)...)
		c := newTestSketch(t, variant, "x", "y", "z")

		ab := a.Copy()
		require.NoError(t, ab.Merge(b))
		ba := b.Copy()
		require.NoError(t, ba.Merge(a))
		assert.Equal(t, registersOf(t, ab), registersOf(t, ba))

		abC := ab.Copy()
		require.NoError(t, abC.Merge(c))
		bc := b.Copy()
		require.NoError(t, bc.Merge(c))
		aBC := a.Copy()
		require.NoError(t, aBC.Merge(bc))
		assert.Equal(t, registersOf(t, abC), registersOf(t, aBC))
		assert.Equal(t, registersOf(t, abC), registersOf(t, mergedSketch(t, variant, c, b, a)))

		e1, err := abC.GetEstimate()
		require.NoError(t, err)
		e2, err := aBC.GetEstimate()
		require.NoError(t, err)
		assert.Equal(t, e1, e2)
	}
}

func TestMergeNoOperands(t *testing.T) {
	sk := newTestSketch(t, VariantV5)
	require.NoError(t, sk.Merge())
	assert.Equal(t, EncodingDense, sk.GetEncoding())
	assert.False(t, sk.GetHeader().CacheValid)
	est, err := sk.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), est)
}

func TestMergeSparseIntoEmpty(t *testing.T) {
	regs := randomSparseRegisters(6, 100)
	operand, err := NewSketchFromSlice(VariantV4, encodeSparse(regs))
	require.NoError(t, err)

	sk := mergedSketch(t, VariantV4, operand)
	assert.Equal(t, regs, registersOf(t, sk))
}

func TestMergeVariantMismatch(t *testing.T) {
	target := newTestSketch(t, VariantV4, "a")
	before := target.ToSlice()
	err := target.Merge(newTestSketch(t, VariantV4, "b"), newTestSketch(t, VariantV5, "c"))
	assert.ErrorIs(t, err, ErrVariantMismatch)
	assert.Equal(t, before, target.ToSlice())
}

func TestMergeInconsistentOperand(t *testing.T) {
	bad, err := NewSketchFromSlice(VariantV5, append(newSparseBuffer(), sparseVal(4, 2)))
	require.NoError(t, err)

	target := newTestSketch(t, VariantV5)
	before := target.ToSlice()
	err = target.Merge(newTestSketch(t, VariantV5, "a"), bad)
	assert.ErrorIs(t, err, ErrInconsistentSparseStream)
	assert.Equal(t, before, target.ToSlice())
	assert.Equal(t, EncodingSparse, target.GetEncoding())

	err = bad.Merge(target)
	assert.ErrorIs(t, err, ErrInconsistentSparseStream)
}
