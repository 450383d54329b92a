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
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentMergeSharedOperand(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	for _, variant := range variants {
		dense := newTestSketch(t, variant, rangeElements(0, 2000)...)
		sparse, err := NewSketchFromSlice(variant, encodeSparse(randomSparseRegisters(7, 64)))
		require.NoError(t, err)
		denseBefore, sparseBefore := dense.ToSlice(), sparse.ToSlice()

		targets := make([]*Sketch, 8)
		var g errgroup.Group
		for i := range targets {
			targets[i] = newTestSketch(t, variant, rangeElements(i*10, i*10+10)...)
			target := targets[i]
			g.Go(func() error {
				if err := target.Merge(dense, sparse); err != nil {
					return err
				}
				_, err := target.GetEstimate()
				return err
			})
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, denseBefore, dense.ToSlice())
		assert.Equal(t, sparseBefore, sparse.ToSlice())

		expected := newTestSketch(t, variant)
		require.NoError(t, expected.Merge(dense, sparse))
		for i := range targets {
			require.NoError(t, expected.Merge(newTestSketch(t, variant, rangeElements(i*10, i*10+10)...)))
		}
		union := newTestSketch(t, variant)
		require.NoError(t, union.Merge(targets...))
		assert.Equal(t, registersOf(t, expected), registersOf(t, union))
	}
}
