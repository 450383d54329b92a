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
	"fmt"

	"github.com/pfutil/pfutil-go/internal"
)

// Merge folds others into this sketch, like PFMERGE with this sketch as the
// destination: every register becomes the maximum of itself and the matching
// register of each operand.
//
// The operands are only read. This sketch ends up dense with a stale cache, even
// when others is empty. If this sketch or any operand is a sparse image whose
// runs are inconsistent, or an operand has another variant, Merge returns an
// error and this sketch is left untouched.
func (s *Sketch) Merge(others ...*Sketch) error {
	for i, other := range others {
		if other.variant != s.variant {
			return fmt.Errorf("%w: operand %d is %s, target is %s", ErrVariantMismatch, i, other.variant, s.variant)
		}
	}

	var maxRegs [hllRegisters]uint8
	if err := mergeRegisters(&maxRegs, s.buf); err != nil {
		return fmt.Errorf("merge target: %w", err)
	}
	s.trusted = true
	for i, other := range others {
		if err := mergeRegisters(&maxRegs, other.buf); err != nil {
			return fmt.Errorf("merge operand %d: %w", i, err)
		}
	}

	if err := s.promote(); err != nil {
		return err
	}
	for slotNo, value := range maxRegs {
		if value != 0 {
			denseSetIfGreater(s.buf, slotNo, int(value))
		}
	}
	invalidateCache(s.buf)
	return nil
}

// mergeRegisters raises every entry of maxRegs to the matching register of buf.
func mergeRegisters(maxRegs *[hllRegisters]uint8, buf []byte) error {
	return traverseRegisters(buf, func(start int, runLen int, value int) {
		if value == 0 {
			return
		}
		for slotNo := start; slotNo < start+runLen; slotNo++ {
			maxRegs[slotNo] = internal.Max(maxRegs[slotNo], uint8(value))
		}
	})
}
