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
	"github.com/pfutil/pfutil-go/internal"
)

// Dense registers are packed 6 bits per slot starting right after the header.
// Register i occupies bits [i*6, i*6+6) of the data section, least significant
// bit first, so a register spans at most two bytes.

// newDenseBuffer returns a zero-filled dense image without a header.
func newDenseBuffer() []byte {
	return make([]byte, hllDenseSize)
}

// denseGetRegister returns register slotNo of the dense image buf.
func denseGetRegister(buf []byte, slotNo int) int {
	startBit := slotNo * hllBits
	shift := startBit & 0x7
	byteIdx := (startBit >> 3) + headerSize
	return (internal.GetShortLESafe(buf, byteIdx) >> shift) & hllRegisterMax
}

// denseSetRegister overwrites register slotNo of the dense image buf with value.
func denseSetRegister(buf []byte, slotNo int, value int) {
	startBit := slotNo * hllBits
	shift := startBit & 0x7
	byteIdx := (startBit >> 3) + headerSize
	valShifted := (value & hllRegisterMax) << shift
	curMasked := internal.GetShortLESafe(buf, byteIdx) &^ (hllRegisterMax << shift)
	internal.PutShortLESafe(buf, byteIdx, curMasked|valShifted)
}

// denseSetIfGreater stores value into register slotNo only if it is larger than
// the current value, and reports whether it did.
func denseSetIfGreater(buf []byte, slotNo int, value int) bool {
	if value <= denseGetRegister(buf, slotNo) {
		return false
	}
	denseSetRegister(buf, slotNo, value)
	return true
}

// denseTraverse calls onRun once per register, as a run of length one.
func denseTraverse(buf []byte, onRun runFunc) {
	bitOffset := 0
	for slotNo := 0; slotNo < hllRegisters; slotNo++ {
		tmp := internal.GetShortLESafe(buf, (bitOffset>>3)+headerSize)
		onRun(slotNo, 1, (tmp>>(bitOffset&0x7))&hllRegisterMax)
		bitOffset += hllBits
	}
}
