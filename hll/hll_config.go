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

import "fmt"

// Variant selects the Redis generation whose pattern-length derivation and
// cardinality estimator a sketch follows. The register encodings are shared.
//
//   - VariantV4 matches Redis 4.x: LogLog-Beta bias-corrected harmonic estimator.
//
//   - VariantV5 matches Redis 5.x and later: Ertl's improved estimator built on the
//     register histogram (arXiv:1702.01284).
type Variant int

const (
	VariantV4      = Variant(4)
	VariantV5      = Variant(5)
	VariantDefault = VariantV5
)

func (v Variant) String() string {
	switch v {
	case VariantV4:
		return "v4"
	case VariantV5:
		return "v5"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// checkVariant returns an error unless v is one of the supported variants.
func checkVariant(v Variant) error {
	if v == VariantV4 || v == VariantV5 {
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
}
