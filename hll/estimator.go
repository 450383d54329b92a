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
	"math"

	"github.com/pfutil/pfutil-go/internal"
)

// estimate returns the cardinality of the image buf under the estimator of variant.
// It fails only when buf is a sparse image whose runs are inconsistent.
func estimate(variant Variant, buf []byte) (uint64, error) {
	if variant == VariantV4 {
		ez, e, err := registerSum(buf)
		if err != nil {
			return 0, err
		}
		return estimateV4(ez, e), nil
	}
	hist, err := registerHistogram(buf)
	if err != nil {
		return 0, err
	}
	return estimateV5(hist), nil
}

// registerSum returns the number of zero registers and the sum of 2^(-reg)
// over all registers, zero registers included as 2^0.
func registerSum(buf []byte) (ez int, e float64, err error) {
	err = traverseRegisters(buf, func(start int, runLen int, value int) {
		if value == 0 {
			ez += runLen
		} else {
			e += pe[value] * float64(runLen)
		}
	})
	if err != nil {
		return 0, 0, err
	}
	e += float64(ez)
	return ez, e, nil
}

// registerHistogram returns how many registers hold each value.
func registerHistogram(buf []byte) ([hllHistogramSize]int, error) {
	var hist [hllHistogramSize]int
	err := traverseRegisters(buf, func(start int, runLen int, value int) {
		hist[value] += runLen
	})
	if err != nil {
		return [hllHistogramSize]int{}, err
	}
	return hist, nil
}

// estimateV4 is the LogLog-Beta estimator of Redis 4: the raw harmonic mean
// estimate with a polynomial bias correction in ln(ez+1).
func estimateV4(ez int, e float64) uint64 {
	m := float64(hllRegisters)
	alpha := 0.7213 / (1 + 1.079/m)
	fez := float64(ez)
	zl := math.Log(fez + 1)
	beta := -0.370393911*fez +
		0.070471823*zl +
		0.17393686*math.Pow(zl, 2) +
		0.16339839*math.Pow(zl, 3) +
		-0.09237745*math.Pow(zl, 4) +
		0.03738027*math.Pow(zl, 5) +
		-0.005384159*math.Pow(zl, 6) +
		0.00042419*math.Pow(zl, 7)
	return roundCount(alpha * m * (m - fez) * (1 / (e + beta)))
}

// estimateV5 is the improved estimator from Otmar Ertl, "New cardinality
// estimation algorithms for HyperLogLog sketches" (arXiv:1702.01284), as used by
// Redis 5. Registers above hllQ+1 cannot occur and are ignored.
func estimateV5(hist [hllHistogramSize]int) uint64 {
	m := float64(hllRegisters)
	z := m * hllTau((m-float64(hist[hllQ+1]))/m)
	for j := hllQ; j >= 1; j-- {
		z += float64(hist[j])
		z *= 0.5
	}
	z += m * hllSigma(float64(hist[0])/m)
	return roundCount(hllAlphaInf * m * m / z)
}

// hllSigma adds the contribution of registers equal to zero.
func hllSigma(x float64) float64 {
	if x == 1. {
		return math.Inf(1)
	}

	zPrime := 0.0
	y := 1.0
	z := x

	for {
		x *= x
		zPrime = z
		z += x * y
		y += y

		if zPrime == z {
			break
		}
	}

	return z
}

// hllTau corrects for registers that reached the maximum pattern length.
func hllTau(x float64) float64 {
	if x == 0. || x == 1. {
		return 0.
	}

	zPrime := 0.0
	y := 1.0
	z := 1 - x

	for {
		x = math.Sqrt(x)
		zPrime = z
		y *= 0.5
		z -= (1 - x) * (1 - x) * y

		if zPrime == z {
			break
		}
	}

	return z / 3
}

// roundCount rounds half away from zero like llroundl. Estimates are never negative.
func roundCount(est float64) uint64 {
	if !(est > 0) {
		return 0
	}
	return uint64(math.Round(est))
}

func invPow2(e int) float64 {
	v, err := internal.InvPow2(e)
	if err != nil {
		panic(err)
	}
	return v
}
