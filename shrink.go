/* Copyright (C) 2020 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package dexpress

/* -------------------------------------------------------------------------- */

import "math"

import "github.com/montanaflynn/stats"

/* -------------------------------------------------------------------------- */

// quantile of the absolute MLE fold changes used to calibrate the
// width of the shrinkage prior
const shrinkPriorQuantile = 95.0

const shrinkPriorSdMin = 0.1

/* -------------------------------------------------------------------------- */

// Shrink log2 fold changes toward zero with a normal prior whose
// width is matched to the empirical fold change distribution. This is
// a separate pass for ranking and visualization only; p-values and
// adjusted p-values are left untouched.
func (obj ContrastResult) Shrink() ContrastResult {
  abs := []float64{}
  for i := 0; i < obj.Length(); i++ {
    if !math.IsNaN(obj.Log2FoldChange[i]) {
      abs = append(abs, math.Abs(obj.Log2FoldChange[i]))
    }
  }
  priorSd := shrinkPriorSdMin
  if len(abs) > 0 {
    if q, err := stats.Percentile(abs, shrinkPriorQuantile); err == nil && q/2.0 > priorSd {
      priorSd = q/2.0
    }
  }
  priorVar := priorSd*priorSd

  r := obj.Subset(identityIndices(obj.Length()))
  for i := 0; i < r.Length(); i++ {
    if math.IsNaN(r.Log2FoldChange[i]) || math.IsNaN(r.LfcSE[i]) {
      continue
    }
    // posterior mean under a conjugate normal approximation
    v := r.LfcSE[i]*r.LfcSE[i]
    r.Log2FoldChange[i] = r.Log2FoldChange[i]*priorVar/(priorVar + v)
  }
  return r
}
