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
import "sort"

/* -------------------------------------------------------------------------- */

// Benjamini-Hochberg adjustment for multiple testing. NaN entries are
// ignored and stay NaN in the output.
func BenjaminiHochberg(pvalues []float64) []float64 {
  indices := []int{}
  for i := 0; i < len(pvalues); i++ {
    if !math.IsNaN(pvalues[i]) {
      indices = append(indices, i)
    }
  }
  sort.SliceStable(indices, func(i, j int) bool {
    return pvalues[indices[i]] < pvalues[indices[j]]
  })
  m := len(indices)
  r := make([]float64, len(pvalues))
  for i := 0; i < len(r); i++ {
    r[i] = math.NaN()
  }
  q := math.Inf(1)
  for k := m-1; k >= 0; k-- {
    v := pvalues[indices[k]]*float64(m)/float64(k+1)
    if v < q {
      q = v
    }
    if q > 1.0 {
      r[indices[k]] = 1.0
    } else {
      r[indices[k]] = q
    }
  }
  return r
}
