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

import "fmt"
import "math"

import "github.com/montanaflynn/stats"

/* -------------------------------------------------------------------------- */

// Median-of-ratios normalization. For every gene with strictly
// positive counts in all samples, the log-ratio of each sample to the
// geometric mean across samples is computed; the size factor of a
// sample is the exponentiated median of these log-ratios.
func EstimateSizeFactors(counts [][]int) ([]float64, error) {
  if len(counts) == 0 {
    return nil, fmt.Errorf("EstimateSizeFactors(): empty count matrix")
  }
  n := len(counts[0])

  logRatios := make([][]float64, n)
  for j := 0; j < n; j++ {
    logRatios[j] = []float64{}
  }
  for i := 0; i < len(counts); i++ {
    logGeoMean := 0.0
    positive   := true
    for j := 0; j < n; j++ {
      if counts[i][j] <= 0 {
        positive = false
        break
      }
      logGeoMean += math.Log(float64(counts[i][j]))
    }
    if !positive {
      continue
    }
    logGeoMean /= float64(n)
    for j := 0; j < n; j++ {
      logRatios[j] = append(logRatios[j], math.Log(float64(counts[i][j]))-logGeoMean)
    }
  }
  factors := make([]float64, n)
  for j := 0; j < n; j++ {
    if len(logRatios[j]) == 0 {
      return nil, fmt.Errorf("EstimateSizeFactors(): no gene has positive counts in all samples")
    }
    m, err := stats.Median(logRatios[j])
    if err != nil {
      return nil, err
    }
    factors[j] = math.Exp(m)
  }
  return factors, nil
}
