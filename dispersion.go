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

import . "github.com/pbenner/threadpool"

import "gonum.org/v1/gonum/stat"

/* -------------------------------------------------------------------------- */

const dispersionMin = 1e-8
const dispersionMax = 10.0

// weight of the gene-wise estimate when shrinking toward the trend
const dispersionShrinkWeight = 0.5

/* -------------------------------------------------------------------------- */

func genewiseDispersion(counts []int, sizeFactors []float64) (float64, float64) {
  n := len(counts)
  q := make([]float64, n)
  for j := 0; j < n; j++ {
    q[j] = float64(counts[j])/sizeFactors[j]
  }
  m := stat.Mean(q, nil)
  v := stat.Variance(q, nil)
  if m <= 0.0 {
    return 0.0, dispersionMin
  }
  // method of moments for the negative binomial variance mu + d*mu^2
  d := (v - m)/(m*m)
  if d < dispersionMin {
    d = dispersionMin
  }
  if d > dispersionMax {
    d = dispersionMax
  }
  return m, d
}

// Least squares fit of the dispersion trend d(m) = a1/m + a0.
func dispersionTrend(means, dispersions []float64) (float64, float64) {
  // regress dispersion on 1/mean
  x := []float64{}
  y := []float64{}
  for i := 0; i < len(means); i++ {
    if means[i] > 0.0 && dispersions[i] > dispersionMin {
      x = append(x, 1.0/means[i])
      y = append(y, dispersions[i])
    }
  }
  if len(x) < 2 {
    return 0.0, 0.1
  }
  a0, a1 := stat.LinearRegression(x, y, nil, false)
  if a0 < dispersionMin {
    a0 = dispersionMin
  }
  if a1 < 0.0 {
    a1 = 0.0
  }
  return a1, a0
}

/* -------------------------------------------------------------------------- */

// Estimate one dispersion per gene: a gene-wise method-of-moments
// estimate on normalized counts, shrunk in log-space toward a fitted
// a1/mean + a0 trend. The result does not depend on the number of
// threads.
func EstimateDispersions(counts [][]int, sizeFactors []float64, threads int) ([]float64, []float64, error) {
  if threads < 1 {
    threads = 1
  }
  pool := New(threads, 100*threads)

  means       := make([]float64, len(counts))
  dispersions := make([]float64, len(counts))

  jobGroup := pool.NewJobGroup()
  if err := pool.AddRangeJob(0, len(counts), jobGroup, func(i int, pool ThreadPool, erf func() error) error {
    means[i], dispersions[i] = genewiseDispersion(counts[i], sizeFactors)
    return nil
  }); err != nil {
    return nil, nil, err
  }
  if err := pool.Wait(jobGroup); err != nil {
    return nil, nil, err
  }
  a1, a0 := dispersionTrend(means, dispersions)

  for i := 0; i < len(counts); i++ {
    if means[i] <= 0.0 {
      dispersions[i] = dispersionMin
      continue
    }
    trend := a1/means[i] + a0
    logD  := dispersionShrinkWeight*math.Log(dispersions[i]) +
        (1.0-dispersionShrinkWeight)*math.Log(trend)
    dispersions[i] = math.Exp(logD)
    if dispersions[i] < dispersionMin {
      dispersions[i] = dispersionMin
    }
    if dispersions[i] > dispersionMax {
      dispersions[i] = dispersionMax
    }
  }
  return means, dispersions, nil
}
