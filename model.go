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

import . "github.com/pbenner/threadpool"

import "gonum.org/v1/gonum/stat/distuv"

/* -------------------------------------------------------------------------- */

// A count matrix together with aligned sample metadata and the design
// matrix of the model `count ~ batch + condition'. The reference
// condition is fixed here, before fitting.
type DataSet struct {
  Counts  CountMatrix
  Samples SampleInfo
  Design  DesignMatrix
}

// Result of fitting one joint model across all samples and
// conditions. Size factors, dispersions, and batch coefficients are
// shared by all contrasts; extracting a contrast is a read-only query
// that never refits.
type Model struct {
  DataSet
  SizeFactors []float64
  Dispersions []float64
  BaseMean    []float64
  beta        [][]float64
  cov         [][]float64
  fitOk       []bool
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewDataSet(counts CountMatrix, samples SampleInfo, reference string) (DataSet, error) {
  // reorder metadata to match the matrix columns; every column must
  // map to exactly one record
  aligned, err := samples.Align(counts.SampleIds)
  if err != nil {
    return DataSet{}, err
  }
  design, err := NewDesignMatrix(aligned, reference)
  if err != nil {
    return DataSet{}, err
  }
  return DataSet{counts, aligned, design}, nil
}

/* -------------------------------------------------------------------------- */

// Fit the joint model: size factors, dispersions, and one negative
// binomial GLM per gene. Genes where the fit fails are kept with NaN
// statistics. Deterministic for fixed input at any thread count.
func (obj DataSet) Fit(threads int) (Model, error) {
  if threads < 1 {
    threads = 1
  }
  sizeFactors, err := EstimateSizeFactors(obj.Counts.Counts)
  if err != nil {
    return Model{}, err
  }
  baseMean, dispersions, err := EstimateDispersions(obj.Counts.Counts, sizeFactors, threads)
  if err != nil {
    return Model{}, err
  }
  offset := make([]float64, len(sizeFactors))
  for j := 0; j < len(sizeFactors); j++ {
    offset[j] = math.Log(sizeFactors[j])
  }
  n := obj.Counts.Length()

  beta  := make([][]float64, n)
  cov   := make([][]float64, n)
  fitOk := make([]bool,      n)

  pool     := New(threads, 100*threads)
  jobGroup := pool.NewJobGroup()

  if err := pool.AddRangeJob(0, n, jobGroup, func(i int, pool ThreadPool, erf func() error) error {
    fit, err := fitNBGLM(obj.Counts.Counts[i], obj.Design.X, offset, dispersions[i])
    if err == nil && fit.converged {
      beta [i] = fit.beta
      cov  [i] = fit.cov
      fitOk[i] = true
    }
    return nil
  }); err != nil {
    return Model{}, err
  }
  if err := pool.Wait(jobGroup); err != nil {
    return Model{}, err
  }
  return Model{obj, sizeFactors, dispersions, baseMean, beta, cov, fitOk}, nil
}

/* -------------------------------------------------------------------------- */

// Non-reference conditions available for contrast extraction.
func (obj Model) Conditions() []string {
  return obj.Design.Contrasts()
}

// Extract the contrast of the given condition against the reference:
// per gene the log2 fold change, its standard error, the Wald
// p-value, and the Benjamini-Hochberg adjusted p-value across all
// genes of this contrast.
func (obj Model) Contrast(condition string) (ContrastResult, error) {
  j, err := obj.Design.ConditionColumn(condition)
  if err != nil {
    return ContrastResult{}, err
  }
  p := obj.Design.Coefficients()
  n := obj.Counts.Length()

  lfc    := make([]float64, n)
  lfcSE  := make([]float64, n)
  pvalue := make([]float64, n)

  for i := 0; i < n; i++ {
    if !obj.fitOk[i] {
      lfc   [i] = math.NaN()
      lfcSE [i] = math.NaN()
      pvalue[i] = math.NaN()
      continue
    }
    b  := obj.beta[i][j]
    se := math.Sqrt(obj.cov[i][j*p+j])
    // natural log to log2
    lfc  [i] = b /math.Ln2
    lfcSE[i] = se/math.Ln2
    if se > 0.0 {
      wald := math.Abs(b/se)
      pvalue[i] = 2.0*distuv.UnitNormal.CDF(-wald)
    } else {
      pvalue[i] = math.NaN()
    }
  }
  geneIds  := make([]string,  n)
  baseMean := make([]float64, n)
  copy(geneIds,  obj.Counts.GeneIds)
  copy(baseMean, obj.BaseMean)

  result := ContrastResult{}
  result.Condition      = condition
  result.Reference      = obj.Design.Reference
  result.GeneIds        = geneIds
  result.BaseMean       = baseMean
  result.Log2FoldChange = lfc
  result.LfcSE          = lfcSE
  result.Pvalue         = pvalue
  result.Padj           = BenjaminiHochberg(pvalue)
  return result, nil
}

// Extract all contrasts in design column order.
func (obj Model) Contrasts() ([]ContrastResult, error) {
  results := []ContrastResult{}
  for _, condition := range obj.Conditions() {
    r, err := obj.Contrast(condition)
    if err != nil {
      return nil, fmt.Errorf("extracting contrast `%s': %v", condition, err)
    }
    results = append(results, r)
  }
  return results, nil
}
