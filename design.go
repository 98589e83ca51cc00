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

import "gonum.org/v1/gonum/mat"

/* -------------------------------------------------------------------------- */

// Design matrix for the model `count ~ batch + condition' with
// treatment coding. The reference condition and the first batch level
// are absorbed into the intercept. The reference level is fixed at
// construction time, before any model is fitted.
type DesignMatrix struct {
  X         *mat.Dense
  ColNames  []string
  Reference string
  // column of the coefficient measuring condition vs reference
  conditionCol map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewDesignMatrix(samples SampleInfo, reference string) (DesignMatrix, error) {
  if err := samples.CheckReference(reference); err != nil {
    return DesignMatrix{}, err
  }
  // condition levels with the reference first
  conditions := []string{reference}
  for _, c := range samples.Conditions() {
    if c != reference {
      conditions = append(conditions, c)
    }
  }
  batches := samples.Batches()

  n := samples.Length()
  p := 1 + (len(batches) - 1) + (len(conditions) - 1)
  if n < p {
    return DesignMatrix{}, fmt.Errorf("design matrix has more coefficients (%d) than samples (%d)", p, n)
  }
  colNames     := []string{"intercept"}
  batchCol     := map[string]int{}
  conditionCol := map[string]int{}
  for _, b := range batches[1:] {
    batchCol[b] = len(colNames)
    colNames    = append(colNames, fmt.Sprintf("batch_%s", b))
  }
  for _, c := range conditions[1:] {
    conditionCol[c] = len(colNames)
    colNames        = append(colNames, fmt.Sprintf("condition_%s_vs_%s", c, reference))
  }
  x := mat.NewDense(n, p, nil)
  for i := 0; i < n; i++ {
    x.Set(i, 0, 1.0)
    if j, ok := batchCol[samples.Batch[i]]; ok {
      x.Set(i, j, 1.0)
    }
    if j, ok := conditionCol[samples.Condition[i]]; ok {
      x.Set(i, j, 1.0)
    }
  }
  design := DesignMatrix{x, colNames, reference, conditionCol}
  if err := design.checkRank(); err != nil {
    return DesignMatrix{}, err
  }
  return design, nil
}

/* -------------------------------------------------------------------------- */

// Returns the number of coefficients.
func (obj DesignMatrix) Coefficients() int {
  _, p := obj.X.Dims()
  return p
}

// Non-reference conditions in design column order.
func (obj DesignMatrix) Contrasts() []string {
  r := []string{}
  for j := 0; j < len(obj.ColNames); j++ {
    for c, k := range obj.conditionCol {
      if k == j {
        r = append(r, c)
      }
    }
  }
  return r
}

func (obj DesignMatrix) ConditionColumn(condition string) (int, error) {
  if condition == obj.Reference {
    return -1, fmt.Errorf("`%s' is the reference condition", condition)
  }
  j, ok := obj.conditionCol[condition]
  if !ok {
    return -1, fmt.Errorf("condition `%s' not found in design", condition)
  }
  return j, nil
}

/* -------------------------------------------------------------------------- */

func (obj DesignMatrix) checkRank() error {
  _, p := obj.X.Dims()
  svd  := mat.SVD{}
  if ok := svd.Factorize(obj.X, mat.SVDThin); !ok {
    return fmt.Errorf("design matrix factorization failed")
  }
  values := svd.Values(nil)
  if values[p-1] < 1e-10*values[0] {
    return fmt.Errorf("design matrix is not full rank; batch and condition are confounded")
  }
  return nil
}
