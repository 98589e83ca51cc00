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

import "gonum.org/v1/gonum/mat"

/* -------------------------------------------------------------------------- */

const glmMaxIterations = 100
const glmTolerance     = 1e-8
const glmRidge         = 1e-6

// bounds on the linear predictor to keep exp(eta) finite
const glmEtaMin = -30.0
const glmEtaMax =  30.0

/* -------------------------------------------------------------------------- */

type glmFit struct {
  beta      []float64
  // covariance matrix of the coefficients, row-major p x p
  cov       []float64
  converged bool
}

func (obj glmFit) standardError(j int) float64 {
  p := len(obj.beta)
  return math.Sqrt(obj.cov[j*p+j])
}

/* -------------------------------------------------------------------------- */

// Fit a negative binomial GLM with log link and fixed dispersion by
// iteratively reweighted least squares. The offset carries the log
// size factors, so coefficients are on the scale of normalized
// counts.
func fitNBGLM(counts []int, x *mat.Dense, offset []float64, dispersion float64) (glmFit, error) {
  n, p := x.Dims()
  if len(counts) != n || len(offset) != n {
    return glmFit{}, fmt.Errorf("fitNBGLM(): dimensions do not match")
  }
  beta := make([]float64, p)
  eta  := make([]float64, n)
  mu   := make([]float64, n)
  // initialize the intercept with the mean normalized count
  m := 0.0
  for i := 0; i < n; i++ {
    m += float64(counts[i])*math.Exp(-offset[i])
  }
  m /= float64(n)
  if m <= 0.0 {
    m = 1e-8
  }
  beta[0] = math.Log(m)

  xtwx := mat.NewDense(p, p, nil)
  xtwz := mat.NewVecDense(p, nil)

  converged := false
  for it := 0; it < glmMaxIterations; it++ {
    // linear predictor and mean
    for i := 0; i < n; i++ {
      eta[i] = offset[i]
      for j := 0; j < p; j++ {
        eta[i] += x.At(i, j)*beta[j]
      }
      if eta[i] < glmEtaMin {
        eta[i] = glmEtaMin
      }
      if eta[i] > glmEtaMax {
        eta[i] = glmEtaMax
      }
      mu[i] = math.Exp(eta[i])
    }
    // weighted normal equations
    for j := 0; j < p; j++ {
      for k := 0; k < p; k++ {
        xtwx.Set(j, k, 0.0)
      }
      xtwz.SetVec(j, 0.0)
    }
    for i := 0; i < n; i++ {
      w := mu[i]/(1.0 + dispersion*mu[i])
      z := (eta[i] - offset[i]) + (float64(counts[i]) - mu[i])/mu[i]
      for j := 0; j < p; j++ {
        xij := x.At(i, j)
        if xij == 0.0 {
          continue
        }
        for k := 0; k < p; k++ {
          xtwx.Set(j, k, xtwx.At(j, k) + w*xij*x.At(i, k))
        }
        xtwz.SetVec(j, xtwz.AtVec(j) + w*xij*z)
      }
    }
    for j := 0; j < p; j++ {
      xtwx.Set(j, j, xtwx.At(j, j) + glmRidge)
    }
    betaNew := mat.NewVecDense(p, nil)
    if err := betaNew.SolveVec(xtwx, xtwz); err != nil {
      return glmFit{}, fmt.Errorf("fitNBGLM(): normal equations are singular")
    }
    delta := 0.0
    for j := 0; j < p; j++ {
      if d := math.Abs(betaNew.AtVec(j) - beta[j]); d > delta {
        delta = d
      }
      beta[j] = betaNew.AtVec(j)
    }
    if delta < glmTolerance {
      converged = true
      break
    }
  }
  // covariance of the coefficients at the final weights
  covDense := mat.NewDense(p, p, nil)
  if err := covDense.Inverse(xtwx); err != nil {
    return glmFit{}, fmt.Errorf("fitNBGLM(): covariance matrix is singular")
  }
  cov := make([]float64, p*p)
  for j := 0; j < p; j++ {
    for k := 0; k < p; k++ {
      cov[j*p+k] = covDense.At(j, k)
    }
  }
  return glmFit{beta, cov, converged}, nil
}
