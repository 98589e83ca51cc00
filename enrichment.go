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
import "io"
import "math"
import "math/rand"
import "sort"
import "sync/atomic"

import . "github.com/pbenner/threadpool"

import "github.com/pbenner/dexpress/lib/progress"

/* -------------------------------------------------------------------------- */

type EnrichmentOptions struct {
  MinSize      int
  MaxSize      int
  Permutations int
  Seed         int64
  // exponent on the gene scores in the running sum
  Weight       float64
  Threads      int
  Verbose      int
}

func DefaultEnrichmentOptions() EnrichmentOptions {
  options := EnrichmentOptions{}
  options.MinSize      = 15
  options.MaxSize      = 500
  options.Permutations = 1000
  options.Seed         = 1
  options.Weight       = 1.0
  options.Threads      = 1
  options.Verbose      = 0
  return options
}

/* -------------------------------------------------------------------------- */

// Per-set enrichment statistics, ordered by ascending p-value within
// the positive-direction sets followed by the negative-direction
// sets. Adjusted p-values are computed within each direction.
type EnrichmentResult struct {
  SetNames []string
  Sizes    []int
  Es       []float64
  Nes      []float64
  Pvalue   []float64
  Padj     []float64
}

// Returns the number of scored gene sets.
func (obj EnrichmentResult) Length() int {
  return len(obj.SetNames)
}

/* -------------------------------------------------------------------------- */

// Weighted Kolmogorov-Smirnov running sum over the ranked list. The
// hits slice marks set members by rank position.
func enrichmentScore(scores []float64, hits []bool, nhits int, weight float64) float64 {
  n := len(scores)
  if nhits == 0 || nhits == n {
    return 0.0
  }
  sumW := 0.0
  for i := 0; i < n; i++ {
    if hits[i] {
      sumW += math.Pow(math.Abs(scores[i]), weight)
    }
  }
  if sumW == 0.0 {
    return 0.0
  }
  es      := 0.0
  running := 0.0
  miss    := 1.0/float64(n-nhits)
  for i := 0; i < n; i++ {
    if hits[i] {
      running += math.Pow(math.Abs(scores[i]), weight)/sumW
    } else {
      running -= miss
    }
    if math.Abs(running) > math.Abs(es) {
      es = running
    }
  }
  return es
}

/* -------------------------------------------------------------------------- */

// Preranked gene set enrichment. The gene list is sorted by
// descending score, each set is reduced to its members present in the
// list, and the null distribution is obtained from gene label
// permutations. Results are deterministic for a fixed seed at any
// thread count.
func RunGSEA(geneIds []string, scores []float64, collection GeneSetCollection, options EnrichmentOptions) (EnrichmentResult, error) {
  if len(geneIds) != len(scores) {
    return EnrichmentResult{}, fmt.Errorf("RunGSEA(): gene ids and scores differ in length")
  }
  if len(geneIds) == 0 {
    return EnrichmentResult{}, fmt.Errorf("RunGSEA(): empty gene list")
  }
  n := len(geneIds)
  // rank genes by descending score, stable on ties
  order := identityIndices(n)
  sort.SliceStable(order, func(i, j int) bool {
    return scores[order[i]] > scores[order[j]]
  })
  rankedScores := make([]float64, n)
  rankOf       := map[string]int{}
  universe     := map[string]bool{}
  for k, i := range order {
    rankedScores[k]      = scores[i]
    rankOf[geneIds[i]]   = k
    universe[geneIds[i]] = true
  }
  // sets scored against the ranked universe only; sets entirely
  // absent from the list are removed here
  collection = collection.FilterSize(universe, options.MinSize, options.MaxSize)

  nsets := collection.Length()
  // member positions in the ranked list, per set
  positions := make([][]int, nsets)
  es        := make([]float64, nsets)
  hits      := make([]bool, n)
  for s := 0; s < nsets; s++ {
    for _, gene := range collection.Sets[s] {
      if k, ok := rankOf[gene]; ok {
        positions[s] = append(positions[s], k)
      }
    }
    for i := range hits {
      hits[i] = false
    }
    for _, k := range positions[s] {
      hits[k] = true
    }
    es[s] = enrichmentScore(rankedScores, hits, len(positions[s]), options.Weight)
  }
  // null distribution from gene label permutations
  threads := options.Threads
  if threads < 1 {
    threads = 1
  }
  permEs := make([][]float64, nsets)
  for s := 0; s < nsets; s++ {
    permEs[s] = make([]float64, options.Permutations)
  }
  pool     := New(threads, 100*threads)
  jobGroup := pool.NewJobGroup()
  pg       := progress.New(options.Permutations, 20)
  counter  := int64(0)

  if err := pool.AddRangeJob(0, options.Permutations, jobGroup, func(k int, pool ThreadPool, erf func() error) error {
    // each permutation runs on its own source, so results do not
    // depend on scheduling
    rng  := rand.New(rand.NewSource(options.Seed + int64(k)))
    perm := rng.Perm(n)
    hits := make([]bool, n)
    for s := 0; s < nsets; s++ {
      for i := range hits {
        hits[i] = false
      }
      for _, pos := range positions[s] {
        hits[perm[pos]] = true
      }
      permEs[s][k] = enrichmentScore(rankedScores, hits, len(positions[s]), options.Weight)
    }
    if options.Verbose > 0 {
      pg.PrintStderr(int(atomic.AddInt64(&counter, 1)))
    }
    return nil
  }); err != nil {
    return EnrichmentResult{}, err
  }
  if err := pool.Wait(jobGroup); err != nil {
    return EnrichmentResult{}, err
  }
  // normalized enrichment scores and empirical p-values within the
  // matching direction
  nes    := make([]float64, nsets)
  pvalue := make([]float64, nsets)
  for s := 0; s < nsets; s++ {
    sum   := 0.0
    count := 0
    ge    := 0
    for _, e := range permEs[s] {
      if (es[s] >= 0.0) == (e >= 0.0) {
        sum   += math.Abs(e)
        count += 1
        if math.Abs(e) >= math.Abs(es[s]) {
          ge += 1
        }
      }
    }
    if count > 0 && sum > 0.0 {
      nes[s] = es[s]/(sum/float64(count))
    } else {
      nes[s] = 0.0
    }
    pvalue[s] = float64(1+ge)/float64(1+count)
  }
  // adjust within each direction and order by ascending p-value,
  // positive direction first
  posIndices := []int{}
  negIndices := []int{}
  for s := 0; s < nsets; s++ {
    if es[s] >= 0.0 {
      posIndices = append(posIndices, s)
    } else {
      negIndices = append(negIndices, s)
    }
  }
  padj := make([]float64, nsets)
  for _, indices := range [][]int{posIndices, negIndices} {
    p := make([]float64, len(indices))
    for k, s := range indices {
      p[k] = pvalue[s]
    }
    for k, v := range BenjaminiHochberg(p) {
      padj[indices[k]] = v
    }
    sort.SliceStable(indices, func(i, j int) bool {
      return pvalue[indices[i]] < pvalue[indices[j]]
    })
  }
  result := EnrichmentResult{}
  for _, indices := range [][]int{posIndices, negIndices} {
    for _, s := range indices {
      result.SetNames = append(result.SetNames, collection.Names[s])
      result.Sizes    = append(result.Sizes,    len(positions[s]))
      result.Es       = append(result.Es,       es[s])
      result.Nes      = append(result.Nes,      nes[s])
      result.Pvalue   = append(result.Pvalue,   pvalue[s])
      result.Padj     = append(result.Padj,     padj[s])
    }
  }
  return result, nil
}

/* i/o
 * -------------------------------------------------------------------------- */

func (obj EnrichmentResult) WriteTable(writer io.Writer) error {
  if _, err := fmt.Fprintf(writer, "gene_set\tsize\tes\tnes\tpvalue\tpadj\n"); err != nil {
    return err
  }
  for i := 0; i < obj.Length(); i++ {
    if _, err := fmt.Fprintf(writer, "%s\t%d\t%f\t%f\t%e\t%e\n",
        obj.SetNames[i], obj.Sizes[i], obj.Es[i], obj.Nes[i],
        obj.Pvalue[i], obj.Padj[i]); err != nil {
      return err
    }
  }
  return nil
}
