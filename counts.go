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

/* -------------------------------------------------------------------------- */

// Container for raw read counts. Rows correspond to genes and columns
// to samples. Gene and sample identifiers must be unique.
type CountMatrix struct {
  GeneIds   []string
  SampleIds []string
  Counts    [][]int
  index     map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewCountMatrix(geneIds, sampleIds []string, counts [][]int) CountMatrix {
  if len(geneIds) != len(counts) {
    panic("NewCountMatrix(): invalid number of rows")
  }
  index := map[string]int{}
  for i := 0; i < len(geneIds); i++ {
    if len(counts[i]) != len(sampleIds) {
      panic("NewCountMatrix(): invalid number of columns")
    }
    if _, ok := index[geneIds[i]]; ok {
      panic("NewCountMatrix(): duplicate gene id")
    }
    for j := 0; j < len(counts[i]); j++ {
      if counts[i][j] < 0 {
        panic("NewCountMatrix(): negative count")
      }
    }
    index[geneIds[i]] = i
  }
  m := map[string]bool{}
  for j := 0; j < len(sampleIds); j++ {
    if m[sampleIds[j]] {
      panic("NewCountMatrix(): duplicate sample id")
    }
    m[sampleIds[j]] = true
  }
  return CountMatrix{geneIds, sampleIds, counts, index}
}

func EmptyCountMatrix(sampleIds []string) CountMatrix {
  return NewCountMatrix([]string{}, sampleIds, [][]int{})
}

// Deep copy the count matrix.
func (obj CountMatrix) Clone() CountMatrix {
  geneIds   := make([]string, len(obj.GeneIds))
  sampleIds := make([]string, len(obj.SampleIds))
  counts    := make([][]int,  len(obj.Counts))
  copy(geneIds,   obj.GeneIds)
  copy(sampleIds, obj.SampleIds)
  for i := 0; i < len(obj.Counts); i++ {
    counts[i] = make([]int, len(obj.Counts[i]))
    copy(counts[i], obj.Counts[i])
  }
  return NewCountMatrix(geneIds, sampleIds, counts)
}

/* -------------------------------------------------------------------------- */

// Returns the number of genes.
func (obj CountMatrix) Length() int {
  return len(obj.GeneIds)
}

// Returns the number of samples.
func (obj CountMatrix) Samples() int {
  return len(obj.SampleIds)
}

func (obj CountMatrix) Row(geneId string) ([]int, bool) {
  if i, ok := obj.index[geneId]; ok {
    return obj.Counts[i], true
  }
  return nil, false
}

/* -------------------------------------------------------------------------- */

func (obj CountMatrix) Subset(indices []int) CountMatrix {
  geneIds := make([]string, len(indices))
  counts  := make([][]int,  len(indices))
  for k, i := range indices {
    if i < 0 || i >= obj.Length() {
      panic("Subset(): index out of range")
    }
    geneIds[k] = obj.GeneIds[i]
    counts [k] = obj.Counts [i]
  }
  return NewCountMatrix(geneIds, obj.SampleIds, counts)
}

func (obj CountMatrix) SubsetSamples(sampleIds []string) (CountMatrix, error) {
  j_map := map[string]int{}
  for j := 0; j < len(obj.SampleIds); j++ {
    j_map[obj.SampleIds[j]] = j
  }
  columns := make([]int, len(sampleIds))
  for k, id := range sampleIds {
    j, ok := j_map[id]
    if !ok {
      return CountMatrix{}, fmt.Errorf("SubsetSamples(): sample `%s' not found", id)
    }
    columns[k] = j
  }
  counts := make([][]int, obj.Length())
  for i := 0; i < obj.Length(); i++ {
    counts[i] = make([]int, len(columns))
    for k, j := range columns {
      counts[i][k] = obj.Counts[i][j]
    }
  }
  ids := make([]string, len(sampleIds))
  copy(ids, sampleIds)
  return NewCountMatrix(obj.GeneIds, ids, counts), nil
}

/* low-count filter
 * -------------------------------------------------------------------------- */

// Keep only genes with a count of at least minCount in at least
// minSamples samples. An empty result is valid.
func (obj CountMatrix) FilterLowCounts(minCount, minSamples int) CountMatrix {
  indices := []int{}
  for i := 0; i < obj.Length(); i++ {
    n := 0
    for j := 0; j < obj.Samples(); j++ {
      if obj.Counts[i][j] >= minCount {
        n++
      }
    }
    if n >= minSamples {
      indices = append(indices, i)
    }
  }
  return obj.Subset(indices)
}
