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
import "sort"

import fet "github.com/glycerine/golang-fisher-exact"

/* -------------------------------------------------------------------------- */

// Over-representation statistics, one row per gene set, ordered by
// ascending p-value.
type ORAResult struct {
  SetNames []string
  Sizes    []int
  Overlap  []int
  Pvalue   []float64
  Padj     []float64
}

// Returns the number of tested gene sets.
func (obj ORAResult) Length() int {
  return len(obj.SetNames)
}

/* -------------------------------------------------------------------------- */

// Test each gene set for over-representation among the selected genes
// with Fisher's exact test (two-sided) on the 2x2 table of set
// membership against selection, within the given gene universe.
func RunORA(selected, universe []string, collection GeneSetCollection, minSize, maxSize int) (ORAResult, error) {
  u := map[string]bool{}
  for _, gene := range universe {
    u[gene] = true
  }
  s := map[string]bool{}
  for _, gene := range selected {
    if !u[gene] {
      return ORAResult{}, fmt.Errorf("RunORA(): selected gene `%s' is not in the universe", gene)
    }
    s[gene] = true
  }
  collection = collection.FilterSize(u, minSize, maxSize)

  names   := []string{}
  sizes   := []int{}
  overlap := []int{}
  pvalue  := []float64{}

  for i := 0; i < collection.Length(); i++ {
    inSet := map[string]bool{}
    for _, gene := range collection.Sets[i] {
      if u[gene] {
        inSet[gene] = true
      }
    }
    a := 0 // selected and in set
    for gene := range s {
      if inSet[gene] {
        a++
      }
    }
    b := len(inSet)    - a  // in set, not selected
    c := len(s)        - a  // selected, not in set
    d := len(u) - a - b - c
    _, _, _, twop := fet.FisherExactTest(a, b, c, d)

    names   = append(names,   collection.Names[i])
    sizes   = append(sizes,   len(inSet))
    overlap = append(overlap, a)
    pvalue  = append(pvalue,  twop)
  }
  padj    := BenjaminiHochberg(pvalue)
  indices := identityIndices(len(names))
  sort.SliceStable(indices, func(i, j int) bool {
    return pvalue[indices[i]] < pvalue[indices[j]]
  })
  result := ORAResult{}
  for _, i := range indices {
    result.SetNames = append(result.SetNames, names[i])
    result.Sizes    = append(result.Sizes,    sizes[i])
    result.Overlap  = append(result.Overlap,  overlap[i])
    result.Pvalue   = append(result.Pvalue,   pvalue[i])
    result.Padj     = append(result.Padj,     padj[i])
  }
  return result, nil
}

/* i/o
 * -------------------------------------------------------------------------- */

func (obj ORAResult) WriteTable(writer io.Writer) error {
  if _, err := fmt.Fprintf(writer, "gene_set\tsize\toverlap\tpvalue\tpadj\n"); err != nil {
    return err
  }
  for i := 0; i < obj.Length(); i++ {
    if _, err := fmt.Fprintf(writer, "%s\t%d\t%d\t%e\t%e\n",
        obj.SetNames[i], obj.Sizes[i], obj.Overlap[i],
        obj.Pvalue[i], obj.Padj[i]); err != nil {
      return err
    }
  }
  return nil
}
