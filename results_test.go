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

//import "fmt"
import "bytes"
import "math"
import "strings"
import "testing"

/* -------------------------------------------------------------------------- */

func testContrastResult() ContrastResult {
  r := ContrastResult{}
  r.Condition      = "treatment"
  r.Reference      = "control"
  r.GeneIds        = []string {"gene1", "gene2", "gene3", "gene4", "gene5", "gene6"}
  r.BaseMean       = []float64{100, 200, 300, 400, 500, 600}
  r.Log2FoldChange = []float64{ 1.5, -2.0,  1.5,  0.5,  3.0, math.NaN()}
  r.LfcSE          = []float64{ 0.1,  0.1,  0.1,  0.1,  0.1, math.NaN()}
  r.Pvalue         = []float64{1e-4, 1e-5, 1e-4, 1e-3, 1e-8, math.NaN()}
  r.Padj           = []float64{1e-3, 1e-4, 1e-3, 1e-2, 1e-7, math.NaN()}
  return r
}

/* -------------------------------------------------------------------------- */

func TestResultsRank1(t *testing.T) {

  result := testContrastResult()
  ranked := result.Rank(1.0, 0.05)

  // gene4 fails the fold change threshold, gene6 has no fit
  if ranked.Length() != 4 {
    t.Error("TestResultsRank1 failed!")
  }
  // descending by log2 fold change, ties in original row order
  expected := []string{"gene5", "gene1", "gene3", "gene2"}
  for i := 0; i < ranked.Length(); i++ {
    if ranked.GeneIds[i] != expected[i] {
      t.Error("TestResultsRank1 failed!")
    }
  }
  for i := 1; i < ranked.Length(); i++ {
    if ranked.Log2FoldChange[i-1] < ranked.Log2FoldChange[i] {
      t.Error("TestResultsRank1 failed!")
    }
  }
  // the output is a permutation of the thresholded input
  m := map[string]bool{}
  for i := 0; i < ranked.Length(); i++ {
    m[ranked.GeneIds[i]] = true
  }
  for _, id := range []string{"gene1", "gene2", "gene3", "gene5"} {
    if !m[id] {
      t.Error("TestResultsRank1 failed!")
    }
  }
}

func TestResultsRank2(t *testing.T) {

  result := testContrastResult()

  // thresholds are honored
  if result.Rank(10.0, 0.05).Length() != 0 {
    t.Error("TestResultsRank2 failed!")
  }
  if result.Rank(1.0, 1e-6).Length() != 1 {
    t.Error("TestResultsRank2 failed!")
  }
}

func TestResultsTable1(t *testing.T) {

  result := testContrastResult()

  var buffer bytes.Buffer
  if err := result.WriteTable(&buffer); err != nil {
    t.Error(err)
  }
  r := ContrastResult{}
  if err := r.ReadTable(strings.NewReader(buffer.String())); err != nil {
    t.Error(err)
  }
  if r.Length() != result.Length() {
    t.Error("TestResultsTable1 failed!")
  }
  if r.GeneIds[4] != "gene5" || math.Abs(r.Log2FoldChange[4] - 3.0) > 1e-6 {
    t.Error("TestResultsTable1 failed!")
  }
  if !math.IsNaN(r.Log2FoldChange[5]) {
    t.Error("TestResultsTable1 failed!")
  }
}

func TestResultsAnnotated1(t *testing.T) {

  result := testContrastResult()

  // gene2 has no annotation record and is dropped from the output
  annotation := NewAnnotation(
    []string{"gene1", "gene3", "gene4", "gene5", "gene6"},
    []string{"ABC1", "DEF2", "GHI3", "JKL4", "MNO5"},
    []string{"alpha", "beta", "gamma", "delta", "epsilon"})

  var buffer bytes.Buffer
  if err := result.WriteAnnotatedTable(&buffer, annotation); err != nil {
    t.Error(err)
  }
  lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
  // header plus five annotated genes
  if len(lines) != 6 {
    t.Error("TestResultsAnnotated1 failed!")
  }
  for _, line := range lines[1:] {
    if strings.HasPrefix(line, "gene2") {
      t.Error("TestResultsAnnotated1 failed!")
    }
  }
  // the in-memory result still contains the gene
  if result.GeneIds[1] != "gene2" {
    t.Error("TestResultsAnnotated1 failed!")
  }
}
