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
import "strings"
import "testing"

/* -------------------------------------------------------------------------- */

func TestCountsFilter1(t *testing.T) {

  counts := NewCountMatrix(
    []string{"geneA", "geneB", "geneC"},
    []string{"DMSO", "treatment"},
    [][]int{
      {12, 48},
      { 3,  2},
      {50, 49}})

  filtered := counts.FilterLowCounts(10, 2)

  if filtered.Length() != 2 {
    t.Error("TestCountsFilter1 failed!")
  }
  if filtered.GeneIds[0] != "geneA" || filtered.GeneIds[1] != "geneC" {
    t.Error("TestCountsFilter1 failed!")
  }
  if _, ok := filtered.Row("geneB"); ok {
    t.Error("TestCountsFilter1 failed!")
  }
}

func TestCountsFilter2(t *testing.T) {

  counts := NewCountMatrix(
    []string{"gene1", "gene2", "gene3", "gene4"},
    []string{"s1", "s2", "s3"},
    [][]int{
      {10, 10,  0},
      { 9,  9,  9},
      { 0,  0,  0},
      {100, 0,  0}})

  filtered := counts.FilterLowCounts(10, 2)

  // output is never larger than the input
  if filtered.Length() > counts.Length() {
    t.Error("TestCountsFilter2 failed!")
  }
  // every retained gene satisfies the predicate
  for i := 0; i < filtered.Length(); i++ {
    n := 0
    for j := 0; j < filtered.Samples(); j++ {
      if filtered.Counts[i][j] >= 10 {
        n++
      }
    }
    if n < 2 {
      t.Error("TestCountsFilter2 failed!")
    }
  }
  if filtered.Length() != 1 || filtered.GeneIds[0] != "gene1" {
    t.Error("TestCountsFilter2 failed!")
  }
  // an empty result is valid
  if counts.FilterLowCounts(1000, 1).Length() != 0 {
    t.Error("TestCountsFilter2 failed!")
  }
}

func TestCountsTable1(t *testing.T) {

  table := "" +
    "\ts1\ts2\n" +
    "gene1\t1\t2\n"  +
    "gene2\t30\t40\n"

  counts := CountMatrix{}
  if err := counts.ReadTable(strings.NewReader(table)); err != nil {
    t.Error(err)
  }
  if counts.Length() != 2 || counts.Samples() != 2 {
    t.Error("TestCountsTable1 failed!")
  }
  if counts.Counts[1][1] != 40 {
    t.Error("TestCountsTable1 failed!")
  }
}

func TestCountsTable2(t *testing.T) {

  // header with a name for the gene id column
  table := "" +
    "gene_id\ts1\ts2\n" +
    "gene1\t1\t2\n"

  counts := CountMatrix{}
  if err := counts.ReadTable(strings.NewReader(table)); err != nil {
    t.Error(err)
  }
  if counts.Samples() != 2 || counts.SampleIds[0] != "s1" {
    t.Error("TestCountsTable2 failed!")
  }
  // negative counts are rejected
  if err := counts.ReadTable(strings.NewReader("s1\ngene1\t-1\n")); err == nil {
    t.Error("TestCountsTable2 failed!")
  }
}

func TestCountsSubsetSamples1(t *testing.T) {

  counts := NewCountMatrix(
    []string{"gene1", "gene2"},
    []string{"s1", "s2", "s3"},
    [][]int{
      {1, 2, 3},
      {4, 5, 6}})

  r, err := counts.SubsetSamples([]string{"s3", "s1"})
  if err != nil {
    t.Error(err)
  }
  if r.Counts[0][0] != 3 || r.Counts[0][1] != 1 {
    t.Error("TestCountsSubsetSamples1 failed!")
  }
  if _, err := counts.SubsetSamples([]string{"s4"}); err == nil {
    t.Error("TestCountsSubsetSamples1 failed!")
  }
}
