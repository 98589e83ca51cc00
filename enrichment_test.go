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
import "testing"

/* -------------------------------------------------------------------------- */

func testRankedList() ([]string, []float64) {
  n := 100
  geneIds := make([]string,  n)
  scores  := make([]float64, n)
  for i := 0; i < n; i++ {
    geneIds[i] = fmt.Sprintf("gene%03d", i)
    scores [i] = 5.0 - 10.0*float64(i)/float64(n-1)
  }
  return geneIds, scores
}

/* -------------------------------------------------------------------------- */

func TestEnrichment1(t *testing.T) {

  geneIds, scores := testRankedList()

  // topSet sits at the top of the ranking, absentSet has no member
  // in the ranked list
  topSet := []string{}
  for i := 0; i < 20; i++ {
    topSet = append(topSet, geneIds[i])
  }
  absentSet := []string{"foo1", "foo2", "foo3", "foo4", "foo5",
    "foo6", "foo7", "foo8", "foo9", "foo10",
    "foo11", "foo12", "foo13", "foo14", "foo15"}

  collection := NewGeneSetCollection(
    []string{"topSet", "absentSet"},
    []string{"-", "-"},
    [][]string{topSet, absentSet})

  options := DefaultEnrichmentOptions()
  options.MinSize      = 10
  options.Permutations = 200

  result, err := RunGSEA(geneIds, scores, collection, options)
  if err != nil {
    t.Error(err)
  }
  // the absent set yields no enrichment score
  if result.Length() != 1 {
    t.Error("TestEnrichment1 failed!")
  }
  if result.SetNames[0] != "topSet" || result.Sizes[0] != 20 {
    t.Error("TestEnrichment1 failed!")
  }
  if result.Es[0] < 0.5 || result.Nes[0] <= 0.0 {
    t.Error("TestEnrichment1 failed!")
  }
  if result.Pvalue[0] > 0.2 {
    t.Error("TestEnrichment1 failed!")
  }
}

func TestEnrichment2(t *testing.T) {

  // identical results at any thread count
  geneIds, scores := testRankedList()

  sets := [][]string{}
  names := []string{}
  descriptions := []string{}
  for k := 0; k < 4; k++ {
    set := []string{}
    for i := 0; i < 25; i++ {
      set = append(set, geneIds[(17*i+k*13) % len(geneIds)])
    }
    names        = append(names,        fmt.Sprintf("set%d", k))
    descriptions = append(descriptions, "-")
    sets         = append(sets,         set)
  }
  collection := NewGeneSetCollection(names, descriptions, sets)

  options := DefaultEnrichmentOptions()
  options.MinSize      = 10
  options.Permutations = 100

  options.Threads = 1
  result1, err := RunGSEA(geneIds, scores, collection, options)
  if err != nil {
    t.Error(err)
  }
  options.Threads = 4
  result4, err := RunGSEA(geneIds, scores, collection, options)
  if err != nil {
    t.Error(err)
  }
  if result1.Length() != result4.Length() {
    t.Error("TestEnrichment2 failed!")
  }
  for i := 0; i < result1.Length(); i++ {
    if result1.SetNames[i] != result4.SetNames[i] {
      t.Error("TestEnrichment2 failed!")
    }
    if result1.Es[i] != result4.Es[i] || result1.Pvalue[i] != result4.Pvalue[i] {
      t.Error("TestEnrichment2 failed!")
    }
  }
}

func TestEnrichmentOrder1(t *testing.T) {

  geneIds, scores := testRankedList()

  // one set at each end of the ranking
  topSet    := []string{}
  bottomSet := []string{}
  for i := 0; i < 20; i++ {
    topSet    = append(topSet,    geneIds[i])
    bottomSet = append(bottomSet, geneIds[len(geneIds)-1-i])
  }
  collection := NewGeneSetCollection(
    []string{"bottomSet", "topSet"},
    []string{"-", "-"},
    [][]string{bottomSet, topSet})

  options := DefaultEnrichmentOptions()
  options.MinSize      = 10
  options.Permutations = 200

  result, err := RunGSEA(geneIds, scores, collection, options)
  if err != nil {
    t.Error(err)
  }
  if result.Length() != 2 {
    t.Error("TestEnrichmentOrder1 failed!")
  }
  // positive direction first
  if result.SetNames[0] != "topSet" || result.SetNames[1] != "bottomSet" {
    t.Error("TestEnrichmentOrder1 failed!")
  }
  if result.Es[0] <= 0.0 || result.Es[1] >= 0.0 {
    t.Error("TestEnrichmentOrder1 failed!")
  }
}

/* -------------------------------------------------------------------------- */

func TestOra1(t *testing.T) {

  universe := []string{}
  for i := 0; i < 100; i++ {
    universe = append(universe, fmt.Sprintf("gene%03d", i))
  }
  // the selection overlaps strongly with pathwayA
  selected := universe[0:10]

  collection := NewGeneSetCollection(
    []string{"pathwayA", "pathwayB"},
    []string{"-", "-"},
    [][]string{
      append([]string{}, universe[0:15]...),
      append([]string{}, universe[50:80]...)})

  result, err := RunORA(selected, universe, collection, 5, 500)
  if err != nil {
    t.Error(err)
  }
  if result.Length() != 2 {
    t.Error("TestOra1 failed!")
  }
  // ordered by ascending p-value
  if result.SetNames[0] != "pathwayA" {
    t.Error("TestOra1 failed!")
  }
  if result.Pvalue[0] > result.Pvalue[1] {
    t.Error("TestOra1 failed!")
  }
  if result.Overlap[0] != 10 || result.Overlap[1] != 0 {
    t.Error("TestOra1 failed!")
  }
  if result.Pvalue[0] > 0.01 {
    t.Error("TestOra1 failed!")
  }
  // genes outside the universe are rejected
  if _, err := RunORA([]string{"foo"}, universe, collection, 5, 500); err == nil {
    t.Error("TestOra1 failed!")
  }
}
