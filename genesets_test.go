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

func TestGeneSets1(t *testing.T) {

  gmt := "" +
    "pathwayA\tsome description\tgene1\tgene2\tgene3\n" +
    "pathwayB\t-\tgene2\tgene4\tgene4\n" +
    "pathwayC\t-\tgene9\n"

  collection := GeneSetCollection{}
  if err := collection.ReadGMT(strings.NewReader(gmt)); err != nil {
    t.Error(err)
  }
  if collection.Length() != 3 {
    t.Error("TestGeneSets1 failed!")
  }
  if set, ok := collection.Get("pathwayA"); !ok || len(set) != 3 {
    t.Error("TestGeneSets1 failed!")
  }
  // duplicate members are dropped
  if set, _ := collection.Get("pathwayB"); len(set) != 2 {
    t.Error("TestGeneSets1 failed!")
  }
  if _, ok := collection.Get("pathwayD"); ok {
    t.Error("TestGeneSets1 failed!")
  }
  // lines with less than three fields are invalid
  if err := collection.ReadGMT(strings.NewReader("pathwayX\t-\n")); err == nil {
    t.Error("TestGeneSets1 failed!")
  }
}

func TestGeneSetsFilterSize1(t *testing.T) {

  collection := NewGeneSetCollection(
    []string{"pathwayA", "pathwayB", "pathwayC"},
    []string{"-", "-", "-"},
    [][]string{
      {"gene1", "gene2", "gene3"},
      {"gene1", "gene2", "gene8", "gene9"},
      {"gene8", "gene9"}})

  universe := map[string]bool{
    "gene1": true, "gene2": true, "gene3": true, "gene4": true}

  // pathwayC has no member in the universe and is dropped
  filtered := collection.FilterSize(universe, 2, 500)
  if filtered.Length() != 2 {
    t.Error("TestGeneSetsFilterSize1 failed!")
  }
  if _, ok := filtered.Get("pathwayC"); ok {
    t.Error("TestGeneSetsFilterSize1 failed!")
  }
  // only members within the universe count toward the bounds
  filtered = collection.FilterSize(universe, 3, 500)
  if filtered.Length() != 1 {
    t.Error("TestGeneSetsFilterSize1 failed!")
  }
  if _, ok := filtered.Get("pathwayA"); !ok {
    t.Error("TestGeneSetsFilterSize1 failed!")
  }
}
