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

func TestQuantTable1(t *testing.T) {

  table := "" +
    "Name\tLength\tEffectiveLength\tTPM\tNumReads\n" +
    "tx1\t1500\t1320.000\t10.5\t250.000\n" +
    "tx2\t800\t620.000\t0.0\t0.000\n"

  quant := QuantTable{}
  if err := quant.ReadTable(strings.NewReader(table)); err != nil {
    t.Error(err)
  }
  if quant.Rows() != 2 {
    t.Error("TestQuantTable1 failed!")
  }
  if quant.Names[0] != "tx1" || quant.Length[0] != 1500 || quant.NumReads[0] != 250.0 {
    t.Error("TestQuantTable1 failed!")
  }
  // a missing header is an error
  if err := quant.ReadTable(strings.NewReader("tx1\t1500\t1320.0\t10.5\t250.0\n")); err == nil {
    t.Error("TestQuantTable1 failed!")
  }
}

func TestQuantAggregate1(t *testing.T) {

  tx2gene := map[string]string{
    "tx1": "geneA",
    "tx2": "geneA",
    "tx3": "geneB"}

  quant1 := QuantTable{
    Names:           []string {"tx1", "tx2", "tx3", "tx4"},
    Length:          []int    {1000, 1000, 1000, 1000},
    EffectiveLength: []float64{800, 800, 800, 800},
    Tpm:             []float64{1, 1, 1, 1},
    NumReads:        []float64{100.4, 50.2, 30.0, 7.0}}
  quant2 := QuantTable{
    Names:           []string {"tx1", "tx3"},
    Length:          []int    {1000, 1000},
    EffectiveLength: []float64{800, 800},
    Tpm:             []float64{1, 1},
    NumReads:        []float64{10.0, 20.6}}

  counts, err := CountMatrixFromQuant(
    []string{"s1", "s2"}, []QuantTable{quant1, quant2}, tx2gene)
  if err != nil {
    t.Error(err)
  }
  if counts.Length() != 2 || counts.Samples() != 2 {
    t.Error("TestQuantAggregate1 failed!")
  }
  // estimated counts are summed per gene and rounded; tx4 has no
  // gene mapping and is skipped
  if row, ok := counts.Row("geneA"); !ok || row[0] != 151 || row[1] != 10 {
    t.Error("TestQuantAggregate1 failed!")
  }
  if row, ok := counts.Row("geneB"); !ok || row[0] != 30 || row[1] != 21 {
    t.Error("TestQuantAggregate1 failed!")
  }
}
