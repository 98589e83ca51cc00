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
import "math"
import "testing"

/* -------------------------------------------------------------------------- */

func TestBenjaminiHochberg1(t *testing.T) {

  p := []float64{0.005, 0.009, 0.05, 0.5}
  r := []float64{0.018, 0.018, 0.05*4.0/3.0, 0.5}

  padj := BenjaminiHochberg(p)

  for i := 0; i < len(p); i++ {
    if math.Abs(padj[i] - r[i]) > 1e-12 {
      t.Error("TestBenjaminiHochberg1 failed!")
    }
  }
}

func TestBenjaminiHochberg2(t *testing.T) {

  // NaN entries are ignored and preserved
  p := []float64{0.5, math.NaN(), 0.01}

  padj := BenjaminiHochberg(p)

  if !math.IsNaN(padj[1]) {
    t.Error("TestBenjaminiHochberg2 failed!")
  }
  if math.Abs(padj[2] - 0.02) > 1e-12 {
    t.Error("TestBenjaminiHochberg2 failed!")
  }
  if math.Abs(padj[0] - 0.5) > 1e-12 {
    t.Error("TestBenjaminiHochberg2 failed!")
  }
  // adjusted values are clipped at one
  padj = BenjaminiHochberg([]float64{0.6, 1.0})
  if padj[0] != 1.0 || padj[1] != 1.0 {
    t.Error("TestBenjaminiHochberg2 failed!")
  }
}
