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

import "bytes"
import "bufio"
import "fmt"

/* -------------------------------------------------------------------------- */

func (obj CountMatrix) PrintPretty(n int) string {
  var buffer bytes.Buffer
  writer := bufio.NewWriter(&buffer)

  if n > obj.Length() || n < 0 {
    n = obj.Length()
  }
  // determine column widths
  width := 0
  for i := 0; i < n; i++ {
    if len(obj.GeneIds[i]) > width {
      width = len(obj.GeneIds[i])
    }
  }
  widths := make([]int, obj.Samples())
  for j := 0; j < obj.Samples(); j++ {
    widths[j] = len(obj.SampleIds[j])
    for i := 0; i < n; i++ {
      if l := len(fmt.Sprintf("%d", obj.Counts[i][j])); l > widths[j] {
        widths[j] = l
      }
    }
  }
  fmt.Fprintf(writer, "%*s", width, "")
  for j := 0; j < obj.Samples(); j++ {
    fmt.Fprintf(writer, " %*s", widths[j], obj.SampleIds[j])
  }
  fmt.Fprintf(writer, "\n")
  for i := 0; i < n; i++ {
    fmt.Fprintf(writer, "%*s", width, obj.GeneIds[i])
    for j := 0; j < obj.Samples(); j++ {
      fmt.Fprintf(writer, " %*d", widths[j], obj.Counts[i][j])
    }
    fmt.Fprintf(writer, "\n")
  }
  if n < obj.Length() {
    fmt.Fprintf(writer, "%*s\n", width, "...")
  }
  writer.Flush()

  return buffer.String()
}

func (obj CountMatrix) String() string {
  return obj.PrintPretty(10)
}
