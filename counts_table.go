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

import "bufio"
import "bytes"
import "compress/gzip"
import "fmt"
import "io"
import "os"
import "strconv"
import "strings"

/* i/o
 * -------------------------------------------------------------------------- */

// Read a count matrix from a tab-separated table. The first row lists
// the sample identifiers, every following row starts with a gene
// identifier followed by one integer count per sample.
func (obj *CountMatrix) ReadTable(reader io.Reader) error {
  scanner := bufio.NewScanner(reader)
  scanner.Buffer(make([]byte, 10*1024*1024), 10*1024*1024)

  sampleIds := []string{}
  geneIds   := []string{}
  counts    := [][]int{}

  for scanner.Scan() {
    if err := scanner.Err(); err != nil {
      return err
    }
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(sampleIds) == 0 {
      // header row
      sampleIds = fields
      continue
    }
    if len(geneIds) == 0 && len(fields) == len(sampleIds) {
      // the header carried a name for the gene id column
      sampleIds = sampleIds[1:]
    }
    if len(fields) != len(sampleIds)+1 {
      return fmt.Errorf("ReadTable(): invalid number of columns in row `%s'", fields[0])
    }
    row := make([]int, len(sampleIds))
    for j := 1; j < len(fields); j++ {
      t, err := strconv.ParseInt(fields[j], 10, 64)
      if err != nil {
        return err
      }
      if t < 0 {
        return fmt.Errorf("ReadTable(): negative count in row `%s'", fields[0])
      }
      row[j-1] = int(t)
    }
    geneIds = append(geneIds, fields[0])
    counts  = append(counts,  row)
  }
  *obj = NewCountMatrix(geneIds, sampleIds, counts)
  return nil
}

func (obj *CountMatrix) ImportTable(filename string) error {
  f, err := os.Open(filename)
  if err != nil {
    return err
  }
  defer f.Close()
  // check if file is gzipped
  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return err
    }
    defer g.Close()
    return obj.ReadTable(g)
  }
  return obj.ReadTable(f)
}

/* -------------------------------------------------------------------------- */

func (obj CountMatrix) WriteTable(writer io.Writer) error {
  for j := 0; j < obj.Samples(); j++ {
    if _, err := fmt.Fprintf(writer, "\t%s", obj.SampleIds[j]); err != nil {
      return err
    }
  }
  if _, err := fmt.Fprintf(writer, "\n"); err != nil {
    return err
  }
  for i := 0; i < obj.Length(); i++ {
    if _, err := fmt.Fprintf(writer, "%s", obj.GeneIds[i]); err != nil {
      return err
    }
    for j := 0; j < obj.Samples(); j++ {
      if _, err := fmt.Fprintf(writer, "\t%d", obj.Counts[i][j]); err != nil {
        return err
      }
    }
    if _, err := fmt.Fprintf(writer, "\n"); err != nil {
      return err
    }
  }
  return nil
}

func (obj CountMatrix) ExportTable(filename string, compress bool) error {
  var buffer bytes.Buffer

  writer := bufio.NewWriter(&buffer)
  if err := obj.WriteTable(writer); err != nil {
    return err
  }
  writer.Flush()

  return writeFile(filename, &buffer, compress)
}
