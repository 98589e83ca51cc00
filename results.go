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
import "math"
import "os"
import "sort"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// Per-gene statistics of one contrast against the reference
// condition. Produced once by Model.Contrast and read-only
// afterwards.
type ContrastResult struct {
  Condition      string
  Reference      string
  GeneIds        []string
  BaseMean       []float64
  Log2FoldChange []float64
  LfcSE          []float64
  Pvalue         []float64
  Padj           []float64
}

/* -------------------------------------------------------------------------- */

// Returns the number of genes.
func (obj ContrastResult) Length() int {
  return len(obj.GeneIds)
}

func (obj ContrastResult) Subset(indices []int) ContrastResult {
  r := ContrastResult{}
  r.Condition      = obj.Condition
  r.Reference      = obj.Reference
  r.GeneIds        = make([]string,  len(indices))
  r.BaseMean       = make([]float64, len(indices))
  r.Log2FoldChange = make([]float64, len(indices))
  r.LfcSE          = make([]float64, len(indices))
  r.Pvalue         = make([]float64, len(indices))
  r.Padj           = make([]float64, len(indices))
  for k, i := range indices {
    if i < 0 || i >= obj.Length() {
      panic("Subset(): index out of range")
    }
    r.GeneIds       [k] = obj.GeneIds       [i]
    r.BaseMean      [k] = obj.BaseMean      [i]
    r.Log2FoldChange[k] = obj.Log2FoldChange[i]
    r.LfcSE         [k] = obj.LfcSE         [i]
    r.Pvalue        [k] = obj.Pvalue        [i]
    r.Padj          [k] = obj.Padj          [i]
  }
  return r
}

/* ranking
 * -------------------------------------------------------------------------- */

// Keep genes with |log2 fold change| >= lfcThreshold and adjusted
// p-value < alpha, sorted in descending order of the log2 fold
// change. The sort is stable, ties keep their original row order.
func (obj ContrastResult) Rank(lfcThreshold, alpha float64) ContrastResult {
  indices := []int{}
  for i := 0; i < obj.Length(); i++ {
    if math.IsNaN(obj.Log2FoldChange[i]) || math.IsNaN(obj.Padj[i]) {
      continue
    }
    if math.Abs(obj.Log2FoldChange[i]) >= lfcThreshold && obj.Padj[i] < alpha {
      indices = append(indices, i)
    }
  }
  sort.SliceStable(indices, func(i, j int) bool {
    return obj.Log2FoldChange[indices[i]] > obj.Log2FoldChange[indices[j]]
  })
  return obj.Subset(indices)
}

/* i/o
 * -------------------------------------------------------------------------- */

// Read a result table as written by WriteTable.
func (obj *ContrastResult) ReadTable(reader io.Reader) error {
  scanner := bufio.NewScanner(reader)

  r := ContrastResult{}

  header := true
  for scanner.Scan() {
    if err := scanner.Err(); err != nil {
      return err
    }
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if header {
      if fields[0] != "gene_id" {
        return fmt.Errorf("ReadTable(): unexpected header `%s'", fields[0])
      }
      header = false
      continue
    }
    if len(fields) != 6 {
      return fmt.Errorf("ReadTable(): file must have six columns")
    }
    values := make([]float64, 5)
    for j := 1; j < 6; j++ {
      t, err := strconv.ParseFloat(fields[j], 64)
      if err != nil {
        return err
      }
      values[j-1] = t
    }
    r.GeneIds        = append(r.GeneIds,        fields[0])
    r.BaseMean       = append(r.BaseMean,       values[0])
    r.Log2FoldChange = append(r.Log2FoldChange, values[1])
    r.LfcSE          = append(r.LfcSE,          values[2])
    r.Pvalue         = append(r.Pvalue,         values[3])
    r.Padj           = append(r.Padj,           values[4])
  }
  *obj = r
  return nil
}

func (obj *ContrastResult) ImportTable(filename string) error {
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

func (obj ContrastResult) WriteTable(writer io.Writer) error {
  if _, err := fmt.Fprintf(writer, "gene_id\tbaseMean\tlog2FoldChange\tlfcSE\tpvalue\tpadj\n"); err != nil {
    return err
  }
  for i := 0; i < obj.Length(); i++ {
    if _, err := fmt.Fprintf(writer, "%s\t%f\t%f\t%f\t%e\t%e\n",
        obj.GeneIds[i], obj.BaseMean[i], obj.Log2FoldChange[i], obj.LfcSE[i],
        obj.Pvalue[i], obj.Padj[i]); err != nil {
      return err
    }
  }
  return nil
}

// Write the result table with gene symbols and descriptions. Genes
// without an annotation record are expected and silently dropped from
// the output.
func (obj ContrastResult) WriteAnnotatedTable(writer io.Writer, annotation Annotation) error {
  if _, err := fmt.Fprintf(writer, "gene_id\tsymbol\tname\tlog2FoldChange\tpvalue\tpadj\n"); err != nil {
    return err
  }
  for i := 0; i < obj.Length(); i++ {
    symbol, name, ok := annotation.Get(obj.GeneIds[i])
    if !ok {
      continue
    }
    if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\t%f\t%e\t%e\n",
        obj.GeneIds[i], symbol, name, obj.Log2FoldChange[i],
        obj.Pvalue[i], obj.Padj[i]); err != nil {
      return err
    }
  }
  return nil
}

func (obj ContrastResult) ExportTable(filename string, compress bool) error {
  var buffer bytes.Buffer

  writer := bufio.NewWriter(&buffer)
  if err := obj.WriteTable(writer); err != nil {
    return err
  }
  writer.Flush()

  return writeFile(filename, &buffer, compress)
}

func (obj ContrastResult) ExportAnnotatedTable(filename string, annotation Annotation, compress bool) error {
  var buffer bytes.Buffer

  writer := bufio.NewWriter(&buffer)
  if err := obj.WriteAnnotatedTable(writer, annotation); err != nil {
    return err
  }
  writer.Flush()

  return writeFile(filename, &buffer, compress)
}
