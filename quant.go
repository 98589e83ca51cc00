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
import "compress/gzip"
import "fmt"
import "io"
import "math"
import "os"
import "sort"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// Per-transcript abundance table as written by the external
// quantifier (columns: Name, Length, EffectiveLength, TPM, NumReads).
type QuantTable struct {
  Names           []string
  Length          []int
  EffectiveLength []float64
  Tpm             []float64
  NumReads        []float64
}

/* -------------------------------------------------------------------------- */

// Returns the number of transcripts.
func (obj QuantTable) Rows() int {
  return len(obj.Names)
}

/* i/o
 * -------------------------------------------------------------------------- */

func (obj *QuantTable) ReadTable(reader io.Reader) error {
  scanner := bufio.NewScanner(reader)

  names           := []string{}
  length          := []int{}
  effectiveLength := []float64{}
  tpm             := []float64{}
  numReads        := []float64{}

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
      if fields[0] != "Name" {
        return fmt.Errorf("ReadTable(): unexpected header `%s'", fields[0])
      }
      header = false
      continue
    }
    if len(fields) != 5 {
      return fmt.Errorf("ReadTable(): file must have five columns")
    }
    t1, e := strconv.ParseInt(fields[1], 10, 64)
    if e != nil {
      return e
    }
    t2, e := strconv.ParseFloat(fields[2], 64)
    if e != nil {
      return e
    }
    t3, e := strconv.ParseFloat(fields[3], 64)
    if e != nil {
      return e
    }
    t4, e := strconv.ParseFloat(fields[4], 64)
    if e != nil {
      return e
    }
    names           = append(names,           fields[0])
    length          = append(length,          int(t1))
    effectiveLength = append(effectiveLength, t2)
    tpm             = append(tpm,             t3)
    numReads        = append(numReads,        t4)
  }
  *obj = QuantTable{names, length, effectiveLength, tpm, numReads}
  return nil
}

func (obj *QuantTable) ImportTable(filename string) error {
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

// Read a two-column transcript-to-gene table.
func ReadTx2Gene(reader io.Reader) (map[string]string, error) {
  scanner := bufio.NewScanner(reader)

  tx2gene := map[string]string{}
  for scanner.Scan() {
    if err := scanner.Err(); err != nil {
      return nil, err
    }
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(fields) != 2 {
      return nil, fmt.Errorf("ReadTx2Gene(): file must have two columns")
    }
    tx2gene[fields[0]] = fields[1]
  }
  return tx2gene, nil
}

func ImportTx2Gene(filename string) (map[string]string, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()
  // check if file is gzipped
  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return nil, err
    }
    defer g.Close()
    return ReadTx2Gene(g)
  }
  return ReadTx2Gene(f)
}

/* -------------------------------------------------------------------------- */

// Aggregate per-sample transcript abundances to a gene level count
// matrix. Estimated read counts are summed per gene and rounded to
// the nearest integer. Transcripts without a gene mapping are
// skipped. Genes are sorted lexicographically; a gene missing from a
// sample gets a zero count.
func CountMatrixFromQuant(sampleIds []string, tables []QuantTable, tx2gene map[string]string) (CountMatrix, error) {
  if len(sampleIds) != len(tables) {
    return CountMatrix{}, fmt.Errorf("CountMatrixFromQuant(): invalid parameters")
  }
  sums := make([]map[string]float64, len(tables))
  for j, table := range tables {
    sums[j] = map[string]float64{}
    for i := 0; i < table.Rows(); i++ {
      if gene, ok := tx2gene[table.Names[i]]; ok {
        sums[j][gene] += table.NumReads[i]
      }
    }
  }
  geneIds := []string{}
  seen    := map[string]bool{}
  for j := range sums {
    for gene := range sums[j] {
      if !seen[gene] {
        seen[gene] = true
        geneIds    = append(geneIds, gene)
      }
    }
  }
  sort.Strings(geneIds)

  counts := make([][]int, len(geneIds))
  for i, gene := range geneIds {
    counts[i] = make([]int, len(sampleIds))
    for j := range sums {
      counts[i][j] = int(math.Round(sums[j][gene]))
    }
  }
  return NewCountMatrix(geneIds, sampleIds, counts), nil
}
