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
import "os"
import "strings"

/* -------------------------------------------------------------------------- */

// Sample metadata. Each sample is assigned to exactly one condition
// and one batch. The object is constructed once from an external
// metadata table and not modified afterwards.
type SampleInfo struct {
  Ids       []string
  Condition []string
  Batch     []string
  index     map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewSampleInfo(ids, condition, batch []string) SampleInfo {
  if len(ids) != len(condition) || len(ids) != len(batch) {
    panic("NewSampleInfo(): invalid parameters")
  }
  index := map[string]int{}
  for i := 0; i < len(ids); i++ {
    if _, ok := index[ids[i]]; ok {
      panic("NewSampleInfo(): duplicate sample id")
    }
    index[ids[i]] = i
  }
  return SampleInfo{ids, condition, batch, index}
}

/* -------------------------------------------------------------------------- */

// Returns the number of samples.
func (obj SampleInfo) Length() int {
  return len(obj.Ids)
}

func (obj SampleInfo) Get(id string) (string, string, bool) {
  if i, ok := obj.index[id]; ok {
    return obj.Condition[i], obj.Batch[i], true
  }
  return "", "", false
}

// Condition labels in order of first appearance.
func (obj SampleInfo) Conditions() []string {
  m := map[string]bool{}
  r := []string{}
  for _, c := range obj.Condition {
    if !m[c] {
      m[c] = true
      r    = append(r, c)
    }
  }
  return r
}

// Batch labels in order of first appearance.
func (obj SampleInfo) Batches() []string {
  m := map[string]bool{}
  r := []string{}
  for _, b := range obj.Batch {
    if !m[b] {
      m[b] = true
      r    = append(r, b)
    }
  }
  return r
}

func (obj SampleInfo) CheckReference(reference string) error {
  for _, c := range obj.Condition {
    if c == reference {
      return nil
    }
  }
  return fmt.Errorf("reference condition `%s' not found in sample metadata", reference)
}

// Reorder records to match the given sample order, typically the
// column order of a count matrix. Every id must have exactly one
// matching record.
func (obj SampleInfo) Align(ids []string) (SampleInfo, error) {
  r_ids       := make([]string, len(ids))
  r_condition := make([]string, len(ids))
  r_batch     := make([]string, len(ids))
  for k, id := range ids {
    i, ok := obj.index[id]
    if !ok {
      return SampleInfo{}, fmt.Errorf("Align(): sample `%s' has no metadata record", id)
    }
    r_ids      [k] = obj.Ids      [i]
    r_condition[k] = obj.Condition[i]
    r_batch    [k] = obj.Batch    [i]
  }
  return NewSampleInfo(r_ids, r_condition, r_batch), nil
}

/* i/o
 * -------------------------------------------------------------------------- */

// Read sample metadata from a tab-separated table with a header row
// containing the columns `sample', `condition', and `batch'.
func (obj *SampleInfo) ReadTable(reader io.Reader) error {
  scanner := bufio.NewScanner(reader)

  i_sample    := -1
  i_condition := -1
  i_batch     := -1

  ids       := []string{}
  condition := []string{}
  batch     := []string{}

  for scanner.Scan() {
    if err := scanner.Err(); err != nil {
      return err
    }
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if i_sample == -1 {
      // header row
      for j, name := range fields {
        switch strings.ToLower(name) {
        case "sample"   : i_sample    = j
        case "condition": i_condition = j
        case "batch"    : i_batch     = j
        }
      }
      if i_sample == -1 || i_condition == -1 || i_batch == -1 {
        return fmt.Errorf("ReadTable(): header must contain `sample', `condition', and `batch' columns")
      }
      continue
    }
    if len(fields) <= i_sample || len(fields) <= i_condition || len(fields) <= i_batch {
      return fmt.Errorf("ReadTable(): invalid number of columns in row `%s'", fields[0])
    }
    ids       = append(ids,       fields[i_sample])
    condition = append(condition, fields[i_condition])
    batch     = append(batch,     fields[i_batch])
  }
  *obj = NewSampleInfo(ids, condition, batch)
  return nil
}

func (obj *SampleInfo) ImportTable(filename string) error {
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
