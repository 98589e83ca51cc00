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

// Curated gene sets, named collections of gene identifiers. Loaded
// once from an external reference file and shared read-only across
// enrichment runs.
type GeneSetCollection struct {
  Names        []string
  Descriptions []string
  Sets         [][]string
  index        map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewGeneSetCollection(names, descriptions []string, sets [][]string) GeneSetCollection {
  if len(names) != len(sets) || len(names) != len(descriptions) {
    panic("NewGeneSetCollection(): invalid parameters")
  }
  index := map[string]int{}
  for i := 0; i < len(names); i++ {
    if _, ok := index[names[i]]; ok {
      panic("NewGeneSetCollection(): duplicate gene set name")
    }
    index[names[i]] = i
  }
  return GeneSetCollection{names, descriptions, sets, index}
}

/* -------------------------------------------------------------------------- */

// Returns the number of gene sets.
func (obj GeneSetCollection) Length() int {
  return len(obj.Names)
}

func (obj GeneSetCollection) Get(name string) ([]string, bool) {
  if i, ok := obj.index[name]; ok {
    return obj.Sets[i], true
  }
  return nil, false
}

// Keep sets whose membership within the given gene universe falls
// into [minSize, maxSize]. Members outside the universe do not count,
// so a set entirely absent from the universe is dropped.
func (obj GeneSetCollection) FilterSize(universe map[string]bool, minSize, maxSize int) GeneSetCollection {
  names        := []string{}
  descriptions := []string{}
  sets         := [][]string{}
  for i := 0; i < obj.Length(); i++ {
    n := 0
    for _, gene := range obj.Sets[i] {
      if universe[gene] {
        n++
      }
    }
    if n >= minSize && n <= maxSize {
      names        = append(names,        obj.Names[i])
      descriptions = append(descriptions, obj.Descriptions[i])
      sets         = append(sets,         obj.Sets[i])
    }
  }
  return NewGeneSetCollection(names, descriptions, sets)
}

/* i/o
 * -------------------------------------------------------------------------- */

// Read gene sets in GMT format: one set per line, tab-separated, with
// the set name, a description, and the member gene identifiers.
func (obj *GeneSetCollection) ReadGMT(reader io.Reader) error {
  scanner := bufio.NewScanner(reader)
  scanner.Buffer(make([]byte, 10*1024*1024), 10*1024*1024)

  names        := []string{}
  descriptions := []string{}
  sets         := [][]string{}

  for scanner.Scan() {
    if err := scanner.Err(); err != nil {
      return err
    }
    line := strings.TrimRight(scanner.Text(), "\r\n")
    if len(line) == 0 {
      continue
    }
    fields := strings.Split(line, "\t")
    if len(fields) < 3 {
      return fmt.Errorf("ReadGMT(): invalid line `%s'", fields[0])
    }
    members := []string{}
    seen    := map[string]bool{}
    for _, gene := range fields[2:] {
      if gene == "" || seen[gene] {
        continue
      }
      seen[gene] = true
      members    = append(members, gene)
    }
    names        = append(names,        fields[0])
    descriptions = append(descriptions, fields[1])
    sets         = append(sets,         members)
  }
  *obj = NewGeneSetCollection(names, descriptions, sets)
  return nil
}

func (obj *GeneSetCollection) ImportGMT(filename string) error {
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
    return obj.ReadGMT(g)
  }
  return obj.ReadGMT(f)
}
