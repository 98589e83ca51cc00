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
import "database/sql"
import "fmt"
import "io"
import "os"
import "strings"

import _ "github.com/go-sql-driver/mysql"

/* -------------------------------------------------------------------------- */

// Gene annotation mapping identifiers to symbols and descriptive
// names. Loaded once per process and read-only afterwards. Lookup
// misses are expected and not an error.
type Annotation struct {
  GeneIds []string
  Symbols []string
  Names   []string
  index   map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewAnnotation(geneIds, symbols, names []string) Annotation {
  if len(geneIds) != len(symbols) || len(geneIds) != len(names) {
    panic("NewAnnotation(): invalid parameters")
  }
  index := map[string]int{}
  for i := 0; i < len(geneIds); i++ {
    // keep the first record on duplicates
    if _, ok := index[geneIds[i]]; !ok {
      index[geneIds[i]] = i
    }
  }
  return Annotation{geneIds, symbols, names, index}
}

func EmptyAnnotation() Annotation {
  return NewAnnotation([]string{}, []string{}, []string{})
}

/* -------------------------------------------------------------------------- */

// Returns the number of annotation records.
func (obj Annotation) Length() int {
  return len(obj.GeneIds)
}

func (obj Annotation) Get(geneId string) (string, string, bool) {
  if i, ok := obj.index[geneId]; ok {
    return obj.Symbols[i], obj.Names[i], true
  }
  return "", "", false
}

/* i/o
 * -------------------------------------------------------------------------- */

// Read gene annotation from a tab-separated table with columns gene
// id, symbol, and name. The name column may contain spaces.
func (obj *Annotation) ReadTable(reader io.Reader) error {
  scanner := bufio.NewScanner(reader)

  geneIds := []string{}
  symbols := []string{}
  names   := []string{}

  for scanner.Scan() {
    if err := scanner.Err(); err != nil {
      return err
    }
    line := scanner.Text()
    if len(line) == 0 {
      continue
    }
    fields := strings.SplitN(line, "\t", 3)
    if len(fields) < 2 {
      return fmt.Errorf("ReadTable(): annotation must have at least two columns")
    }
    name := ""
    if len(fields) == 3 {
      name = strings.TrimSpace(fields[2])
    }
    geneIds = append(geneIds, fields[0])
    symbols = append(symbols, fields[1])
    names   = append(names,   name)
  }
  *obj = NewAnnotation(geneIds, symbols, names)
  return nil
}

func (obj *Annotation) ImportTable(filename string) error {
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

// Import gene annotation from the public UCSC MySQL server, e.g.
// ImportAnnotationFromUCSC("hg38", "kgXref").
func ImportAnnotationFromUCSC(genome, table string) (Annotation, error) {
  annotation := Annotation{}
  /* variables for storing a single database row */
  var i_geneId, i_symbol, i_name string

  geneIds := []string{}
  symbols := []string{}
  names   := []string{}

  /* open connection */
  db, err := sql.Open("mysql",
    fmt.Sprintf("genome@tcp(genome-mysql.cse.ucsc.edu:3306)/%s", genome))
  if err != nil {
    return annotation, err
  }
  defer db.Close()

  err = db.Ping()
  if err != nil {
    return annotation, err
  }

  /* receive data */
  rows, err := db.Query(
    fmt.Sprintf("SELECT kgID, geneSymbol, description FROM %s", table))
  if err != nil {
    return annotation, err
  }
  defer rows.Close()
  for rows.Next() {
    err := rows.Scan(&i_geneId, &i_symbol, &i_name)
    if err != nil {
      return annotation, err
    }
    geneIds = append(geneIds, i_geneId)
    symbols = append(symbols, i_symbol)
    names   = append(names,   i_name)
  }
  return NewAnnotation(geneIds, symbols, names), nil
}
