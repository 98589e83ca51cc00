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

package main

/* -------------------------------------------------------------------------- */

import   "fmt"
import   "log"
import   "os"
import   "strings"

import   "github.com/pborman/getopt"

import . "github.com/pbenner/dexpress"

/* -------------------------------------------------------------------------- */

type Config struct {
  Compress bool
  Verbose  int
}

/* -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

func countMatrix(config Config, filenameTx2Gene, filenameOut string, samples []string) {
  PrintStderr(config, 1, "Importing transcript-to-gene table `%s'... ", filenameTx2Gene)
  tx2gene, err := ImportTx2Gene(filenameTx2Gene)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  sampleIds := []string{}
  tables    := []QuantTable{}
  for _, sample := range samples {
    fields := strings.SplitN(sample, "=", 2)
    if len(fields) != 2 {
      log.Fatalf("invalid sample argument `%s', expected <sample>=<quant.sf>", sample)
    }
    table := QuantTable{}
    PrintStderr(config, 1, "Importing quantification table `%s'... ", fields[1])
    if err := table.ImportTable(fields[1]); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
    sampleIds = append(sampleIds, fields[0])
    tables    = append(tables,    table)
  }
  counts, err := CountMatrixFromQuant(sampleIds, tables, tx2gene)
  if err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 1, "Aggregated %d genes across %d samples\n", counts.Length(), counts.Samples())

  if err := counts.ExportTable(filenameOut, config.Compress); err != nil {
    log.Fatal(err)
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  config  := Config{}
  options := getopt.New()
  options.SetProgram(fmt.Sprintf("%s", os.Args[0]))

  optGzip    := options.   BoolLong("gzip",     0 , "gzip compress output")
  optHelp    := options.   BoolLong("help",    'h', "print help")
  optVerbose := options.CounterLong("verbose", 'v', "be verbose")

  options.SetParameters("<tx2gene.tsv> <output.tsv> <sample>=<quant.sf>...")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) < 3 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Compress = *optGzip
  config.Verbose  = *optVerbose

  countMatrix(config, options.Args()[0], options.Args()[1], options.Args()[2:])
}
