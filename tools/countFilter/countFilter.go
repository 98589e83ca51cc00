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

import   "github.com/pborman/getopt"

import . "github.com/pbenner/dexpress"

/* -------------------------------------------------------------------------- */

type Config struct {
  MinCount   int
  MinSamples int
  Compress   bool
  Verbose    int
}

/* -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

func countFilter(config Config, filenameIn, filenameOut string) {
  counts := CountMatrix{}
  PrintStderr(config, 1, "Importing count matrix `%s'... ", filenameIn)
  if err := counts.ImportTable(filenameIn); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  filtered := counts.FilterLowCounts(config.MinCount, config.MinSamples)
  PrintStderr(config, 1, "Kept %d of %d genes\n", filtered.Length(), counts.Length())

  if err := filtered.ExportTable(filenameOut, config.Compress); err != nil {
    log.Fatal(err)
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  config  := Config{}
  options := getopt.New()
  options.SetProgram(fmt.Sprintf("%s", os.Args[0]))

  optMinCount   := options.    IntLong("min-count",    0 , 10, "minimum count threshold [default: 10]")
  optMinSamples := options.    IntLong("min-samples",  0 ,  2, "minimum number of samples reaching the threshold [default: 2]")
  optGzip       := options.   BoolLong("gzip",         0 ,     "gzip compress output")
  optHelp       := options.   BoolLong("help",        'h',     "print help")
  optVerbose    := options.CounterLong("verbose",     'v',     "be verbose")

  options.SetParameters("<input.tsv> <output.tsv>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 2 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.MinCount   = *optMinCount
  config.MinSamples = *optMinSamples
  config.Compress   = *optGzip
  config.Verbose    = *optVerbose

  countFilter(config, options.Args()[0], options.Args()[1])
}
