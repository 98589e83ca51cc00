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

import   "bufio"
import   "fmt"
import   "log"
import   "math"
import   "os"
import   "strconv"

import   "github.com/pborman/getopt"

import . "github.com/pbenner/dexpress"

/* -------------------------------------------------------------------------- */

type Config struct {
  Ora          bool
  LfcThreshold float64
  Alpha        float64
  Options      EnrichmentOptions
}

/* -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Options.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

func parseFloat(str string) float64 {
  v, err := strconv.ParseFloat(str, 64)
  if err != nil {
    log.Fatal(err)
  }
  return v
}

/* -------------------------------------------------------------------------- */

func runGsea(config Config, result ContrastResult, collection GeneSetCollection, filenameOut string) {
  geneIds := []string{}
  scores  := []float64{}
  for i := 0; i < result.Length(); i++ {
    if math.IsNaN(result.Log2FoldChange[i]) {
      continue
    }
    geneIds = append(geneIds, result.GeneIds[i])
    scores  = append(scores,  result.Log2FoldChange[i])
  }
  PrintStderr(config, 1, "Running enrichment on %d genes and %d gene sets\n", len(geneIds), collection.Length())
  enrichment, err := RunGSEA(geneIds, scores, collection, config.Options)
  if err != nil {
    log.Fatal(err)
  }
  exportEnrichment(filenameOut, func(writer *bufio.Writer) error {
    return enrichment.WriteTable(writer)
  })
}

func runOra(config Config, result ContrastResult, collection GeneSetCollection, filenameOut string) {
  universe := []string{}
  selected := []string{}
  for i := 0; i < result.Length(); i++ {
    if math.IsNaN(result.Log2FoldChange[i]) || math.IsNaN(result.Padj[i]) {
      continue
    }
    universe = append(universe, result.GeneIds[i])
    if math.Abs(result.Log2FoldChange[i]) >= config.LfcThreshold && result.Padj[i] < config.Alpha {
      selected = append(selected, result.GeneIds[i])
    }
  }
  PrintStderr(config, 1, "Testing %d selected genes against a universe of %d genes\n", len(selected), len(universe))
  enrichment, err := RunORA(selected, universe, collection, config.Options.MinSize, config.Options.MaxSize)
  if err != nil {
    log.Fatal(err)
  }
  exportEnrichment(filenameOut, func(writer *bufio.Writer) error {
    return enrichment.WriteTable(writer)
  })
}

func exportEnrichment(filename string, write func(*bufio.Writer) error) {
  f, err := os.Create(filename)
  if err != nil {
    log.Fatal(err)
  }
  defer f.Close()

  writer := bufio.NewWriter(f)
  if err := write(writer); err != nil {
    log.Fatal(err)
  }
  writer.Flush()
}

/* -------------------------------------------------------------------------- */

func geneSetEnrichment(config Config, filenameResult, filenameGmt, filenameOut string) {
  result := ContrastResult{}
  PrintStderr(config, 1, "Importing result table `%s'... ", filenameResult)
  if err := result.ImportTable(filenameResult); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  collection := GeneSetCollection{}
  PrintStderr(config, 1, "Importing gene sets `%s'... ", filenameGmt)
  if err := collection.ImportGMT(filenameGmt); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  if config.Ora {
    runOra (config, result, collection, filenameOut)
  } else {
    runGsea(config, result, collection, filenameOut)
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  config  := Config{}
  config.Options = DefaultEnrichmentOptions()

  options := getopt.New()
  options.SetProgram(fmt.Sprintf("%s", os.Args[0]))

  optMinSize      := options.    IntLong("min-size",      0 ,     15, "minimum gene set size [default: 15]")
  optMaxSize      := options.    IntLong("max-size",      0 ,    500, "maximum gene set size [default: 500]")
  optPermutations := options.    IntLong("permutations",  0 ,   1000, "number of permutations [default: 1000]")
  optSeed         := options.    IntLong("seed",          0 ,      1, "random number generator seed [default: 1]")
  optWeight       := options. StringLong("weight",        0 ,  "1.0", "weight exponent on gene scores [default: 1.0]")
  optOra          := options.   BoolLong("ora",           0 ,         "over-representation test instead of a running-sum statistic")
  optLfc          := options. StringLong("lfc-threshold", 0 ,  "1.0", "absolute log2 fold change threshold for --ora [default: 1.0]")
  optAlpha        := options. StringLong("alpha",         0 , "0.05", "adjusted p-value threshold for --ora [default: 0.05]")
  optThreads      := options.    IntLong("threads",      't',      1, "number of threads [default: 1]")
  optHelp         := options.   BoolLong("help",         'h',         "print help")
  optVerbose      := options.CounterLong("verbose",      'v',         "be verbose")

  options.SetParameters("<result.tsv> <genesets.gmt[.gz]> <output.tsv>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 3 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Options.MinSize      = *optMinSize
  config.Options.MaxSize      = *optMaxSize
  config.Options.Permutations = *optPermutations
  config.Options.Seed         = int64(*optSeed)
  config.Options.Weight       = parseFloat(*optWeight)
  config.Options.Threads      = *optThreads
  config.Options.Verbose      = *optVerbose
  config.Ora          = *optOra
  config.LfcThreshold = parseFloat(*optLfc)
  config.Alpha        = parseFloat(*optAlpha)

  geneSetEnrichment(config, options.Args()[0], options.Args()[1], options.Args()[2])
}
