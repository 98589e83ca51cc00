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
import   "strconv"

import   "github.com/pborman/getopt"

import . "github.com/pbenner/dexpress"

/* -------------------------------------------------------------------------- */

type Config struct {
  Reference    string
  MinCount     int
  MinSamples   int
  LfcThreshold float64
  Alpha        float64
  Shrink       bool
  Rank         bool
  Annotation   string
  Threads      int
  Compress     bool
  Verbose      int
}

/* -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
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

func importAnnotation(config Config) Annotation {
  annotation := Annotation{}
  PrintStderr(config, 1, "Importing annotation `%s'... ", config.Annotation)
  if err := annotation.ImportTable(config.Annotation); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return annotation
}

func dgeContrast(config Config, filenameCounts, filenameSamples, prefix string) {
  counts := CountMatrix{}
  PrintStderr(config, 1, "Importing count matrix `%s'... ", filenameCounts)
  if err := counts.ImportTable(filenameCounts); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  samples := SampleInfo{}
  PrintStderr(config, 1, "Importing sample metadata `%s'... ", filenameSamples)
  if err := samples.ImportTable(filenameSamples); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  filtered := counts.FilterLowCounts(config.MinCount, config.MinSamples)
  PrintStderr(config, 1, "Kept %d of %d genes after low-count filtering\n", filtered.Length(), counts.Length())

  dataSet, err := NewDataSet(filtered, samples, config.Reference)
  if err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 1, "Fitting joint model on %d samples... ", filtered.Samples())
  model, err := dataSet.Fit(config.Threads)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  annotation := Annotation{}
  if config.Annotation != "" {
    annotation = importAnnotation(config)
  }
  for _, condition := range model.Conditions() {
    result, err := model.Contrast(condition)
    if err != nil {
      log.Fatal(err)
    }
    if config.Shrink {
      result = result.Shrink()
    }
    if config.Rank {
      result = result.Rank(config.LfcThreshold, config.Alpha)
    }
    filename := fmt.Sprintf("%s_%s_vs_%s.tsv", prefix, condition, config.Reference)
    if config.Compress {
      filename = fmt.Sprintf("%s.gz", filename)
    }
    PrintStderr(config, 1, "Writing contrast `%s' vs `%s' to `%s'... ", condition, config.Reference, filename)
    if config.Annotation != "" {
      err = result.ExportAnnotatedTable(filename, annotation, config.Compress)
    } else {
      err = result.ExportTable(filename, config.Compress)
    }
    if err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  config  := Config{}
  options := getopt.New()
  options.SetProgram(fmt.Sprintf("%s", os.Args[0]))

  optReference  := options. StringLong("reference",     0 ,     "", "reference condition label")
  optMinCount   := options.    IntLong("min-count",     0 ,     10, "minimum count threshold [default: 10]")
  optMinSamples := options.    IntLong("min-samples",   0 ,      2, "minimum number of samples reaching the threshold [default: 2]")
  optLfc        := options.StringLong("lfc-threshold",  0 ,  "1.0", "absolute log2 fold change threshold for ranking [default: 1.0]")
  optAlpha      := options.StringLong("alpha",          0 , "0.05", "adjusted p-value threshold for ranking [default: 0.05]")
  optShrink     := options.   BoolLong("shrink",        0 ,         "shrink log2 fold changes (ranking/visualization only)")
  optRank       := options.   BoolLong("rank",          0 ,         "threshold and sort results by log2 fold change")
  optAnnotation := options. StringLong("annotation",    0 ,     "", "gene annotation table; genes without a record are dropped from output")
  optThreads    := options.    IntLong("threads",      't',      1, "number of threads [default: 1]")
  optGzip       := options.   BoolLong("gzip",          0 ,         "gzip compress output")
  optHelp       := options.   BoolLong("help",         'h',         "print help")
  optVerbose    := options.CounterLong("verbose",      'v',         "be verbose")

  options.SetParameters("<counts.tsv> <samples.tsv> <output-prefix>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 3 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  if *optReference == "" {
    log.Fatal("no reference condition specified (--reference)")
  }
  config.Reference    = *optReference
  config.MinCount     = *optMinCount
  config.MinSamples   = *optMinSamples
  config.LfcThreshold = parseFloat(*optLfc)
  config.Alpha        = parseFloat(*optAlpha)
  config.Shrink       = *optShrink
  config.Rank         = *optRank
  config.Annotation   = *optAnnotation
  config.Threads      = *optThreads
  config.Compress     = *optGzip
  config.Verbose      = *optVerbose

  dgeContrast(config, options.Args()[0], options.Args()[1], options.Args()[2])
}
