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
import   "os"
import   "strings"

import   "github.com/pborman/getopt"

import sp     "github.com/scipipe/scipipe"
import spcomp "github.com/scipipe/scipipe/components"

/* -------------------------------------------------------------------------- */

type Config struct {
  KmerSize int
  MaxTasks int
  Verbose  int
}

type Sample struct {
  Id     string
  Reads1 string
  Reads2 string
}

/* -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

// Read the sample sheet: one sample per line with the sample id and
// the paths of both read files.
func readSampleSheet(filename string) ([]Sample, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()

  samples := []Sample{}
  scanner := bufio.NewScanner(f)
  for scanner.Scan() {
    if err := scanner.Err(); err != nil {
      return nil, err
    }
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(fields) != 3 {
      return nil, fmt.Errorf("sample sheet must have three columns: id, reads1, reads2")
    }
    samples = append(samples, Sample{fields[0], fields[1], fields[2]})
  }
  return samples, nil
}

/* -------------------------------------------------------------------------- */

// Sequential wrapper around the external index builder and
// quantifier. Both are opaque tools; there is no retry, a failed step
// aborts the workflow.
func quantPipeline(config Config, filenameTranscripts, filenameDecoys, filenameSheet, outputDir string) {
  samples, err := readSampleSheet(filenameSheet)
  if err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 1, "Quantifying %d samples into `%s'\n", len(samples), outputDir)

  wf := sp.NewWorkflow("quant", config.MaxTasks)

  transcripts := spcomp.NewFileSource(wf, "transcripts", filenameTranscripts)
  decoys      := spcomp.NewFileSource(wf, "decoys",      filenameDecoys)

  index := wf.NewProc("salmon_index",
    fmt.Sprintf("salmon index -t {i:transcripts} -d {i:decoys} -k %d -i %s/index && echo done > {o:done}",
      config.KmerSize, outputDir))
  index.SetOut("done", outputDir+"/index.done")
  index.In("transcripts").From(transcripts.Out())
  index.In("decoys").From(decoys.Out())

  for _, sample := range samples {
    reads1 := spcomp.NewFileSource(wf, "reads1_"+sample.Id, sample.Reads1)
    reads2 := spcomp.NewFileSource(wf, "reads2_"+sample.Id, sample.Reads2)

    quant := wf.NewProc("salmon_quant_"+sample.Id,
      fmt.Sprintf("test -f {i:indexdone} && salmon quant -i %s/index -l A -1 {i:reads1} -2 {i:reads2} --validateMappings -o %s/%s && cp %s/%s/quant.sf {o:quant}",
        outputDir, outputDir, sample.Id, outputDir, sample.Id))
    quant.SetOut("quant", fmt.Sprintf("%s/%s.quant.sf", outputDir, sample.Id))
    quant.In("indexdone").From(index.Out("done"))
    quant.In("reads1").From(reads1.Out())
    quant.In("reads2").From(reads2.Out())
  }
  wf.Run()
}

/* -------------------------------------------------------------------------- */

func main() {
  config  := Config{}
  options := getopt.New()
  options.SetProgram(fmt.Sprintf("%s", os.Args[0]))

  optKmerSize := options.    IntLong("kmer-size",  0 , 31, "k-mer size for indexing [default: 31]")
  optMaxTasks := options.    IntLong("max-tasks",  0 ,  1, "maximum number of concurrent tasks [default: 1]")
  optHelp     := options.   BoolLong("help",      'h',     "print help")
  optVerbose  := options.CounterLong("verbose",   'v',     "be verbose")

  options.SetParameters("<transcripts.fa> <decoys.txt> <samples.tsv> <output-dir>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 4 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.KmerSize = *optKmerSize
  config.MaxTasks = *optMaxTasks
  config.Verbose  = *optVerbose

  quantPipeline(config, options.Args()[0], options.Args()[1], options.Args()[2], options.Args()[3])
}
