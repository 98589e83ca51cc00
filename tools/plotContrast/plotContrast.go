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
import   "math"
import   "os"
import   "strconv"

import   "github.com/pborman/getopt"

import   "gonum.org/v1/plot"
import   "gonum.org/v1/plot/plotter"
import   "gonum.org/v1/plot/plotutil"
import   "gonum.org/v1/plot/vg"

import . "github.com/pbenner/dexpress"

/* -------------------------------------------------------------------------- */

type Config struct {
  Alpha   float64
  Title   string
  Verbose int
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

func splitSignificant(config Config, result ContrastResult, x, y func(i int) float64) (plotter.XYs, plotter.XYs) {
  xyInsig := plotter.XYs{}
  xySig   := plotter.XYs{}
  for i := 0; i < result.Length(); i++ {
    xi := x(i)
    yi := y(i)
    if math.IsNaN(xi) || math.IsNaN(yi) || math.IsInf(xi, 0) || math.IsInf(yi, 0) {
      continue
    }
    if !math.IsNaN(result.Padj[i]) && result.Padj[i] < config.Alpha {
      xySig   = append(xySig,   plotter.XY{X: xi, Y: yi})
    } else {
      xyInsig = append(xyInsig, plotter.XY{X: xi, Y: yi})
    }
  }
  return xyInsig, xySig
}

func savePlot(config Config, p *plot.Plot, filename string) {
  if err := p.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 1, "Wrote plot to `%s'\n", filename)
}

func saveMAPlot(config Config, result ContrastResult, filename string) {
  xyInsig, xySig := splitSignificant(config, result,
    func(i int) float64 { return math.Log10(result.BaseMean[i] + 1.0) },
    func(i int) float64 { return result.Log2FoldChange[i] })

  p := plot.New()
  p.Title.Text   = config.Title
  p.X.Label.Text = "log10 mean of normalized counts"
  p.Y.Label.Text = "log2 fold change"

  if err := plotutil.AddScatters(p, "n.s.", xyInsig, "significant", xySig); err != nil {
    log.Fatal(err)
  }
  savePlot(config, p, filename)
}

func saveVolcanoPlot(config Config, result ContrastResult, filename string) {
  xyInsig, xySig := splitSignificant(config, result,
    func(i int) float64 { return result.Log2FoldChange[i] },
    func(i int) float64 { return -math.Log10(result.Pvalue[i]) })

  p := plot.New()
  p.Title.Text   = config.Title
  p.X.Label.Text = "log2 fold change"
  p.Y.Label.Text = "-log10 p-value"

  if err := plotutil.AddScatters(p, "n.s.", xyInsig, "significant", xySig); err != nil {
    log.Fatal(err)
  }
  savePlot(config, p, filename)
}

/* -------------------------------------------------------------------------- */

func plotContrast(config Config, filenameResult, prefix string) {
  result := ContrastResult{}
  PrintStderr(config, 1, "Importing result table `%s'... ", filenameResult)
  if err := result.ImportTable(filenameResult); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  saveMAPlot     (config, result, fmt.Sprintf("%s.ma.pdf",      prefix))
  saveVolcanoPlot(config, result, fmt.Sprintf("%s.volcano.pdf", prefix))
}

/* -------------------------------------------------------------------------- */

func main() {
  config  := Config{}
  options := getopt.New()
  options.SetProgram(fmt.Sprintf("%s", os.Args[0]))

  optAlpha   := options. StringLong("alpha",    0 , "0.05", "adjusted p-value threshold for highlighting [default: 0.05]")
  optTitle   := options. StringLong("title",    0 ,     "", "plot title")
  optHelp    := options.   BoolLong("help",    'h',         "print help")
  optVerbose := options.CounterLong("verbose", 'v',         "be verbose")

  options.SetParameters("<result.tsv> <output-prefix>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 2 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Alpha   = parseFloat(*optAlpha)
  config.Title   = *optTitle
  config.Verbose = *optVerbose

  plotContrast(config, options.Args()[0], options.Args()[1])
}
