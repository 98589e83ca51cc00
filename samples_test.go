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

//import "fmt"
import "strings"
import "testing"

/* -------------------------------------------------------------------------- */

func TestSamples1(t *testing.T) {

  table := "" +
    "sample\tcondition\tbatch\n" +
    "s1\tDMSO\tb1\n" +
    "s2\tDMSO\tb2\n" +
    "s3\ttreatmentA\tb1\n" +
    "s4\ttreatmentA\tb2\n"

  samples := SampleInfo{}
  if err := samples.ReadTable(strings.NewReader(table)); err != nil {
    t.Error(err)
  }
  if samples.Length() != 4 {
    t.Error("TestSamples1 failed!")
  }
  if c, b, ok := samples.Get("s3"); !ok || c != "treatmentA" || b != "b1" {
    t.Error("TestSamples1 failed!")
  }
  if err := samples.CheckReference("DMSO"); err != nil {
    t.Error("TestSamples1 failed!")
  }
  if err := samples.CheckReference("mock"); err == nil {
    t.Error("TestSamples1 failed!")
  }
}

func TestSamplesAlign1(t *testing.T) {

  samples := NewSampleInfo(
    []string{"s1", "s2", "s3"},
    []string{"control", "treatment", "treatment"},
    []string{"b1", "b1", "b2"})

  aligned, err := samples.Align([]string{"s3", "s1", "s2"})
  if err != nil {
    t.Error(err)
  }
  if aligned.Ids[0] != "s3" || aligned.Condition[0] != "treatment" || aligned.Batch[0] != "b2" {
    t.Error("TestSamplesAlign1 failed!")
  }
  // unmatched samples abort
  if _, err := samples.Align([]string{"s1", "s5"}); err == nil {
    t.Error("TestSamplesAlign1 failed!")
  }
}

func TestSamplesConditions1(t *testing.T) {

  samples := NewSampleInfo(
    []string{"s1", "s2", "s3", "s4"},
    []string{"control", "treatmentA", "control", "treatmentB"},
    []string{"b1", "b1", "b2", "b2"})

  conditions := samples.Conditions()
  if len(conditions) != 3 || conditions[0] != "control" || conditions[1] != "treatmentA" || conditions[2] != "treatmentB" {
    t.Error("TestSamplesConditions1 failed!")
  }
  batches := samples.Batches()
  if len(batches) != 2 || batches[0] != "b1" {
    t.Error("TestSamplesConditions1 failed!")
  }
}
