// Command stftinfo prints the analysis window properties, overlap-add
// gain and latency of the STFT pitch shifter for a frame/hop pair.
//
// Usage:
//
//	stftinfo [flags] [window-name ...]
//
// Without arguments it reports the Welch window the shifter uses.
//
// Examples:
//
//	stftinfo
//	stftinfo -size 2048 -hop 512
//	stftinfo -gain hann welch
//	stftinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/compakt/dsp/effects/pitch"
	"github.com/cwbudde/compakt/dsp/window"
)

func main() {
	size := flag.Int("size", 1024, "STFT frame size in samples (power of two)")
	hop := flag.Int("hop", 256, "STFT hop size in samples (must divide size)")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	gain := flag.Bool("gain", false, "print the per-phase overlap-add gain table")
	list := flag.Bool("list", false, "list available window names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stftinfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints STFT window analysis, overlap-add gain and shifter latency.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, n := range names() {
			fmt.Println(n)
		}
		return
	}

	sel := flag.Args()
	if len(sel) == 0 {
		sel = []string{"welch"}
	}

	if err := printShifter(os.Stdout, *rate, *size, *hop); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	if err := printWindows(os.Stdout, sel, *size, *hop, *gain); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func names() []string {
	var out []string
	for _, t := range window.Types() {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

func printShifter(w io.Writer, rate float64, size, hop int) error {
	s, err := pitch.NewShifter(rate, pitch.WithFrameSize(size), pitch.WithHopSize(hop))
	if err != nil {
		return err
	}

	lat := s.Latency()
	_, err = fmt.Fprintf(w, "frame %d  hop %d  bins %d  bin width %.3f Hz  latency %d samples (%.2f ms)\n",
		s.FrameSize(), s.Hop(), s.Bins(), s.BinFrequency(1), lat, 1000*float64(lat)/rate)
	return err
}

func printWindows(w io.Writer, sel []string, size, hop int, table bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tCoherent Gain\tENBW [bins]\tScallop [dB]\tSidelobe [dB]\tOLA min\tOLA max\tOLA mean\n")
	fmt.Fprintf(tw, "------\t-------------\t-----------\t------------\t-------------\t-------\t-------\t--------\n")

	var gains [][]float64
	var labels []string
	for _, name := range sel {
		typ, err := window.Parse(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (use -list to see available)\n", err)
			continue
		}
		name = typ.String()

		coeffs := window.Generate(typ, size)
		a := window.Analyze(coeffs)
		g, err := window.OverlapGain(coeffs, hop)
		if err != nil {
			return err
		}
		mean, err := window.MeanOverlapGain(coeffs, hop)
		if err != nil {
			return err
		}
		lo, hi := g[0], g[0]
		for _, v := range g {
			lo, hi = min(lo, v), max(hi, v)
		}

		fmt.Fprintf(tw, "%s\t%.6f\t%.4f\t%.2f\t%.2f\t%.4f\t%.4f\t%.4f\n",
			name, a.CoherentGain, a.ENBW, a.ScallopLossdB, a.HighestSidelobedB, lo, hi, mean)
		gains = append(gains, g)
		labels = append(labels, name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !table || len(gains) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Phase\t%s\n", strings.Join(labels, "\t"))
	for r := range hop {
		row := make([]string, len(gains))
		for i, g := range gains {
			row[i] = fmt.Sprintf("%.6f", g[r])
		}
		fmt.Fprintf(tw, "%d\t%s\n", r, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
