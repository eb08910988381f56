// Command ccreplay runs an input script headlessly and prints the
// trajectory and its checksum.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/charcontroller/prefabs"
	"github.com/milk9111/charcontroller/scenario"
)

func main() {
	list := flag.Bool("list", false, "list embedded scripts and exit")
	quiet := flag.Bool("q", false, "print only the checksum")
	events := flag.Bool("events", false, "print only ticks that raised events")
	expect := flag.String("expect", "", "exit non-zero unless the checksum matches")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ccreplay [flags] script\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(prefabs.ScriptNames(), "\n"))
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	tr, err := scenario.RunScript(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	if !*quiet {
		for i, f := range tr.Frames {
			if *events && f.Events == 0 {
				continue
			}
			s := f.State
			fmt.Printf("%5d  in=%s  pos=(%8.3f,%8.3f)  vel=(%7.3f,%7.3f)  %-13s flip=%-5v  %s\n",
				f.Tick, formatInput(tr, i), s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y,
				f.Pose, f.Flip, f.Events)
		}
	}

	sum, err := tr.Checksum()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s  %s  %d ticks\n", sum, tr.Script, len(tr.Frames))

	if *expect != "" && *expect != sum {
		log.Fatalf("ccreplay: checksum mismatch: want %s", *expect)
	}
}

func formatInput(tr *scenario.Trajectory, i int) string {
	in := tr.Inputs[i]
	keys := []struct {
		on bool
		c  byte
	}{
		{in.Left, 'L'}, {in.Right, 'R'}, {in.Up, 'U'}, {in.Jump, 'J'},
		{in.JumpPressed, '!'}, {in.Dash, 'D'}, {in.Reset, 'X'},
	}
	b := make([]byte, len(keys))
	for j, k := range keys {
		b[j] = '.'
		if k.on {
			b[j] = k.c
		}
	}
	return string(b)
}
