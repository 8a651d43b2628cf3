// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/zdemo/main.go
// Summary: A runnable demo that drives the adapter end to end: a toy story
// driver (any shell command, by default an echoing shell) runs behind a
// real PTY, its output is pushed through z_ucs_output and its input comes
// from read_line, the same shape as the teacher's texelTerm.Run loop
// driving a vterm from a PTY.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/chrender/monoscreen/adapter"
	"github.com/chrender/monoscreen/backend"
	"github.com/chrender/monoscreen/cmdhistory"
	"github.com/chrender/monoscreen/config"
	"github.com/chrender/monoscreen/history"
	"github.com/chrender/monoscreen/internal/logging"
	"github.com/chrender/monoscreen/localize"
	"github.com/chrender/monoscreen/zscii"
)

func main() {
	storyCmd := flag.String("story", "sh -c 'echo You are standing in an open field. A pty waits to your north.; exec cat'", "shell command driving the demo story")
	cmdHistSize := flag.Int("cmdhist", 64, "command-history capacity")
	verbose := flag.Bool("verbose", false, "enable diagnostic logging to stderr")
	flag.Parse()
	logging.SetVerbose(*verbose)

	cat, err := localize.New()
	if err != nil {
		log.Fatalf("zdemo: localize: %v", err)
	}

	defFg, defBg, colorErr := queryDefaultColors()
	if colorErr != nil {
		log.Printf("zdemo: could not query terminal default colors: %v", colorErr)
	}

	tc, err := backend.New()
	if err != nil {
		log.Fatalf("zdemo: backend init: %v", err)
	}
	if colorErr == nil {
		tc.SetDefaultColors(defFg, defBg)
	}

	a := adapter.New(tc, history.New(), cmdhistory.New(*cmdHistSize), cat, config.New())
	if r := a.LinkInterfaceToStory(adapter.StoryInfo{Version: adapter.V3}); r.Fatal() {
		tc.Close()
		log.Fatalf("zdemo: link_interface_to_story: %v", r.Err)
	}
	defer tc.Close()
	defer a.CloseInterface("")

	a.DrawStatus("Open Field", adapter.ScoreAndTurn, 0, 1)

	ptmx, cmd, err := startStoryDriver(*storyCmd)
	if err != nil {
		a.ZUCSOutput([]rune(fmt.Sprintf("could not start story driver: %v\n", err)))
		a.ReadLine(make([]rune, 1), 1, 0, nil, 0, false, true)
		return
	}
	defer ptmx.Close()
	defer cmd.Wait()

	reader := bufio.NewReader(ptmx)
	dest := make([]rune, 255)

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if r := a.ZUCSOutput([]rune(line)); r.Fatal() {
				a.CloseInterface(r.Err.Error())
				tc.Close()
				log.Fatalf("zdemo: z_ucs_output: %v", r.Err)
			}
		}
		if err != nil {
			a.ZUCSOutput([]rune("\n[the story driver exited]\n"))
			a.ReadLine(dest, len(dest), 0, nil, 0, false, true)
			return
		}

		n := a.ReadLine(dest, len(dest), 0, nil, 0, false, true)
		if n < 0 {
			return
		}
		if _, err := ptmx.Write(decodeZSCII(dest[:n])); err != nil {
			return
		}
		ptmx.Write([]byte("\n"))
	}
}

// startStoryDriver spawns cmdline behind a PTY, the same role
// github.com/creack/pty plays in the teacher's apps/texelterm/term.go.
func startStoryDriver(cmdline string) (*os.File, *exec.Cmd, error) {
	cmd := exec.Command("/bin/sh", "-c", cmdline)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, nil, err
	}
	return ptmx, cmd, nil
}

// decodeZSCII turns read_line's ZSCII-translated buffer back into UTF-8
// bytes for the story driver's stdin.
func decodeZSCII(buf []rune) []byte {
	out := make([]byte, 0, len(buf))
	for _, r := range buf {
		out = append(out, string(zscii.FromZSCII(byte(r)))...)
	}
	return out
}

var oscReply = regexp.MustCompile(`\x1b\](\d+);rgb:([0-9A-Fa-f]{2,4})/([0-9A-Fa-f]{2,4})/([0-9A-Fa-f]{2,4})`)

// queryDefaultColors asks the real terminal for its default foreground and
// background via the OSC 10/11 escape sequences, the same query the
// teacher's initDefaultColors performs over a raw-mode /dev/tty before
// tcell takes over the terminal. The reply is mapped onto the adapter's
// eight basic named colours since spec.md has no notion of true colour.
func queryDefaultColors() (fg, bg adapter.Color, err error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return adapter.ColorDefault, adapter.ColorDefault, err
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return adapter.ColorDefault, adapter.ColorDefault, err
	}
	defer term.Restore(int(tty.Fd()), oldState)

	query := func(code int) (adapter.Color, error) {
		if _, err := tty.WriteString(fmt.Sprintf("\x1b]%d;?\x07", code)); err != nil {
			return adapter.ColorDefault, err
		}
		_ = tty.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		resp := make([]byte, 0, 32)
		buf := make([]byte, 1)
		for len(resp) < 64 {
			n, err := tty.Read(buf)
			if err != nil {
				return adapter.ColorDefault, err
			}
			resp = append(resp, buf[:n]...)
			if buf[0] == '\x07' {
				break
			}
		}
		m := oscReply.FindStringSubmatch(string(resp))
		if len(m) != 5 {
			return adapter.ColorDefault, fmt.Errorf("unexpected OSC %d reply", code)
		}
		r, _ := strconv.ParseInt(m[2][:2], 16, 32)
		g, _ := strconv.ParseInt(m[3][:2], 16, 32)
		b, _ := strconv.ParseInt(m[4][:2], 16, 32)
		return nearestNamedColor(byte(r), byte(g), byte(b)), nil
	}

	fg, errFg := query(10)
	bg, errBg := query(11)
	if errFg != nil && errBg != nil {
		return adapter.ColorDefault, adapter.ColorDefault, errFg
	}
	return fg, bg, nil
}

var namedPalette = map[adapter.Color][3]byte{
	adapter.ColorBlack:   {0, 0, 0},
	adapter.ColorRed:     {170, 0, 0},
	adapter.ColorGreen:   {0, 170, 0},
	adapter.ColorYellow:  {170, 85, 0},
	adapter.ColorBlue:    {0, 0, 170},
	adapter.ColorMagenta: {170, 0, 170},
	adapter.ColorCyan:    {0, 170, 170},
	adapter.ColorWhite:   {170, 170, 170},
}

// nearestNamedColor maps an arbitrary RGB triple onto the closest of the
// Z-Machine's eight named colours, by squared Euclidean distance.
func nearestNamedColor(r, g, b byte) adapter.Color {
	best := adapter.ColorDefault
	bestDist := -1
	for c, rgb := range namedPalette {
		dr := int(r) - int(rgb[0])
		dg := int(g) - int(rgb[1])
		db := int(b) - int(rgb[2])
		dist := dr*dr + dg*dg + db*db
		if bestDist == -1 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}
