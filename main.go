package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"ludo/internal/board"
	"ludo/internal/dice"
	"ludo/internal/game"
	"os"
	"strconv"
	"strings"
	"time"
)

func main() {
	seed := flag.Int64("seed", 0, "dice seed (0 picks one)")
	script := flag.String("script", "", "comma separated dice faces to replay instead of random rolls")
	lock := flag.Bool("lock-on-win", false, "stop the game after the first win")
	flag.Parse()

	roller, err := newRoller(*seed, *script)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	g := game.New(roller,
		game.WithLockOnWin(*lock),
		game.WithListener(game.ListenerFunc(func(ev game.Event) {
			switch ev.Kind {
			case game.EventPieceCaptured:
				fmt.Printf("  %s piece %d captured on %d\n", ev.Player, ev.Piece, ev.Position)
			case game.EventPlayerWon:
				fmt.Printf("\n*** %s has brought every piece home! ***\n", ev.Player)
			}
		})),
	)

	if err := play(g, os.Stdin, os.Stdout); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("\nPermainan selesai!")
	js, _ := json.MarshalIndent(g.Snapshot(), "", "  ")
	fmt.Println(string(js))
}

func newRoller(seed int64, script string) (dice.Roller, error) {
	if script != "" {
		var faces []int
		for _, f := range strings.Split(script, ",") {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil || v < 1 || v > dice.Sides {
				return nil, fmt.Errorf("bad dice face %q", f)
			}
			faces = append(faces, v)
		}
		return dice.Scripted(faces...), nil
	}
	if seed == 0 {
		s, err := dice.NewSeed()
		if err != nil {
			s = time.Now().UnixNano()
		}
		seed = s
	}
	return dice.New(seed), nil
}

// play runs the hot-seat loop until input ends, the user quits or the game locks.
func play(g *game.Engine, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		turn := g.Turn()
		fmt.Fprintf(out, "\nGiliran: %s\n", turn)
		printBoard(out, g)
		fmt.Fprint(out, "[enter] roll, r reset, q quit > ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return err
		}
		switch strings.TrimSpace(line) {
		case "q":
			return nil
		case "r":
			g.Reset()
			continue
		}

		roll, err := g.Roll()
		if errors.Is(err, game.ErrGameLocked) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, "Roll rejected:", err)
			continue
		}
		fmt.Fprintf(out, "%s rolled %d\n", roll.Player, roll.Dice)
		if roll.Passed {
			fmt.Fprintln(out, "Tidak ada langkah legal, skip turn.")
			continue
		}

		for {
			fmt.Fprintf(out, "Pick a piece %v > ", roll.Eligible)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return err
			}
			piece, convErr := strconv.Atoi(strings.TrimSpace(line))
			if convErr != nil {
				fmt.Fprintln(out, "Format salah. Coba lagi.")
				continue
			}
			mv, err := g.Select(roll.Player, piece)
			if err != nil {
				fmt.Fprintln(out, "Langkah tidak valid:", err)
				continue
			}
			fmt.Fprintf(out, "  piece %d: %d -> %d via %v\n", mv.Piece, mv.From, mv.To, mv.Steps)
			if mv.ExtraTurn {
				fmt.Fprintln(out, "  roll again")
			}
			break
		}
	}
}

func printBoard(out io.Writer, g *game.Engine) {
	ps := g.Positions()
	for p := board.Player(0); p < board.NumPlayers; p++ {
		fmt.Fprintf(out, "  %-6s", p)
		for i, pos := range ps[p] {
			fmt.Fprintf(out, " %d:%s", i, cellLabel(p, pos))
		}
		fmt.Fprintln(out)
	}
}

func cellLabel(p board.Player, pos board.Position) string {
	switch board.KindOf(p, pos) {
	case board.KindBase:
		return "base"
	case board.KindHome:
		return "HOME"
	case board.KindLane:
		return fmt.Sprintf("lane%d", board.LaneLength-board.DistanceToHome(p, pos)+1)
	default:
		return strconv.Itoa(int(pos))
	}
}
