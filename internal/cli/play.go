package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/biologicmachine-lab/GameOn/internal/model"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a two-player game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runPlay drives a local two-player game: render, prompt, move, repeat until
// checkmate or quit. Moves are typed as two squares, "e2 e4".
func runPlay(in io.Reader, out io.Writer) error {
	board := model.NewBoard()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintln(out)
		fmt.Fprint(out, board)

		toMove := board.Turn()
		if board.IsCheckmate(toMove) {
			fmt.Fprintf(out, "Checkmate! %s wins.\n", toMove.Opposite())
			return nil
		}
		if board.IsInCheck(toMove) {
			fmt.Fprintf(out, "%s is in check.\n", toMove)
		}

		fmt.Fprintf(out, "%s to move (e.g. e2 e4, or quit): ", toMove)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintln(out, "Enter a move as two squares, like: e2 e4")
			continue
		}
		from, ok := model.ParsePosition(fields[0])
		if !ok {
			fmt.Fprintf(out, "Invalid square: %s\n", fields[0])
			continue
		}
		to, ok := model.ParsePosition(fields[1])
		if !ok {
			fmt.Fprintf(out, "Invalid square: %s\n", fields[1])
			continue
		}

		if err := board.MovePiece(from, to); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}
