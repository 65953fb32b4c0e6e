package gtp

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gtpbench/board"
	"gtpbench/metrics"

	"github.com/stretchr/testify/require"
)

// run feeds the lines to a fresh interpreter and returns the response lines.
func run(t *testing.T, i *Interpreter, lines ...string) []string {
	t.Helper()
	var out strings.Builder
	require.NoError(t, i.Run(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))
	if out.Len() == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestRoundTrips(t *testing.T) {
	t.Run("session setup commands succeed", func(t *testing.T) {
		got := run(t, NewInterpreter(), "boardsize 9", "komi 6.5", "clear_board")
		require.Equal(t, []string{"=", "=", "="}, got)
	})

	t.Run("playing the same point twice is illegal", func(t *testing.T) {
		got := run(t, NewInterpreter(), "play black d4", "play black d4")
		require.Equal(t, []string{"=", "?"}, got)
	})

	t.Run("empty board is lost by komi", func(t *testing.T) {
		got := run(t, NewInterpreter(), "clear_board", "final_score")
		require.Equal(t, []string{"=", "= -7.5"}, got)
	})

	t.Run("unknown verbs are reported", func(t *testing.T) {
		got := run(t, NewInterpreter(), "frobnicate")
		require.Equal(t, []string{"? unknown command frobnicate"}, got)
	})

	t.Run("a short game is scored", func(t *testing.T) {
		got := run(t, NewInterpreter(),
			"boardsize 9",
			"komi 0.5",
			"clear_board",
			"play B e5",
			"play W pass",
			"final_score",
		)
		require.Equal(t, []string{"=", "=", "=", "=", "=", "= 80.5"}, got)
	})

	t.Run("blank lines get no response", func(t *testing.T) {
		got := run(t, NewInterpreter(), "", "komi 6.5", "   ", "final_score")
		require.Equal(t, []string{"=", "= -6.5"}, got)
	})
}

func TestPlay(t *testing.T) {
	t.Run("legal move is applied to the board", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build))

		resp, ok := i.Execute("play white q16")
		require.True(t, ok)
		require.Equal(t, success(""), resp)
		require.Equal(t, []mockMove{{point: board.PointFrom2D(15, 15), color: board.White}}, f.last().played)
	})

	t.Run("malformed arguments fail like illegal moves", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build))
		for _, line := range []string{"play", "play black", "play purple d4", "play black i9", "play black z99"} {
			resp, _ := i.Execute(line)
			require.Equal(t, failure(""), resp, line)
		}
		require.Empty(t, f.last().played, "No move should reach the board")
	})

	t.Run("board refusing the move is a failure", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build))
		f.last().refuse = true

		resp, _ := i.Execute("play black d4")
		require.False(t, resp.OK)
	})

	t.Run("point outside a small board is illegal", func(t *testing.T) {
		i := NewInterpreter(WithBoardSize(9))
		resp, _ := i.Execute("play black k10")
		require.False(t, resp.OK)
	})
}

func TestBoardsize(t *testing.T) {
	t.Run("records the size without rebuilding the board", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build))
		before := i.Session().Board

		resp, _ := i.Execute("boardsize 13")
		require.True(t, resp.OK)
		require.Equal(t, 13, i.Session().BoardSize)
		require.Same(t, before, i.Session().Board, "boardsize alone should keep the board")
		require.Len(t, f.boards, 1)
	})

	t.Run("clear_board uses the recorded size", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build))

		i.Execute("boardsize 13")
		resp, _ := i.Execute("clear_board")
		require.True(t, resp.OK)
		require.Len(t, f.boards, 2)
		require.Equal(t, 13, f.last().size)
		require.Same(t, Board(f.last()), i.Session().Board)
	})

	t.Run("stones survive boardsize until clear_board", func(t *testing.T) {
		got := run(t, NewInterpreter(), "play black d4", "boardsize 9", "play black d4", "clear_board", "play black d4")
		require.Equal(t, []string{"=", "=", "?", "=", "="}, got)
	})

	t.Run("unparsable sizes keep the previous value", func(t *testing.T) {
		i := NewInterpreter()
		for _, line := range []string{"boardsize", "boardsize nine", "boardsize 9.5"} {
			resp, _ := i.Execute(line)
			require.Equal(t, failure("invalid board size"), resp, line)
		}
		require.Equal(t, DefaultBoardSize, i.Session().BoardSize)
	})

	t.Run("sizes the board cannot hold are refused", func(t *testing.T) {
		i := NewInterpreter()
		i.Execute("boardsize 9")
		for _, line := range []string{"boardsize 0", "boardsize -3", "boardsize 20", "boardsize 25"} {
			resp, _ := i.Execute(line)
			require.Equal(t, failure("unacceptable size"), resp, line)
		}
		require.Equal(t, 9, i.Session().BoardSize)
	})
}

func TestKomi(t *testing.T) {
	t.Run("records the value", func(t *testing.T) {
		i := NewInterpreter()
		resp, _ := i.Execute("komi -3.25")
		require.True(t, resp.OK)
		require.Equal(t, -3.25, i.Session().Komi)
	})

	t.Run("unparsable values keep the previous komi", func(t *testing.T) {
		i := NewInterpreter()
		for _, line := range []string{"komi", "komi six", "komi NaN", "komi Inf", "komi +Inf", "komi -Inf"} {
			resp, _ := i.Execute(line)
			require.Equal(t, failure("invalid komi"), resp, line)
		}
		require.Equal(t, DefaultKomi, i.Session().Komi)
		resp, _ := i.Execute("final_score")
		require.Equal(t, success("-7.5"), resp, "Score should stay finite")
	})
}

func TestFinalScore(t *testing.T) {
	t.Run("one fractional digit", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build), WithKomi(0))

		for score, want := range map[float64]string{3.5: "3.5", -7.5: "-7.5", 12: "12.0", 0: "0.0"} {
			f.last().score = score
			resp, _ := i.Execute("final_score")
			require.Equal(t, success(want), resp)
		}
	})

	t.Run("komi is passed to the board", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build))
		f.last().score = 10

		i.Execute("komi 6.5")
		resp, _ := i.Execute("final_score")
		require.Equal(t, "3.5", resp.Message)
	})
}

func TestInformationCommands(t *testing.T) {
	i := NewInterpreter()

	got := run(t, i, "name", "version", "protocol_version", "known_command play", "known_command frobnicate", "known_command")
	require.Equal(t, []string{"= gtpbench", "= " + Version, "= 2", "= true", "= false", "= false"}, got)

	resp, _ := i.Execute("list_commands")
	require.Equal(t, "boardsize clear_board final_score known_command komi list_commands name play protocol_version quit version", resp.Message)
}

func TestQuit(t *testing.T) {
	got := run(t, NewInterpreter(), "komi 6.5", "quit", "final_score")
	require.Equal(t, []string{"=", "="}, got, "Nothing after quit should be answered")
}

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		i := NewInterpreter()
		require.Equal(t, 19, i.Session().BoardSize)
		require.Equal(t, 7.5, i.Session().Komi)
		require.IsType(t, &board.Board{}, i.Session().Board)
	})

	t.Run("initial size and komi", func(t *testing.T) {
		f := &mockFactory{}
		i := NewInterpreter(WithBoardFactory(f.build), WithBoardSize(9), WithKomi(0.5))
		require.Equal(t, 9, f.last().size)
		require.Equal(t, 0.5, i.Session().Komi)
	})

	t.Run("zero values are ignored", func(t *testing.T) {
		i := NewInterpreter(WithBoardFactory(nil), WithBoardSize(0), WithCollector(nil))
		require.Equal(t, DefaultBoardSize, i.Session().BoardSize)
		require.NotNil(t, i.collector)
	})
}

func TestCollector(t *testing.T) {
	c := metrics.NewCollector()
	i := NewInterpreter(WithCollector(c))

	run(t, i, "boardsize 9", "", "frobnicate", "play black a1")
	report := c.Complete()

	require.Equal(t, 3, report.Session.Commands, "Blank lines should not be observed")
	require.Equal(t, 1, report.Session.Failures)
	require.Equal(t, []string{"boardsize", "frobnicate", "play"}, verbs(report.Commands))
	for _, cmd := range report.Commands {
		require.GreaterOrEqual(t, cmd.Duration, time.Duration(0))
	}
}

func verbs(commands []metrics.CommandMetric) []string {
	out := make([]string, len(commands))
	for n, c := range commands {
		out[n] = c.Verb
	}
	return out
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunErrors(t *testing.T) {
	t.Run("write errors stop the loop", func(t *testing.T) {
		err := NewInterpreter().Run(strings.NewReader("komi 1\n"), failingWriter{})
		require.ErrorContains(t, err, "write response")
	})

	t.Run("read errors are returned", func(t *testing.T) {
		var out strings.Builder
		err := NewInterpreter().Run(failingReader{}, &out)
		require.ErrorContains(t, err, "read command")
	})
}
