// Package gtp interprets a line-oriented, GTP-like command protocol on top of
// a Go board. Each input line yields exactly one response line: "=" on
// success, "?" on failure, optionally followed by a space and a message.
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"gtpbench/board"
	"gtpbench/metrics"

	"github.com/rs/zerolog/log"
)

const (
	Name            = "gtpbench"
	Version         = "1.0"
	ProtocolVersion = "2"
)

type Option func(i *Interpreter)

type handler func(i *Interpreter, args []string) Response

type Interpreter struct {
	session   *Session
	newBoard  BoardFactory
	collector metrics.Collector
	handlers  map[string]handler
	quit      bool
}

func WithBoardFactory(factory BoardFactory) Option {
	return func(i *Interpreter) {
		if factory != nil {
			i.newBoard = factory
		}
	}
}

func WithBoardSize(size int) Option {
	return func(i *Interpreter) {
		if size > 0 {
			i.session.BoardSize = size
		}
	}
}

func WithKomi(komi float64) Option {
	return func(i *Interpreter) {
		i.session.Komi = komi
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(i *Interpreter) {
		if collector != nil {
			i.collector = collector
		}
	}
}

func NewInterpreter(options ...Option) *Interpreter {
	i := &Interpreter{ // Default values
		session:   &Session{BoardSize: DefaultBoardSize, Komi: DefaultKomi},
		newBoard:  NewBoard,
		collector: metrics.NewDummyCollector(),
		handlers: map[string]handler{
			"play":             (*Interpreter).play,
			"boardsize":        (*Interpreter).boardsize,
			"komi":             (*Interpreter).komi,
			"clear_board":      (*Interpreter).clearBoard,
			"final_score":      (*Interpreter).finalScore,
			"name":             constant(Name),
			"version":          constant(Version),
			"protocol_version": constant(ProtocolVersion),
			"known_command":    (*Interpreter).knownCommand,
			"list_commands":    (*Interpreter).listCommands,
			"quit":             (*Interpreter).quitCommand,
		},
	}
	for _, option := range options {
		option(i)
	}
	i.session.Board = i.newBoard(i.session.BoardSize)
	return i
}

// Session exposes the interpreter's state.
func (i *Interpreter) Session() *Session {
	return i.session
}

// Run answers every line of r on w until end of input or quit.
func (i *Interpreter) Run(r io.Reader, w io.Writer) error {
	i.collector.Start()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		resp, ok := i.Execute(scanner.Text())
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if i.quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command: %w", err)
	}
	return nil
}

// Execute runs a single line. It reports false, with no response, for blank
// lines.
func (i *Interpreter) Execute(line string) (Response, bool) {
	cmd, ok := ParseCommand(line)
	if !ok {
		return Response{}, false
	}

	start := time.Now()
	resp := i.dispatch(cmd)
	elapsed := time.Since(start)

	i.collector.Observe(cmd.Verb, resp.OK, elapsed)
	log.Debug().Str("verb", cmd.Verb).Strs("args", cmd.Args).Bool("ok", resp.OK).Dur("took", elapsed).Msg("command")
	return resp, true
}

func (i *Interpreter) dispatch(cmd Command) Response {
	h, ok := i.handlers[cmd.Verb]
	if !ok {
		log.Warn().Str("verb", cmd.Verb).Msg("unknown command")
		return failure("unknown command " + cmd.Verb)
	}
	return h(i, cmd.Args)
}

// play answers "?" without a message for any move it cannot apply, including
// missing or unparsable arguments.
func (i *Interpreter) play(args []string) Response {
	if len(args) < 2 {
		return failure("")
	}
	c, err := board.ParseColor(args[0])
	if err != nil {
		return failure("")
	}
	p, err := board.ParsePoint(args[1])
	if err != nil {
		return failure("")
	}
	if !i.session.Board.IsLegalMove(p, c) {
		return failure("")
	}
	if !i.session.Board.PlayMove(p, c) {
		return failure("")
	}
	return success("")
}

// boardsize only records the size; the board is rebuilt by clear_board.
func (i *Interpreter) boardsize(args []string) Response {
	if len(args) < 1 {
		return failure("invalid board size")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return failure("invalid board size")
	}
	if size < 1 || size > board.MaxSize {
		return failure("unacceptable size")
	}
	i.session.BoardSize = size
	return success("")
}

func (i *Interpreter) komi(args []string) Response {
	if len(args) < 1 {
		return failure("invalid komi")
	}
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsNaN(komi) || math.IsInf(komi, 0) {
		return failure("invalid komi")
	}
	i.session.Komi = komi
	return success("")
}

func (i *Interpreter) clearBoard(args []string) Response {
	i.session.Board = i.newBoard(i.session.BoardSize)
	return success("")
}

func (i *Interpreter) finalScore(args []string) Response {
	score := i.session.Board.Score(i.session.Komi)
	return success(strconv.FormatFloat(score, 'f', 1, 64))
}

func (i *Interpreter) knownCommand(args []string) Response {
	if len(args) < 1 {
		return success("false")
	}
	_, ok := i.handlers[args[0]]
	return success(strconv.FormatBool(ok))
}

func (i *Interpreter) listCommands(args []string) Response {
	verbs := make([]string, 0, len(i.handlers))
	for verb := range i.handlers {
		verbs = append(verbs, verb)
	}
	slices.Sort(verbs)
	return success(strings.Join(verbs, " "))
}

func (i *Interpreter) quitCommand(args []string) Response {
	i.quit = true
	return success("")
}

func constant(msg string) handler {
	return func(*Interpreter, []string) Response { return success(msg) }
}

