package gtp

import "strings"

// Command is one tokenized input line.
type Command struct {
	Verb string
	Args []string
}

// ParseCommand splits a line on whitespace. There is no quoting or escaping.
// Blank lines report false and are skipped without a response, so clients
// must not count them as commands.
func ParseCommand(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Verb: fields[0], Args: fields[1:]}, true
}

// Response is the outcome of one command.
type Response struct {
	OK      bool
	Message string
}

func success(msg string) Response { return Response{OK: true, Message: msg} }

func failure(msg string) Response { return Response{OK: false, Message: msg} }

// String renders the response line without its trailing newline: "=" or "?",
// followed by a space and the message when there is one.
func (r Response) String() string {
	status := "?"
	if r.OK {
		status = "="
	}
	if r.Message == "" {
		return status
	}
	return status + " " + r.Message
}
