package command

import "strings"

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the text after the command with inner spacing preserved.
	RawArgs string
}

// Parse splits a console line into a command and arguments. A leading ' is
// shorthand for say and needs no space after it.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	var cmd, rest string
	if strings.HasPrefix(line, "'") {
		cmd, rest = "'", line[1:]
	} else if word, tail, found := strings.Cut(line, " "); found {
		cmd, rest = word, tail
	} else {
		cmd = line
	}
	rest = strings.TrimSpace(rest)

	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: strings.ToLower(cmd),
		Args:    args,
		RawArgs: rest,
	}
}

// Tail returns RawArgs with the first n words removed, keeping the spacing of
// the remainder.
func (p ParseResult) Tail(n int) string {
	rest := p.RawArgs
	for i := 0; i < n && rest != ""; i++ {
		_, after, found := strings.Cut(rest, " ")
		if !found {
			return ""
		}
		rest = strings.TrimLeft(after, " ")
	}
	return rest
}
