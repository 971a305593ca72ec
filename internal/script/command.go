package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"symtab/internal/diag"
)

// Op names a script command.
type Op string

const (
	OpInsert   Op = "insert"
	OpLookup   Op = "lookup"
	OpLookupID Op = "lookup-id"
	OpExists   Op = "exists"
	OpExistsID Op = "exists-id"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
	OpDeleteID Op = "delete-id"
	OpDiscard  Op = "discard"
	OpClear    Op = "clear"
	OpList     Op = "list"
)

// arity gives the minimum and maximum argument counts of each command.
var arity = map[Op][2]int{
	OpInsert:   {4, 6},
	OpLookup:   {2, 2},
	OpLookupID: {2, 2},
	OpExists:   {2, 2},
	OpExistsID: {2, 2},
	OpUpdate:   {3, 3},
	OpDelete:   {1, 1},
	OpDeleteID: {1, 1},
	OpDiscard:  {1, 1},
	OpClear:    {0, 0},
	OpList:     {0, 0},
}

// Command is one parsed script line.
type Command struct {
	Op   Op
	Args []string
	Pos  diag.Pos
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Op)
	}
	return string(c.Op) + " " + strings.Join(c.Args, " ")
}

// Parse reads commands from r. Malformed lines are reported and skipped.
func Parse(r io.Reader, file string, rep diag.Reporter) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		pos := diag.Pos{File: file, Line: line}
		fields, err := splitFields(sc.Text())
		if err != nil {
			diag.ReportError(rep, diag.ScrUnterminated, pos, err.Error())
			continue
		}
		if len(fields) == 0 {
			continue
		}
		op := Op(strings.ToLower(fields[0]))
		bounds, ok := arity[op]
		if !ok {
			diag.ReportError(rep, diag.ScrUnknownCommand, pos, fmt.Sprintf("unknown command %q", fields[0]))
			continue
		}
		args := fields[1:]
		if len(args) < bounds[0] || len(args) > bounds[1] {
			diag.ReportError(rep, diag.ScrArgCount, pos, argCountMessage(op, bounds, len(args)))
			continue
		}
		cmds = append(cmds, Command{Op: op, Args: args, Pos: pos})
	}
	if err := sc.Err(); err != nil {
		return cmds, fmt.Errorf("%s: %w", file, err)
	}
	return cmds, nil
}

func argCountMessage(op Op, bounds [2]int, got int) string {
	if bounds[0] == bounds[1] {
		return fmt.Sprintf("%s takes %d argument(s), got %d", op, bounds[0], got)
	}
	return fmt.Sprintf("%s takes %d to %d arguments, got %d", op, bounds[0], bounds[1], got)
}
