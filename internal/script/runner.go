// Package script drives a symbol table from a line-oriented command script,
// the way a parser and checker drive it while walking a program.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"symtab/internal/diag"
	"symtab/internal/symbols"
	"symtab/internal/symfmt"
	"symtab/internal/trace"
	"symtab/internal/values"
)

// Runner executes commands against one table and writes one result line per
// command to Out. With a structured listing format Out receives only the
// listings. Failures become diagnostics; execution continues.
type Runner struct {
	Table    *symbols.Table
	Out      io.Writer
	Reporter diag.Reporter
	List     symfmt.Opts
	Label    string // listing label, usually the script path
}

// Run executes cmds in order. It stops early only when ctx is cancelled or
// Out fails.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		span := trace.Begin(tracer, trace.ScopeCommand, string(cmd.Op), parent)
		result, err := r.exec(cmd)
		if err != nil {
			r.report(cmd.Pos, err)
			result = "error"
		}
		span.End(result)
		if result == "" || r.List.Format != symfmt.FormatPretty {
			continue
		}
		if _, err := fmt.Fprintf(r.Out, "%s -> %s\n", cmd, result); err != nil {
			return err
		}
	}
	return nil
}

// exec runs one command and returns its result text. An empty result means
// the command wrote its own output.
func (r *Runner) exec(cmd Command) (string, error) {
	a := cmd.Args
	switch cmd.Op {
	case OpInsert:
		return r.insert(cmd)
	case OpLookup:
		scope, err := parseScope(a[1])
		if err != nil {
			return "", err
		}
		return describe(r.Table.LookupByName(a[0], scope)), nil
	case OpLookupID:
		id, scope, err := parseIDScope(a[0], a[1])
		if err != nil {
			return "", err
		}
		return describe(r.Table.LookupByID(id, scope)), nil
	case OpExists:
		scope, err := parseScope(a[1])
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(r.Table.ExistsByName(a[0], scope)), nil
	case OpExistsID:
		id, scope, err := parseIDScope(a[0], a[1])
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(r.Table.ExistsByID(id, scope)), nil
	case OpUpdate:
		id, scope, err := parseIDScope(a[0], a[2])
		if err != nil {
			return "", err
		}
		if err := r.Table.UpdateValue(id, a[1], scope); err != nil {
			return "", err
		}
		if !r.Table.ExistsByID(id, scope) {
			return "not found", nil
		}
		return "ok", nil
	case OpDelete:
		r.Table.DeleteByName(a[0])
		return "ok", nil
	case OpDeleteID:
		id, err := parseID(a[0])
		if err != nil {
			return "", err
		}
		r.Table.DeleteByID(id)
		return "ok", nil
	case OpDiscard:
		scope, err := parseScope(a[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %d", r.Table.DiscardScope(scope)), nil
	case OpClear:
		r.Table.Clear()
		return "ok", nil
	case OpList:
		if err := symfmt.Write(r.Out, symfmt.Snapshot(r.Label, r.Table), r.List); err != nil {
			return "", err
		}
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", errUnknownOp, cmd.Op)
}

func (r *Runner) insert(cmd Command) (string, error) {
	name, typ, value := cmd.Args[0], cmd.Args[1], cmd.Args[2]
	scope, err := parseScope(cmd.Args[3])
	if err != nil {
		return "", err
	}
	isConst, uninit := false, false
	for _, flag := range cmd.Args[4:] {
		switch strings.ToLower(flag) {
		case "const":
			isConst = true
		case "uninit":
			uninit = true
		default:
			return "", fmt.Errorf("%w: %q (expected const or uninit)", errBadFlag, flag)
		}
	}
	if value == "-" {
		value, uninit = "", true
	}

	prev, shadowed := r.Table.LookupByName(name, scope)
	id, err := r.Table.Insert(name, typ, value, scope, isConst, !uninit)
	if err != nil {
		return "", err
	}
	if shadowed {
		if prev.ScopeLevel == scope {
			diag.ReportWarning(r.Reporter, diag.TblDuplicate, cmd.Pos,
				fmt.Sprintf("%s is already declared in scope %d (id %d)", name, scope, prev.ID))
		} else {
			diag.ReportInfo(r.Reporter, diag.TblShadow, cmd.Pos,
				fmt.Sprintf("%s shadows the scope %d binding (id %d)", name, prev.ScopeLevel, prev.ID))
		}
	}
	return "id " + id.String(), nil
}

func describe(e symbols.Entry, ok bool) string {
	if !ok {
		return "not found"
	}
	value := e.Value
	if !e.IsInitialized {
		value = "<uninitialized>"
	}
	s := fmt.Sprintf("id %d %s %s = %s (scope %d)", e.ID, e.Name, e.Type, value, e.ScopeLevel)
	if e.IsConst {
		s += " const"
	}
	return s
}

var (
	errUnknownOp = errors.New("unknown command")
	errBadNumber = errors.New("malformed number")
	errBadFlag   = errors.New("unknown flag")
)

func parseScope(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: scope %q", errBadNumber, s)
	}
	return n, nil
}

func parseID(s string) (symbols.EntryID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", errBadNumber, s)
	}
	return symbols.EntryID(n), nil
}

func parseIDScope(idText, scopeText string) (symbols.EntryID, int, error) {
	id, err := parseID(idText)
	if err != nil {
		return 0, 0, err
	}
	scope, err := parseScope(scopeText)
	if err != nil {
		return 0, 0, err
	}
	return id, scope, nil
}

// report maps err onto a diagnostic code.
func (r *Runner) report(pos diag.Pos, err error) {
	code := diag.UnknownCode
	switch {
	case errors.Is(err, symbols.ErrNameTooLong):
		code = diag.TblNameTooLong
	case errors.Is(err, symbols.ErrTypeTooLong):
		code = diag.TblTypeTooLong
	case errors.Is(err, symbols.ErrValueTooLong):
		code = diag.TblValueTooLong
	case errors.Is(err, values.ErrInvalidValueFormat):
		code = diag.TblInvalidValue
	case errors.Is(err, symbols.ErrInvalidName):
		code = diag.TblInvalidName
	case errors.Is(err, symbols.ErrInvalidScope):
		code = diag.TblInvalidScope
	case errors.Is(err, symbols.ErrAllocation):
		code = diag.TblAllocation
	case errors.Is(err, errBadNumber):
		code = diag.ScrBadNumber
	case errors.Is(err, errBadFlag):
		code = diag.ScrBadFlag
	case errors.Is(err, errUnknownOp):
		code = diag.ScrUnknownCommand
	}
	diag.ReportError(r.Reporter, code, pos, err.Error())
}
