package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

var osExit = os.Exit

type ExecutionContext struct {
	Out *Output
}

func (ref *ExecutionContext) Exit(exitCode int) {
	osExit(exitCode)
}

func NewExecutionContext(cmdName string, quiet bool) *ExecutionContext {
	ref := &ExecutionContext{
		Out: NewOutput(cmdName, quiet),
	}

	return ref
}

// Output writes the command state and diagnostics (never the command results) to stderr
type Output struct {
	CmdName string
	Quiet   bool
	Writer  io.Writer
}

func NewOutput(cmdName string, quiet bool) *Output {
	ref := &Output{
		CmdName: cmdName,
		Quiet:   quiet,
		Writer:  os.Stderr,
	}

	return ref
}

func NoColor() {
	color.NoColor = true
}

type OutVars map[string]interface{}

var (
	errcolor = color.New(color.FgHiRed)
	itcolor  = color.New(color.FgMagenta, color.Bold).SprintFunc()
	kcolor   = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	vcolor   = color.New(color.FgHiBlue).SprintfFunc()
)

func formatVars(kvSet OutVars) string {
	if len(kvSet) == 0 {
		return ""
	}

	keys := make([]string, 0, len(kvSet))
	for k := range kvSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, k := range keys {
		builder.WriteString(" ")
		builder.WriteString(kcolor(k))
		builder.WriteString("=")
		builder.WriteString(fmt.Sprintf("'%s'", vcolor("%v", kvSet[k])))
	}

	return builder.String()
}

// Error is always shown (even in the quiet mode)
func (ref *Output) Error(errType string, data string) {
	errcolor.Fprintf(ref.Writer, "cmd=%s error=%s message='%s'\n", ref.CmdName, errType, data)
}

func (ref *Output) State(state string, params ...OutVars) {
	if ref.Quiet {
		return
	}

	var info string
	if len(params) > 0 {
		info = formatVars(params[0])
	}

	fmt.Fprintf(ref.Writer, "cmd=%s state=%s%s\n", ref.CmdName, state, info)
}

func (ref *Output) Info(infoType string, params ...OutVars) {
	if ref.Quiet {
		return
	}

	var data string
	if len(params) > 0 {
		data = formatVars(params[0])
	}

	fmt.Fprintf(ref.Writer, "cmd=%s info=%s%s\n", ref.CmdName, itcolor(infoType), data)
}
