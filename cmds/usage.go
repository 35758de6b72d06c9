package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	seen := make(map[*Command]bool)
	names := make([]string, 0, len(p.commands))
	for name := range p.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		cmd := p.commands[name]
		if seen[cmd] || slices.Contains(cmd.Aliases, name) {
			continue
		}
		seen[cmd] = true
		writeCommand(w, 0, name, cmd)
	}
}

func writeCommand(w io.Writer, indent int, name string, cmd *Command) {
	if cmd == nil {
		return
	}
	names := append([]string{name}, cmd.Aliases...)
	line := strings.Repeat("  ", indent) + strings.Join(names, ", ")
	if cmd.Description != "" {
		line += "\t" + cmd.Description
	}
	fmt.Fprintln(w, line)
	subs := make([]string, 0, len(cmd.Subs))
	for sub := range cmd.Subs {
		subs = append(subs, sub)
	}
	slices.Sort(subs)
	for _, sub := range subs {
		writeCommand(w, indent+1, sub, cmd.Subs[sub])
	}
}
