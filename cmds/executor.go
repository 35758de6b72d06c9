package cmds

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	e := &Executor{
		commands: make(map[string]*Command),
	}
	e.Define("-h", Func(func() {
		e.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help"))
	return e
}

func (e *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := e.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		e.commands[name] = command
	}
}

var errorType = reflect.TypeFor[error]()

// Execute consumes args from left to right. Each name selects a command;
// the command takes as many following args as its function has parameters.
// Sub commands become visible after their parent is executed.
func (e *Executor) Execute(args []string) error {
	commands := e.commands
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := commands[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}

		if command.Func.IsValid() {
			fnType := command.Func.Type()
			callArgs := make([]reflect.Value, 0, fnType.NumIn())
			for i := range fnType.NumIn() {
				value, err := getArg(fnType.In(i), args)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				if len(args) > 0 {
					args = args[1:]
				}
				callArgs = append(callArgs, value)
			}
			rets := command.Func.Call(callArgs)
			if len(rets) > 0 && !rets[0].IsNil() {
				return rets[0].Interface().(error)
			}
		}

		if len(command.Subs) > 0 {
			commands = maps.Clone(commands)
			for subname, cmd := range command.Subs {
				if _, ok := commands[subname]; ok {
					return fmt.Errorf("duplicated sub command: %s %s", name, subname)
				}
				commands[subname] = cmd
			}
		}
	}
	return nil
}

func (e *Executor) MustExecute(args []string) {
	if err := e.Execute(args); err != nil {
		panic(err)
	}
}
