package excs

import "runtime"

type Location struct {
	File     string
	Function string
	Line     int
}

func callerLocation(skip int) (loc Location) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return
	}
	loc.File = file
	loc.Line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return
}
