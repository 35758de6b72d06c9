package tceconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tce/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
