package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tce/excs"
)

type Module struct {
	dscope.Module
	Excs excs.Module
}
