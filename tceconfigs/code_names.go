package tceconfigs

import (
	"github.com/reusee/tce/configs"
)

type CodeName struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// CodeNames maps codes to the names used in log records. Earlier files
// win when several define the same code.
type CodeNames map[int]string

func (Module) CodeNames(
	loader configs.Loader,
) CodeNames {
	ret := make(CodeNames)
	for list := range configs.All[[]CodeName](loader, "codes") {
		for _, entry := range list {
			if _, ok := ret[entry.Code]; ok {
				continue
			}
			ret[entry.Code] = entry.Name
		}
	}
	return ret
}
