package tceconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/tce/cmds"
	"github.com/reusee/tce/configs"
	"github.com/reusee/tce/logs"
)

//go:embed schema.cue
var schema string

var (
	configFlag   = cmds.Var[string]("-config", "load this config file instead of searching")
	noConfigFlag = cmds.Switch("-no-config", "do not load any config file")
)

// Filenames are looked up in the working directory, the user config
// directory and /etc, in that order.
var Filenames = []string{
	"tce.cue",
	".tce.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Debug("config files",
				"paths", paths,
			)
		}
	}()

	if *configFlag != "" {
		paths = append(paths, *configFlag)
	}
	if *noConfigFlag {
		return configs.NewLoader(paths, schema)
	}

	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range Filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}

// Schema returns the cue schema config files are validated against.
func Schema() string {
	return schema
}
