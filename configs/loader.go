package configs

import (
	"fmt"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads cue files on first use. Files listed first take precedence.
type Loader struct {
	load func() ([]file, error)
}

type file struct {
	path  string
	value cue.Value
}

// NewLoader returns a loader for paths. Every file must unify with
// schemaSrc, a list of cue fields closed into one struct; an empty schema
// accepts anything.
func NewLoader(paths []string, schemaSrc string) Loader {
	return Loader{
		load: sync.OnceValues(func() ([]file, error) {
			ctx := cuecontext.New()
			schema, err := compileSchema(ctx, schemaSrc)
			if err != nil {
				return nil, err
			}
			files := make([]file, 0, len(paths))
			for _, path := range paths {
				value, err := compileFile(ctx, schema, path)
				if err != nil {
					return nil, err
				}
				files = append(files, file{
					path:  path,
					value: value,
				})
			}
			return files, nil
		}),
	}
}

func compileSchema(ctx *cue.Context, src string) (cue.Value, error) {
	if src == "" {
		return cue.Value{}, nil
	}
	schema := ctx.CompileString("close({" + src + "})")
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func compileFile(ctx *cue.Context, schema cue.Value, path string) (cue.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, err
	}
	value := ctx.CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile %s: %w", path, err)
	}
	if schema.Exists() {
		if err := schema.Unify(value).Validate(); err != nil {
			return cue.Value{}, fmt.Errorf("validate %s: %w", path, err)
		}
	}
	return value, nil
}

// Paths returns the files that were loaded.
func (l Loader) Paths() ([]string, error) {
	files, err := l.load()
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(files))
	for _, f := range files {
		ret = append(ret, f.path)
	}
	return ret, nil
}

// IterCueValues yields the value at path of every file defining it, in
// load order. A load error is yielded once.
func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		files, err := l.load()
		if err != nil {
			yield(nil, err)
			return
		}
		cuePath := cue.ParsePath(path)
		for _, f := range files {
			value := f.value.LookupPath(cuePath)
			if !value.Exists() {
				continue
			}
			if !yield(&value, nil) {
				return
			}
		}
	}
}

// AssignFirst decodes the first value at path into target, or returns
// ErrValueNotFound.
func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.IterCueValues(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}
	return ErrValueNotFound
}
