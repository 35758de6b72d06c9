package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/tce/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

var levelFlags = map[string]slog.Level{
	"-log-debug": slog.LevelDebug,
	"-log-info":  slog.LevelInfo,
	"-log-warn":  slog.LevelWarn,
	"-log-error": slog.LevelError,
}

func init() {
	for name, l := range levelFlags {
		cmds.Define(name, cmds.Func(func() {
			level.Set(l)
		}).Desc("log at "+strings.ToLower(l.String())+" and above"))
	}
}

// SetLevel changes the level shared by every logger of the process.
func SetLevel(l slog.Level) {
	level.Set(l)
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
) Logger {
	var handlers []slog.Handler

	var text slog.Handler
	if !underSystemd() {
		text = slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level: level,
		})
		handlers = append(handlers, text)
	}

	if journal, err := newJournalHandler(); err == nil {
		handlers = append(handlers, journal)
	} else if text != nil {
		record := slog.NewRecord(time.Now(), slog.LevelDebug, "journal unavailable", 0)
		record.Add("error", err)
		_ = text.Handle(context.Background(), record)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func newJournalHandler() (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		Level:        level,
		ReplaceGroup: journalKey,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			a.Key = journalKey(a.Key)
			return a
		},
	})
}

// journal field names are upper case letters, digits and underscores
func journalKey(str string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, strings.ToUpper(str))
}

// underSystemd reports whether the process runs in a .service cgroup.
// Such processes log to the journal only.
func underSystemd() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	for line := range strings.Lines(string(content)) {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 3)
		if len(parts) == 3 && strings.HasSuffix(path.Dir(parts[2]), ".service") {
			return true
		}
	}
	return false
}
