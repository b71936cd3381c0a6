package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Definidos via ldflags, ex.: -X github.com/diillson/bikeshare-dashboard-go/pkg/version.Version=1.2.0
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

const devVersion = "0.0.0-dev"

// Info descreve o binário em execução.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Dirty     bool
}

// Current junta os valores de ldflags com o que o Go embute no binário. ldflags têm precedência.
func Current() Info {
	info := Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = withBuildInfo(info, bi)
	}
	return info
}

func withBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" && len(s.Value) >= 7 {
				info.Commit = s.Value[:7]
			}
		case "vcs.time":
			if ts, err := time.Parse(time.RFC3339, s.Value); err == nil && info.BuildTime == "" {
				info.BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
			}
		case "vcs.modified":
			info.Dirty = strings.EqualFold(s.Value, "true")
		}
	}
	return info
}

// String formata a versão, ex.: "1.2.0 (commit: abc1234, built at: 2026-01-02T03:04:05Z)".
func (i Info) String() string {
	ver := i.Version
	if ver == "" {
		ver = devVersion
	}
	if i.Dirty {
		ver += "-dirty"
	}

	switch {
	case i.Commit == "":
		return fmt.Sprintf("%s (development)", ver)
	case i.BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, i.Commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, i.Commit, i.BuildTime)
	}
}

// FormatVersion retorna a versão atual formatada para o banner e para --version.
func FormatVersion() string {
	return Current().String()
}
