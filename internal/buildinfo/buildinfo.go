package buildinfo

import (
	"runtime/debug"
)

const revisionLength = 7

// Info describes the running binary
type Info struct {
	Revision  string
	Modified  bool
	GoVersion string
}

// Read returns the build information embedded by the go toolchain. Fields are empty
// when the binary was built without vcs stamping.
func Read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}
	return fromBuildInfo(info)
}

// LogArgs returns the build information as structured log arguments
func (i Info) LogArgs() []any {
	return []any{"revision", i.Revision, "modified", i.Modified, "go", i.GoVersion}
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	out := Info{GoVersion: info.GoVersion}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			out.Revision = setting.Value
			if len(out.Revision) > revisionLength {
				out.Revision = out.Revision[:revisionLength]
			}
		case "vcs.modified":
			out.Modified = setting.Value == "true"
		}
	}
	return out
}
