package routedoc

import (
	"fmt"
	"runtime/debug"
)

// VersionResolver looks up the API version from packaging metadata.
type VersionResolver interface {
	ResolveVersion(p Project) (string, error)
}

// BuildInfoVersion resolves the version of a module compiled into the
// running binary.
type BuildInfoVersion struct {
	// ReadBuildInfo defaults to debug.ReadBuildInfo.
	ReadBuildInfo func() (*debug.BuildInfo, bool)
}

// ResolveVersion implements VersionResolver.
func (b BuildInfoVersion) ResolveVersion(p Project) (string, error) {
	read := b.ReadBuildInfo
	if read == nil {
		read = debug.ReadBuildInfo
	}

	info, ok := read()
	if !ok || info == nil {
		return "", fmt.Errorf("%w: no build info", ErrVersionNotFound)
	}

	mods := append([]*debug.Module{&info.Main}, info.Deps...)
	for _, m := range mods {
		if m == nil || m.Path != p.Module {
			continue
		}
		if m.Replace != nil && m.Replace.Version != "" {
			return m.Replace.Version, nil
		}
		if m.Version == "" || m.Version == "(devel)" {
			break
		}
		return m.Version, nil
	}
	return "", fmt.Errorf("%w: module %s", ErrVersionNotFound, p.Module)
}
