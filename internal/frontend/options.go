package frontend

import (
	"fmt"
	"strings"
)

// Loader selects how the analysed file and its package are loaded.
type Loader string

const (
	LoaderSource   Loader = "source"
	LoaderPackages Loader = "packages"
)

// PackageMode selects whether sibling files are type-checked with the target.
type PackageMode string

const (
	ModeFile    PackageMode = "file"
	ModePackage PackageMode = "package"
)

type Options struct {
	Loader      Loader
	PackageMode PackageMode
	Tags        []string
	// GoVersion limits language features, e.g. "go1.21". Empty means no limit.
	GoVersion string
}

func ParseLoader(s string) (Loader, error) {
	switch l := Loader(strings.ToLower(strings.TrimSpace(s))); l {
	case "", LoaderSource:
		return LoaderSource, nil
	case LoaderPackages:
		return l, nil
	}
	return "", fmt.Errorf("unknown loader %q (want source or packages)", s)
}

func ParsePackageMode(s string) (PackageMode, error) {
	switch m := PackageMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeFile:
		return ModeFile, nil
	case ModePackage:
		return m, nil
	}
	return "", fmt.Errorf("unknown package mode %q (want file or package)", s)
}

// NormalizeGoVersion accepts "1.22" or "go1.22" and returns "go1.22".
func NormalizeGoVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "go") {
		return v
	}
	return "go" + v
}
