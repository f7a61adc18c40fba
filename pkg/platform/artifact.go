// SPDX-License-Identifier: MPL-2.0

package platform

import "fmt"

const (
	ArtifactExecutable ArtifactKind = iota
	// ArtifactApp is an application bundle.
	ArtifactApp
	ArtifactDynamicLibrary
	ArtifactStaticLibrary
	// ArtifactPkgConfig is a pkg-config description of a library.
	ArtifactPkgConfig
	// ArtifactFramework and ArtifactXCFramework are Apple-only bundle formats.
	ArtifactFramework
	ArtifactXCFramework
)

// ArtifactKind is a kind of file a build target produces.
type ArtifactKind int

// String returns the lowercase name of the artifact kind.
func (k ArtifactKind) String() string {
	switch k {
	case ArtifactExecutable:
		return "executable"
	case ArtifactApp:
		return "app"
	case ArtifactDynamicLibrary:
		return "dynlib"
	case ArtifactStaticLibrary:
		return "staticlib"
	case ArtifactPkgConfig:
		return "pkgconfig"
	case ArtifactFramework:
		return "framework"
	case ArtifactXCFramework:
		return "xcframework"
	default:
		return fmt.Sprintf("ArtifactKind(%d)", int(k))
	}
}

// ArtifactExtension returns the file suffix of kind on the target.
func (p Profile) ArtifactExtension(kind ArtifactKind) (string, error) {
	switch kind {
	case ArtifactExecutable:
		return p.ExecutableExtension(), nil
	case ArtifactDynamicLibrary:
		return p.DynamicLibraryExtension(), nil
	case ArtifactApp:
		return ".app", nil
	case ArtifactStaticLibrary:
		return ".a", nil
	case ArtifactPkgConfig:
		return ".pc", nil
	case ArtifactFramework, ArtifactXCFramework:
		if !p.family.IsApple() {
			return "", &UnsupportedArtifactError{Kind: kind, Family: p.family}
		}
		if kind == ArtifactFramework {
			return ".framework", nil
		}
		return ".xcframework", nil
	default:
		return "", &UnsupportedArtifactError{Kind: kind, Family: p.family}
	}
}

// ArtifactFileName returns base with the target's suffix for kind appended.
// Names the target reserves are rejected with *ReservedFileNameError.
func (p Profile) ArtifactFileName(kind ArtifactKind, base string) (string, error) {
	ext, err := p.ArtifactExtension(kind)
	if err != nil {
		return "", err
	}
	name := base + ext
	if p.IsReservedFileName(name) {
		return "", &ReservedFileNameError{Name: name, Family: p.family}
	}
	return name, nil
}

// SharedLibraryLinkArgs returns the compiler driver arguments that link a
// shared library to output. importLib is the import library written next to
// a Windows DLL and is ignored elsewhere.
func (p Profile) SharedLibraryLinkArgs(output, importLib string) []string {
	switch {
	case p.family.IsApple():
		return []string{"-dynamiclib", "-o", output}
	case p.family == FamilyWindows:
		args := []string{"-shared", "-o", output}
		if importLib != "" {
			args = append(args, "-Wl,--out-implib,"+importLib)
		}
		return args
	default:
		return []string{"-shared", "-o", output}
	}
}
