package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sbom-observer/xtask/pkg/log"
)

// OSReleasePath is the freedesktop system identification file
const OSReleasePath = "/etc/os-release"

var ErrUnsupportedPlatform = errors.New("unsupported platform")

type OSKind int

const (
	OSOther OSKind = iota
	OSLinux
	OSMacOS
	OSWindows
)

func (k OSKind) String() string {
	switch k {
	case OSLinux:
		return "Linux"
	case OSMacOS:
		return "macOS"
	case OSWindows:
		return "Windows"
	default:
		return "Other"
	}
}

// ParseOSKind maps a runtime.GOOS value to an OSKind
func ParseOSKind(goos string) OSKind {
	switch goos {
	case "linux":
		return OSLinux
	case "darwin":
		return OSMacOS
	case "windows":
		return OSWindows
	default:
		return OSOther
	}
}

type DistroFamily int

const (
	DistroUnknown DistroFamily = iota
	DistroDebianUbuntu
	DistroFedoraRHEL
	DistroArchLike
)

func (d DistroFamily) String() string {
	switch d {
	case DistroDebianUbuntu:
		return "Debian/Ubuntu"
	case DistroFedoraRHEL:
		return "Fedora/RHEL"
	case DistroArchLike:
		return "Arch"
	default:
		return "Unknown"
	}
}

// distroKeywords is checked in order, the first family with a matching keyword wins
var distroKeywords = []struct {
	family   DistroFamily
	keywords []string
}{
	{DistroDebianUbuntu, []string{"ubuntu", "debian"}},
	{DistroFedoraRHEL, []string{"fedora", "rhel", "centos"}},
	{DistroArchLike, []string{"arch", "cachyos", "manjaro"}},
}

// ClassifyDistro maps the contents of an os-release style file to a distribution family
func ClassifyDistro(osRelease string) DistroFamily {
	s := strings.ToLower(osRelease)
	for _, entry := range distroKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(s, keyword) {
				return entry.family
			}
		}
	}
	return DistroUnknown
}

// Profile is the resolved OS and, on Linux, distribution family
type Profile struct {
	OS     OSKind
	Distro DistroFamily
}

func (p Profile) String() string {
	if p.OS == OSLinux {
		return fmt.Sprintf("%s (%s)", p.OS, p.Distro)
	}
	return p.OS.String()
}

// Detector resolves a Profile. ReadFile is only consulted on Linux.
type Detector struct {
	GOOS     string
	ReadFile func(name string) ([]byte, error)
}

func NewDetector(goos string) *Detector {
	return &Detector{GOOS: goos, ReadFile: os.ReadFile}
}

// Detect fails only for operating systems outside Linux, macOS and Windows.
// An unreadable os-release file classifies as DistroUnknown.
func (d *Detector) Detect() (Profile, error) {
	kind := ParseOSKind(d.GOOS)
	if kind == OSOther {
		return Profile{OS: OSOther}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, d.GOOS)
	}

	profile := Profile{OS: kind}
	if kind != OSLinux {
		return profile, nil
	}

	var contents string
	data, err := d.ReadFile(OSReleasePath)
	if err != nil {
		log.Debug("could not read system identification file", "path", OSReleasePath, "err", err)
	} else {
		contents = string(data)
	}

	profile.Distro = ClassifyDistro(contents)
	log.Debug("detected platform", "profile", profile.String())

	return profile, nil
}

// IsRoot reports whether the process runs with an effective uid of 0. Always false on Windows.
func IsRoot() bool {
	return os.Geteuid() == 0
}
