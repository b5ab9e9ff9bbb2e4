package setup

import (
	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/platform"
)

// PackagePlan is the package manager invocation that installs the native
// build prerequisites for one platform profile.
type PackagePlan struct {
	Manager string
	// Refresh is the optional index update step, nil means none
	Refresh []string
	Install []string
	// Packages are appended to Install in this order
	Packages []string
	// Privileged plans are run through sudo unless already root
	Privileged bool
	// ContinueOnNonzeroExit downgrades a failing step to a warning
	ContinueOnNonzeroExit bool
	// InstallsTool controls whether the AppImage helper is installed after the packages
	InstallsTool bool
}

var plans = map[platform.Profile]PackagePlan{
	{OS: platform.OSLinux, Distro: platform.DistroDebianUbuntu}: {
		Manager: "apt-get",
		Refresh: []string{"update"},
		Install: []string{"install", "-y"},
		Packages: []string{
			"libwebkit2gtk-4.1-dev",
			"build-essential",
			"curl",
			"wget",
			"file",
			"libssl-dev",
			"libayatana-appindicator3-dev",
			"librsvg2-dev",
		},
		Privileged:   true,
		InstallsTool: true,
	},
	{OS: platform.OSLinux, Distro: platform.DistroFedoraRHEL}: {
		Manager: "dnf",
		Install: []string{"install", "-y"},
		Packages: []string{
			"webkit2gtk4.1-devel",
			"openssl-devel",
			"curl",
			"wget",
			"file",
			"libappindicator-gtk3-devel",
			"librsvg2-devel",
			"@development-tools",
		},
		Privileged:   true,
		InstallsTool: true,
	},
	{OS: platform.OSLinux, Distro: platform.DistroArchLike}: {
		Manager: "pacman",
		Install: []string{"-S", "--needed", "--noconfirm"},
		Packages: []string{
			"webkit2gtk-4.1",
			"base-devel",
			"curl",
			"wget",
			"file",
			"openssl",
			"appmenu-gtk-module",
			"libappindicator-gtk3",
			"librsvg",
		},
		Privileged: true,
		// pacman exits nonzero for packages that are already up to date or renamed upstream
		ContinueOnNonzeroExit: true,
		InstallsTool:          true,
	},
	{OS: platform.OSMacOS}: {
		Manager: "brew",
		Refresh: []string{"update"},
		Install: []string{"install"},
		Packages: []string{
			"pkg-config",
			"openssl@3",
		},
	},
}

// PlanFor returns the plan for profile. false means the platform needs manual setup.
func PlanFor(profile platform.Profile) (PackagePlan, bool) {
	plan, ok := plans[profile]
	return plan, ok
}

// Commands expands the plan into the commands to spawn, refresh first
func (p PackagePlan) Commands(asRoot bool) []execx.Command {
	var commands []execx.Command
	if len(p.Refresh) > 0 {
		commands = append(commands, p.command(asRoot, p.Refresh))
	}

	install := make([]string, 0, len(p.Install)+len(p.Packages))
	install = append(install, p.Install...)
	install = append(install, p.Packages...)
	commands = append(commands, p.command(asRoot, install))

	return commands
}

func (p PackagePlan) command(asRoot bool, args []string) execx.Command {
	if p.Privileged && !asRoot {
		return execx.Command{Program: "sudo", Args: append([]string{p.Manager}, args...)}
	}
	return execx.Command{Program: p.Manager, Args: append([]string(nil), args...)}
}
