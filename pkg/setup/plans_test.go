package setup

import (
	"testing"

	"github.com/sbom-observer/xtask/pkg/platform"
	"github.com/stretchr/testify/require"
)

func TestPlanFor(t *testing.T) {
	r := require.New(t)

	for _, distro := range []platform.DistroFamily{platform.DistroDebianUbuntu, platform.DistroFedoraRHEL, platform.DistroArchLike} {
		plan, ok := PlanFor(platform.Profile{OS: platform.OSLinux, Distro: distro})
		r.True(ok, distro.String())
		r.True(plan.Privileged)
		r.True(plan.InstallsTool)
		r.Equal(distro == platform.DistroArchLike, plan.ContinueOnNonzeroExit)
	}

	plan, ok := PlanFor(platform.Profile{OS: platform.OSMacOS})
	r.True(ok)
	r.Equal("brew", plan.Manager)
	r.False(plan.Privileged)
	r.False(plan.InstallsTool)

	_, ok = PlanFor(platform.Profile{OS: platform.OSLinux, Distro: platform.DistroUnknown})
	r.False(ok)
	_, ok = PlanFor(platform.Profile{OS: platform.OSWindows})
	r.False(ok)
}

func TestPlanCommands(t *testing.T) {
	r := require.New(t)
	plan := PackagePlan{
		Manager:    "apt-get",
		Refresh:    []string{"update"},
		Install:    []string{"install", "-y"},
		Packages:   []string{"curl", "file"},
		Privileged: true,
	}

	var got [][]string
	for _, c := range plan.Commands(false) {
		got = append(got, append([]string{c.Program}, c.Args...))
	}
	r.Equal([][]string{
		{"sudo", "apt-get", "update"},
		{"sudo", "apt-get", "install", "-y", "curl", "file"},
	}, got)

	got = nil
	for _, c := range plan.Commands(true) {
		got = append(got, append([]string{c.Program}, c.Args...))
	}
	r.Equal([][]string{
		{"apt-get", "update"},
		{"apt-get", "install", "-y", "curl", "file"},
	}, got)

	r.Equal([]string{"curl", "file"}, plan.Packages, "expanding must not alias the package list")
}

func TestDebianPackageList(t *testing.T) {
	plan, _ := PlanFor(platform.Profile{OS: platform.OSLinux, Distro: platform.DistroDebianUbuntu})
	require.Len(t, plan.Packages, 8)
}
