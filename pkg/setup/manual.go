package setup

import (
	"fmt"
	"io"

	"github.com/sbom-observer/xtask/pkg/platform"
)

const windowsInstructions = `Automatic dependency setup is not available on Windows.
Install the following manually:

  1. Microsoft C++ Build Tools ("Desktop development with C++")
     https://visualstudio.microsoft.com/visual-cpp-build-tools/
  2. Microsoft Edge WebView2 runtime (preinstalled on Windows 10 1803+ and 11)
     https://developer.microsoft.com/microsoft-edge/webview2/
  3. Rust via rustup, using the MSVC toolchain
     https://rustup.rs
  4. The Tauri CLI: cargo install tauri-cli --version "^2"
`

const unknownLinuxInstructions = `Could not detect a supported Linux distribution (Debian/Ubuntu, Fedora/RHEL, Arch).
Install the equivalents of these packages with your package manager:

  webkit2gtk 4.1 (development headers)
  a C/C++ toolchain (gcc, make, pkg-config)
  curl, wget, file
  openssl (development headers)
  libayatana-appindicator or libappindicator (gtk3, development headers)
  librsvg2 (development headers)

Then install the AppImage packaging helper:

  mkdir -p ~/.local/bin
  curl -fsSL -o ~/.local/bin/appimagetool-$(uname -m).AppImage \
    https://github.com/AppImage/appimagetool/releases/download/continuous/appimagetool-$(uname -m).AppImage
  chmod +x ~/.local/bin/appimagetool-$(uname -m).AppImage
  ln -sf ~/.local/bin/appimagetool-$(uname -m).AppImage ~/.local/bin/appimagetool
`

// WriteManualInstructions prints setup steps for profiles without a package plan
func WriteManualInstructions(w io.Writer, profile platform.Profile) error {
	var text string
	switch profile.OS {
	case platform.OSWindows:
		text = windowsInstructions
	case platform.OSLinux:
		text = unknownLinuxInstructions
	default:
		return fmt.Errorf("%w: no setup instructions for %s", platform.ErrUnsupportedPlatform, profile)
	}

	_, err := io.WriteString(w, text)
	return err
}
