// Package version provides build and version information.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Twilight, lunar phase, Saturn rings and planetary central meridians
// 0.2.0 - JPL Horizons ephemeris with offline fallback, --ephem flag
// 0.1.0 - Initial release: rise/transit/set solver, sky view, headless report

// UserAgent identifies the application to remote ephemeris services.
func UserAgent() string {
	return fmt.Sprintf("ls-almanac/%s (%s; %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
