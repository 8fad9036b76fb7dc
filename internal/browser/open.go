// Package browser opens pages of the service in the user's web browser.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Open opens url in the browser named by $BROWSER, or the platform default.
func Open(url string) error {
	cmd, err := command(runtime.GOOS, os.Getenv("BROWSER"), url)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, browserEnv, url string) (*exec.Cmd, error) {
	if fields := strings.Fields(browserEnv); len(fields) > 0 {
		return exec.Command(fields[0], append(fields[1:], url)...), nil
	}
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
