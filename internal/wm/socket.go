package wm

import (
	"os"
	"os/exec"
	"strings"

	"github.com/i3keep/i3keep/internal/errdefs"
)

// SocketPath locates the window manager's IPC socket. The environment is
// checked first (I3SOCK, then SWAYSOCK), then i3 and sway are asked
// directly; the first answer wins.
func SocketPath() (string, error) {
	if p := os.Getenv("I3SOCK"); p != "" {
		return p, nil
	}
	if p := os.Getenv("SWAYSOCK"); p != "" {
		return p, nil
	}
	for _, name := range []string{"i3", "sway"} {
		out, err := exec.Command(name, "--get-socketpath").Output()
		if err != nil {
			continue
		}
		if p := strings.TrimSpace(string(out)); p != "" {
			return p, nil
		}
	}
	return "", errdefs.New(errdefs.CodeConnectionFailure,
		"cannot locate the i3 or sway IPC socket; is the window manager running?")
}
