//go:build !unix

package shell

import "os/exec"

func configureProcess(_ *exec.Cmd) {}
