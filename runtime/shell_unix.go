//go:build !windows

package runtime

func shellCommand(command string) (string, []string) {
	return "/bin/sh", []string{"-c", command}
}
