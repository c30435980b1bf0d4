// Package xcresulttool runs `xcrun xcresulttool` to read the reports of an xcresult bundle.
package xcresulttool

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-xcresult-report/xcresult"
	"github.com/docker/go-units"
)

// xcresulttool version 23025, format version 3.53 (current)
var versionRegexp = regexp.MustCompile("xcresulttool version ([0-9]+)")

// Tool implements xcresult.ReportTool.
type Tool struct {
	commandFactory command.Factory
	logger         log.Logger
	lookPath       func(file string) (string, error)
}

// New ...
func New(commandFactory command.Factory, logger log.Logger) Tool {
	return Tool{
		commandFactory: commandFactory,
		logger:         logger,
		lookPath:       exec.LookPath,
	}
}

// BuildResults returns the output of `xcresulttool get build-results`.
func (t Tool) BuildResults(bundlePath string) ([]byte, error) {
	out, err := t.get(getArgs(bundlePath, "build-results"))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, xcresult.ErrNoBuildResults
	}
	return out, nil
}

// TestResults returns the output of `xcresulttool get test-results tests`.
func (t Tool) TestResults(bundlePath string) ([]byte, error) {
	out, err := t.get(getArgs(bundlePath, "test-results", "tests"))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, xcresult.ErrNoTestResults
	}
	return out, nil
}

// IsAvailable ...
func (t Tool) IsAvailable() bool {
	if _, err := t.lookPath("xcrun"); err != nil {
		return false
	}
	return t.commandFactory.Create("xcrun", []string{"--find", "xcresulttool"}, nil).Run() == nil
}

// Version returns the build number of xcresulttool, e.g. 23025 for Xcode 16.
func (t Tool) Version() (int, error) {
	if _, err := t.lookPath("xcrun"); err != nil {
		return 0, xcresult.ErrToolNotFound
	}

	cmd := t.commandFactory.Create("xcrun", []string{"xcresulttool", "version"}, nil)
	out, err := cmd.RunAndReturnTrimmedCombinedOutput()
	if err != nil {
		if isExitStatusError(err) {
			return 0, &xcresult.ToolFailedError{Command: cmd.PrintableCommandArgs(), Output: out}
		}
		return 0, fmt.Errorf("%s failed: %w", cmd.PrintableCommandArgs(), err)
	}

	return parseVersion(out)
}

func parseVersion(out string) (int, error) {
	matches := versionRegexp.FindStringSubmatch(out)
	if len(matches) < 2 {
		return 0, fmt.Errorf("no version matches found in output: %s", out)
	}

	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("failed to convert version: %s", matches[1])
	}

	return version, nil
}

func getArgs(bundlePath string, report ...string) []string {
	args := append([]string{"xcresulttool", "get"}, report...)
	return append(args, "--path", bundlePath, "--compact")
}

// get runs xcrun with the given args and returns its stdout.
// Both output streams are consumed while the process runs, so a large report can not fill up the pipe.
func (t Tool) get(args []string) ([]byte, error) {
	if _, err := t.lookPath("xcrun"); err != nil {
		return nil, xcresult.ErrToolNotFound
	}

	// os/exec copies the two streams on separate goroutines, so they need separate buffers.
	var outBuffer, errBuffer bytes.Buffer

	cmd := t.commandFactory.Create("xcrun", args, &command.Opts{
		Stdout: &outBuffer,
		Stderr: &errBuffer,
		Env:    os.Environ(),
	})

	t.logger.Debugf("$ %s", cmd.PrintableCommandArgs())

	if err := cmd.Run(); err != nil {
		if isExitStatusError(err) {
			output := strings.TrimSpace(errBuffer.String())
			if output == "" {
				output = strings.TrimSpace(outBuffer.String())
			}
			return nil, &xcresult.ToolFailedError{Command: cmd.PrintableCommandArgs(), Output: output}
		}
		return nil, fmt.Errorf("%s failed: %w", cmd.PrintableCommandArgs(), err)
	}

	if stdErr := strings.TrimSpace(errBuffer.String()); stdErr != "" {
		t.logger.Warnf("%s: %s", cmd.PrintableCommandArgs(), stdErr)
	}

	stdout := outBuffer.Bytes()
	t.logger.Debugf("%s returned %s", cmd.PrintableCommandArgs(), units.HumanSize(float64(len(stdout))))

	return stdout, nil
}

func isExitStatusError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) || errorutil.IsExitStatusError(err)
}
