package xcresulttool

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-xcresult-report/xcresult"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func TestGetArgs(t *testing.T) {
	require.Equal(t,
		[]string{"xcresulttool", "get", "build-results", "--path", "/tmp/Test.xcresult", "--compact"},
		getArgs("/tmp/Test.xcresult", "build-results"),
	)
	require.Equal(t,
		[]string{"xcresulttool", "get", "test-results", "tests", "--path", "/tmp/Test.xcresult", "--compact"},
		getArgs("/tmp/Test.xcresult", "test-results", "tests"),
	)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{name: "Xcode 16", out: "xcresulttool version 23025, format version 3.53 (current)", want: 23025},
		{name: "Xcode 15", out: "xcresulttool version 22608, format version 3.49 (current)", want: 22608},
		{name: "unexpected output", out: "xcrun: error: unable to find utility", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersion(tt.out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTool_MissingXcrun(t *testing.T) {
	tool := Tool{
		logger: log.NewLogger(),
		lookPath: func(string) (string, error) {
			return "", errors.New("executable file not found in $PATH")
		},
	}

	_, err := tool.BuildResults("/tmp/Test.xcresult")
	require.ErrorIs(t, err, xcresult.ErrToolNotFound)

	_, err = tool.TestResults("/tmp/Test.xcresult")
	require.ErrorIs(t, err, xcresult.ErrToolNotFound)

	_, err = tool.Version()
	require.ErrorIs(t, err, xcresult.ErrToolNotFound)

	require.False(t, tool.IsAvailable())
}

func TestDocumentMajorVersion(t *testing.T) {
	writeInfoPlist := func(t *testing.T, info map[string]interface{}) string {
		bundlePath := filepath.Join(t.TempDir(), "Test.xcresult")
		require.NoError(t, os.MkdirAll(bundlePath, 0755))

		content, err := plist.Marshal(info, plist.XMLFormat)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(bundlePath, "Info.plist"), content, 0644))

		return bundlePath
	}

	t.Run("version 3", func(t *testing.T) {
		bundlePath := writeInfoPlist(t, map[string]interface{}{
			"dateCreated": "2024-10-10T10:00:00Z",
			"version": map[string]interface{}{
				"major": 3,
				"minor": 53,
			},
		})

		version, err := DocumentMajorVersion(bundlePath)
		require.NoError(t, err)
		require.Equal(t, 3, version)
	})

	t.Run("missing version", func(t *testing.T) {
		bundlePath := writeInfoPlist(t, map[string]interface{}{
			"dateCreated": "2024-10-10T10:00:00Z",
		})

		_, err := DocumentMajorVersion(bundlePath)
		require.Error(t, err)
	})

	t.Run("missing Info.plist", func(t *testing.T) {
		_, err := DocumentMajorVersion(t.TempDir())
		require.Error(t, err)
	})
}

const testBundlePath = "/tmp/Test.xcresult"

// newToolWithXcrun puts a shell script named xcrun on PATH and returns a Tool running it.
func newToolWithXcrun(t *testing.T, script string) Tool {
	if runtime.GOOS == "windows" {
		t.Skip("xcrun scripts need a POSIX shell")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xcrun"), []byte("#!/bin/sh\n"+script), 0755))
	t.Setenv("PATH", dir)

	return New(command.NewFactory(env.NewRepository()), log.NewLogger())
}

func TestTool_BuildResults(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		want       []byte
		wantErr    error
		wantOutput string
	}{
		{
			name: "success",
			script: `if [ "$*" != "xcresulttool get build-results --path /tmp/Test.xcresult --compact" ]; then
  echo "unexpected args: $*" >&2
  exit 64
fi
printf '{"status":"succeeded"}'
`,
			want: []byte(`{"status":"succeeded"}`),
		},
		{
			name: "stderr on success is not an error",
			script: `echo "warning: deprecated flag" >&2
printf '{"status":"failed"}'
`,
			want: []byte(`{"status":"failed"}`),
		},
		{
			name:    "empty output",
			script:  "exit 0\n",
			wantErr: xcresult.ErrNoBuildResults,
		},
		{
			name:    "whitespace output",
			script:  "echo '  '\n",
			wantErr: xcresult.ErrNoBuildResults,
		},
		{
			name: "non-zero exit reports stderr",
			script: `echo "partial output"
echo "Error: Invalid xcresult bundle" >&2
exit 1
`,
			wantOutput: "Error: Invalid xcresult bundle",
		},
		{
			name: "non-zero exit falls back to stdout",
			script: `echo "Error: the bundle is damaged"
exit 2
`,
			wantOutput: "Error: the bundle is damaged",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := newToolWithXcrun(t, tt.script)

			got, err := tool.BuildResults(testBundlePath)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantOutput != "":
				var toolErr *xcresult.ToolFailedError
				require.ErrorAs(t, err, &toolErr)
				require.Equal(t, tt.wantOutput, toolErr.Output)
				require.Contains(t, toolErr.Command, "build-results")
			default:
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTool_TestResults(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tool := newToolWithXcrun(t, `if [ "$*" != "xcresulttool get test-results tests --path /tmp/Test.xcresult --compact" ]; then
  echo "unexpected args: $*" >&2
  exit 64
fi
printf '{"testNodes":[]}'
`)

		got, err := tool.TestResults(testBundlePath)
		require.NoError(t, err)
		require.Equal(t, []byte(`{"testNodes":[]}`), got)
	})

	t.Run("empty output", func(t *testing.T) {
		tool := newToolWithXcrun(t, "exit 0\n")

		_, err := tool.TestResults(testBundlePath)
		require.ErrorIs(t, err, xcresult.ErrNoTestResults)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		tool := newToolWithXcrun(t, "echo 'Error: no test results' >&2\nexit 1\n")

		_, err := tool.TestResults(testBundlePath)
		var toolErr *xcresult.ToolFailedError
		require.ErrorAs(t, err, &toolErr)
		require.Equal(t, "Error: no test results", toolErr.Output)
	})
}

func TestTool_RunError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH lookup differs on windows")
	}

	// xcrun passes the availability check but can not be started.
	t.Setenv("PATH", t.TempDir())
	tool := Tool{
		commandFactory: command.NewFactory(env.NewRepository()),
		logger:         log.NewLogger(),
		lookPath: func(file string) (string, error) {
			return "/usr/bin/" + file, nil
		},
	}

	_, err := tool.BuildResults(testBundlePath)
	require.Error(t, err)
	require.NotErrorIs(t, err, xcresult.ErrToolNotFound)
	var toolErr *xcresult.ToolFailedError
	require.False(t, errors.As(err, &toolErr))
	require.ErrorContains(t, err, "failed")
}

func TestTool_VersionAndAvailability(t *testing.T) {
	tool := newToolWithXcrun(t, `case "$1" in
  --find) echo "/Applications/Xcode.app/Contents/Developer/usr/bin/xcresulttool" ;;
  xcresulttool) echo "xcresulttool version 23025, format version 3.53 (current)" ;;
  *) exit 1 ;;
esac
`)

	require.True(t, tool.IsAvailable())

	version, err := tool.Version()
	require.NoError(t, err)
	require.Equal(t, 23025, version)
}

func TestTool_VersionFailure(t *testing.T) {
	tool := newToolWithXcrun(t, "echo 'xcrun: error: unable to find utility \"xcresulttool\"' >&2\nexit 72\n")

	require.False(t, tool.IsAvailable())

	_, err := tool.Version()
	var toolErr *xcresult.ToolFailedError
	require.ErrorAs(t, err, &toolErr)
	require.Contains(t, toolErr.Output, "unable to find utility")
}
