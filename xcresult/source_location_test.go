package xcresult

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSourceURL(t *testing.T) {
	tests := []struct {
		name      string
		sourceURL string
		want      SourceLocation
		wantOK    bool
	}{
		{
			name:      "line only",
			sourceURL: "file:///a/b.swift#StartingLineNumber=9",
			want:      SourceLocation{File: "/a/b.swift", Line: 10},
			wantOK:    true,
		},
		{
			name:      "full xcresulttool fragment",
			sourceURL: "file:///Users/dev/SampleProject/Sources/ContentView.swift#EndingColumnNumber=12&EndingLineNumber=14&StartingColumnNumber=4&StartingLineNumber=14&Timestamp=758561234.123",
			want:      SourceLocation{File: "/Users/dev/SampleProject/Sources/ContentView.swift", Line: 15, Column: 5},
			wantOK:    true,
		},
		{
			name:      "path is kept verbatim",
			sourceURL: "file:///Users/dev/Autosave%20Information/Tests.swift#StartingLineNumber=0",
			want:      SourceLocation{File: "/Users/dev/Autosave%20Information/Tests.swift", Line: 1},
			wantOK:    true,
		},
		{
			name:      "malformed pairs are ignored",
			sourceURL: "file:///a/b.swift#CharacterRangeLen&StartingColumnNumber=x&A=1=2&&StartingLineNumber=3",
			want:      SourceLocation{File: "/a/b.swift", Line: 4},
			wantOK:    true,
		},
		{
			name:      "no fragment",
			sourceURL: "file:///a/b.swift",
		},
		{
			name:      "not a file URL",
			sourceURL: "not-a-file-url",
		},
		{
			name:      "other scheme",
			sourceURL: "https://example.com/a.swift#StartingLineNumber=1",
		},
		{
			name:      "column without line",
			sourceURL: "file:///a/b.swift#StartingColumnNumber=3&EndingLineNumber=7",
		},
		{
			name:      "line is not a number",
			sourceURL: "file:///a/b.swift#StartingLineNumber=nine",
		},
		{
			name:      "line overflows int when made 1-based",
			sourceURL: "file:///a.swift#StartingLineNumber=" + strconv.Itoa(math.MaxInt),
		},
		{
			name:      "negative line",
			sourceURL: "file:///a.swift#StartingLineNumber=-2",
		},
		{
			name:      "column overflowing int is ignored",
			sourceURL: "file:///a.swift#StartingColumnNumber=" + strconv.Itoa(math.MaxInt) + "&StartingLineNumber=4",
			want:      SourceLocation{File: "/a.swift", Line: 5},
			wantOK:    true,
		},
		{
			name:      "empty path",
			sourceURL: "file://#StartingLineNumber=1",
		},
		{
			name:      "empty string",
			sourceURL: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSourceURL(tt.sourceURL)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseFailureMessage(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantLocation *SourceLocation
		wantMessage  string
	}{
		{
			name:         "message with location",
			input:        "F.swift:14: Issue recorded: always fails",
			wantLocation: &SourceLocation{File: "F.swift", Line: 14},
			wantMessage:  "Issue recorded: always fails",
		},
		{
			name:         "message containing colons",
			input:        `AnotherTestSuite.swift:42: XCTAssertEqual failed: ("1") is not equal to ("2")`,
			wantLocation: &SourceLocation{File: "AnotherTestSuite.swift", Line: 42},
			wantMessage:  `XCTAssertEqual failed: ("1") is not equal to ("2")`,
		},
		{
			name:        "generic message",
			input:       "Some generic error message",
			wantMessage: "Some generic error message",
		},
		{
			name:        "other source extension",
			input:       "Tests.m:3: failed",
			wantMessage: "Tests.m:3: failed",
		},
		{
			name:        "missing space after line",
			input:       "F.swift:14:failed",
			wantMessage: "F.swift:14:failed",
		},
		{
			name:        "empty message",
			input:       "F.swift:14: ",
			wantMessage: "F.swift:14: ",
		},
		{
			name:        "line overflows int",
			input:       "F.swift:99999999999999999999999: failed",
			wantMessage: "F.swift:99999999999999999999999: failed",
		},
		{
			name:        "multi-line message",
			input:       "F.swift:1: first\nsecond",
			wantMessage: "F.swift:1: first\nsecond",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location, message := ParseFailureMessage(tt.input)
			require.Equal(t, tt.wantLocation, location)
			require.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestSourceLocation_RelativePath(t *testing.T) {
	tests := []struct {
		name string
		file string
		root string
		want string
	}{
		{name: "inside root", file: "/root/sub/F.swift", root: "/root", want: "sub/F.swift"},
		{name: "trailing slash on root", file: "/root/sub/F.swift", root: "/root/", want: "sub/F.swift"},
		{name: "outside root", file: "/other/F.swift", root: "/root", want: "/other/F.swift"},
		{name: "sibling with common prefix", file: "/rootless/F.swift", root: "/root", want: "/rootless/F.swift"},
		{name: "bare file name", file: "F.swift", root: "/root", want: "F.swift"},
		{name: "empty root", file: "/root/F.swift", root: "", want: "/root/F.swift"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SourceLocation{File: tt.file, Line: 1}.RelativePath(tt.root))
		})
	}
}

func TestSourceLocation_HasColumn(t *testing.T) {
	require.False(t, SourceLocation{File: "F.swift", Line: 1}.HasColumn())
	require.True(t, SourceLocation{File: "F.swift", Line: 1, Column: 1}.HasColumn())
}
