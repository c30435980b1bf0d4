package xcresulttool

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-xcode/xcodeproject/serialized"
	"howett.net/plist"
)

// MinDocumentMajorVersion is the first xcresult document version (Xcode 11) xcresulttool can read as JSON.
const MinDocumentMajorVersion = 3

// DocumentMajorVersion reads the document format version from the bundle's Info.plist.
func DocumentMajorVersion(bundlePath string) (int, error) {
	content, err := fileutil.ReadBytesFromFile(filepath.Join(bundlePath, "Info.plist"))
	if err != nil {
		return -1, err
	}

	var info serialized.Object
	if _, err := plist.Unmarshal(content, &info); err != nil {
		return -1, err
	}

	return majorVersion(info)
}

func majorVersion(document serialized.Object) (int, error) {
	version, err := document.Object("version")
	if err != nil {
		return -1, err
	}

	major, err := version.Value("major")
	if err != nil {
		return -1, err
	}

	switch v := major.(type) {
	case uint64:
		return int(v), nil
	case int64:
		return int(v), nil
	default:
		return -1, fmt.Errorf("unexpected major version type: %T", major)
	}
}
