package xcresult

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// unmarshalObject decodes b into v, treating a JSON null as an error
// instead of leaving v untouched.
func unmarshalObject(b []byte, v interface{}) error {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		return fmt.Errorf("unexpected null")
	}
	return json.Unmarshal(b, v)
}

func missingFieldError(field string) error {
	return fmt.Errorf("missing required field: %s", field)
}
