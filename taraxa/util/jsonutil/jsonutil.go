package jsonutil

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util"
)

func MustEncodePretty(obj interface{}) []byte {
	bs, err := json.MarshalIndent(obj, "", "    ")
	util.PanicIfNotNil(err)
	return bs
}

// DecodeFile fills obj from the JSON file at path. Unknown fields are errors.
func DecodeFile(path string, obj interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
