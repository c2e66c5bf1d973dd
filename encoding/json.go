package encoding

import (
	jsoniter "github.com/json-iterator/go"
)

// CJSON is the codec used for everything that leaves the process.
var CJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func Marshal(v any) ([]byte, error) {
	return CJSON.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return CJSON.Unmarshal(data, v)
}

func ToJson(data interface{}) string {
	d, _ := CJSON.MarshalToString(data)
	return d
}
