package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// unmarshalJSONSlice decodes a datatypes.JSON column into a typed slice,
// treating an empty/null column as an empty (not nil-panic-prone) result.
func unmarshalJSONSlice[T any](raw datatypes.JSON) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
