package scheduling_test

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/nightshift-health/shiftplan/internal/model"
)

func marshalAssignments(fa model.FixedAssignments) (datatypes.JSON, error) {
	raw, err := json.Marshal(fa)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
