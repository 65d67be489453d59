package voyagekit

import (
	"fmt"

	"github.com/buger/jsonparser"
)

// unwrapDetail normalizes the backend's inconsistent detail envelope. Some
// endpoints return {"data": {...}}, others {"data": [{...}]}; both are legal
// input here and callers never see the difference. An empty array or null
// data is ErrNotFound.
func unwrapDetail(body []byte) ([]byte, error) {
	data, dataType, _, err := jsonparser.Get(body, "data")
	if err != nil {
		return nil, fmt.Errorf("voyagekit: detail envelope: %w", err)
	}

	switch dataType {
	case jsonparser.Object:
		return data, nil
	case jsonparser.Array:
		first, firstType, _, err := jsonparser.Get(body, "data", "[0]")
		if err != nil || firstType == jsonparser.NotExist {
			return nil, ErrNotFound
		}
		if firstType != jsonparser.Object {
			return nil, fmt.Errorf("voyagekit: detail envelope: array of %s", firstType)
		}
		return first, nil
	case jsonparser.Null:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("voyagekit: detail envelope: unexpected %s", dataType)
	}
}
