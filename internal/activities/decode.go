package activities

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeCollection decodes the activities object while keeping the key order
// of the payload.
func DecodeCollection(body []byte) (Collection, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrMalformedResponse, root.Type)
	}

	collection := Collection{}
	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		activity, err := decodeActivity(key.String(), value)
		if err != nil {
			decodeErr = err
			return false
		}
		collection = append(collection, activity)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return collection, nil
}

func decodeActivity(name string, value gjson.Result) (Activity, error) {
	if !value.IsObject() {
		return Activity{}, fmt.Errorf("%w: activity %q is not an object", ErrMalformedResponse, name)
	}
	participants := value.Get("participants")
	if participants.Exists() && participants.Type != gjson.Null && !participants.IsArray() {
		return Activity{}, fmt.Errorf("%w: activity %q participants is not a list", ErrMalformedResponse, name)
	}

	var activity Activity
	if err := json.Unmarshal([]byte(value.Raw), &activity); err != nil {
		return Activity{}, fmt.Errorf("%w: activity %q: %v", ErrMalformedResponse, name, err)
	}
	activity.Name = name
	if activity.Participants == nil {
		activity.Participants = []string{}
	}
	return activity, nil
}

// decodeResult decodes a mutation payload of either shape.
func decodeResult(body []byte) (message string, detail string, err error) {
	if !gjson.ValidBytes(body) {
		return "", "", fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return "", "", fmt.Errorf("%w: expected object, got %s", ErrMalformedResponse, root.Type)
	}
	return root.Get("message").String(), detailText(root.Get("detail")), nil
}

// detailText flattens a detail field. Validation failures from the API carry
// a list of objects with a "msg" field instead of a string.
func detailText(detail gjson.Result) string {
	switch {
	case !detail.Exists(), detail.Type == gjson.Null:
		return ""
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		for _, item := range detail.Array() {
			if msg := item.Get("msg"); msg.Exists() {
				return msg.String()
			}
		}
		return ""
	default:
		return detail.Raw
	}
}
