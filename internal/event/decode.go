package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload converts an Event.Payload into T. Pass evt.Payload, not the
// event itself.
//
// In-process publishers hand over T or *T directly. NATS delivers generic JSON
// values (maps, slices), and replayed dead letters may carry raw bytes; both are
// decoded through encoding/json.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
		return out, nil
	case json.RawMessage:
		return out, decodeRaw(v, &out)
	case []byte:
		return out, decodeRaw(v, &out)
	case Event:
		return out, fmt.Errorf(ErrMsgDecodeWholeEvent, v.Type)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf(ErrMsgDecodePayload, err)
	}
	return out, decodeRaw(data, &out)
}

func decodeRaw(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf(ErrMsgDecodePayload, err)
	}
	return nil
}
