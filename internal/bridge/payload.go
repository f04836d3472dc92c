package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/vk/annobridge/internal/opaque"
)

// RenderPayload is the wire shape of one render event sent to a frontend
// component instance. Fields are forwarded exactly as the caller supplied
// them; the bridge performs no validation or transformation.
type RenderPayload struct {
	Component string         `json:"component"`
	Instance  string         `json:"instance"`
	Fields    map[string]any `json:"fields"`
	Default   opaque.Value   `json:"default"`
}

// wireMap renders the payload to the plain map shape the socket encoder
// expects.
func (p RenderPayload) wireMap() (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode render payload: %w", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode render payload: %w", err)
	}
	return body, nil
}

// valueReport is the wire shape of a component_value event coming back from
// the frontend.
type valueReport struct {
	Instance string       `json:"instance"`
	Value    opaque.Value `json:"value"`
}

// decodeValueReport parses the first argument of a component_value event.
func decodeValueReport(arg any) (valueReport, error) {
	raw, err := json.Marshal(arg)
	if err != nil {
		return valueReport{}, fmt.Errorf("encode value report: %w", err)
	}
	var report valueReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return valueReport{}, fmt.Errorf("decode value report: %w", err)
	}
	return report, nil
}
