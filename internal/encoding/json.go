// Package encoding converts boards to and from their JSON document form.
//
// Export is a straight dump of the model. Import goes through [Normalize],
// which accepts any JSON object and fills every missing or malformed field
// with a default, so the result always satisfies the board invariants.
package encoding

import (
	"encoding/json"
	"fmt"

	"github.com/inovacc/kboard/internal/model"
)

// Export marshals the board as two-space indented JSON with a trailing newline.
func Export(b *model.Board) ([]byte, error) {
	data, err := ToJSONIndent(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return append(data, '\n'), nil
}

// ToJSON marshals a value to compact JSON bytes.
func ToJSON[T any](value T) ([]byte, error) {
	return json.Marshal(value)
}

// ToJSONIndent marshals a value to indented JSON bytes.
func ToJSONIndent[T any](value T) ([]byte, error) {
	return json.MarshalIndent(value, "", "  ")
}
