package wire

import "fmt"

// ValidateMetadata checks that artifact metadata stays within the closed
// value set the output document supports: strings, booleans, numbers, and
// nested maps or lists of the same. Keeping the set closed keeps the
// serialized document deterministic.
func ValidateMetadata(md map[string]any) error {
	for key, value := range md {
		if err := validateMetadataValue(value); err != nil {
			return fmt.Errorf("metadata key %q: %w", key, err)
		}
	}
	return nil
}

func validateMetadataValue(v any) error {
	switch vv := v.(type) {
	case nil, string, bool,
		int, int32, int64, float32, float64:
		return nil
	case map[string]any:
		return ValidateMetadata(vv)
	case []any:
		for i, elem := range vv {
			if err := validateMetadataValue(elem); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}
