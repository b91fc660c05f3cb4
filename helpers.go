package gql

// mergeOptions shallow-merges transport options, overrides winning on
// key collision. Inputs are never mutated.
func mergeOptions(defaults, overrides map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(defaults)+len(overrides))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}
