package provider

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeConfig decodes a generic settings map, as handed to a Factory, into
// a typed backend config. Keys match `mapstructure` tags, durations may be
// given as strings ("30s"), and a nil map leaves out untouched.
func DecodeConfig(in map[string]any, out any) error {
	if in == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("provider: build config decoder: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("provider: decode config: %w", err)
	}
	return nil
}
