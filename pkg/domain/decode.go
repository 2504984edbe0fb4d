package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeData decodes the snapshot's free-form context data into a typed
// struct. Snapshots round-trip through JSON stores, so Data arrives as
// map[string]any regardless of what the application originally stored.
func (s *Snapshot) DecodeData(out any) error {
	if err := mapstructure.Decode(s.Context.Data, out); err != nil {
		return fmt.Errorf("failed to decode flow data: %w", err)
	}
	return nil
}
