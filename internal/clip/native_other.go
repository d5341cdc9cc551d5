//go:build !linux && !darwin && !windows

package clip

import "fmt"

func newNative() (Applier, error) {
	return nil, fmt.Errorf("%w: no native clipboard on this platform", ErrApplierUnavailable)
}
