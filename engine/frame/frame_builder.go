package frame

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
)

// FrameBuilderOption is a functional option for configuring a Frame.
// The basis is re-orthonormalized once after all options are applied.
type FrameBuilderOption func(*frameImpl)

// WithOrigin sets the frame's initial world-space position.
//
// Parameters:
//   - x, y, z: the origin
//
// Returns:
//   - FrameBuilderOption: option function to apply
func WithOrigin(x, y, z float32) FrameBuilderOption {
	return func(f *frameImpl) {
		f.origin = common.Vec3(x, y, z)
	}
}

// WithForward sets the frame's initial forward direction. Zero-length input is ignored.
//
// Parameters:
//   - x, y, z: the forward direction (need not be unit length)
//
// Returns:
//   - FrameBuilderOption: option function to apply
func WithForward(x, y, z float32) FrameBuilderOption {
	return func(f *frameImpl) {
		if v := common.Vec3(x, y, z); v.Len() >= common.Epsilon {
			f.forward = v
		}
	}
}

// WithUp sets the frame's initial up hint. Zero-length input is ignored.
//
// Parameters:
//   - x, y, z: the up direction (need not be unit length)
//
// Returns:
//   - FrameBuilderOption: option function to apply
func WithUp(x, y, z float32) FrameBuilderOption {
	return func(f *frameImpl) {
		if v := common.Vec3(x, y, z); v.Len() >= common.Epsilon {
			f.up = v
		}
	}
}
