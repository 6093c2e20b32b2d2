package matrix_stack

// MatrixStackBuilderOption is a functional option for configuring a MatrixStack.
type MatrixStackBuilderOption func(*matrixStack)

// WithCapacity sets the maximum depth of the stack, counting the identity floor.
// Values below 1 fall back to DefaultCapacity.
//
// Parameters:
//   - capacity: the maximum number of entries
//
// Returns:
//   - MatrixStackBuilderOption: option function to apply
func WithCapacity(capacity int) MatrixStackBuilderOption {
	return func(s *matrixStack) {
		if capacity < 1 {
			capacity = DefaultCapacity
		}
		s.capacity = capacity
	}
}
