package transform_pipeline

// TransformPipelineBuilderOption is a functional option for configuring a TransformPipeline.
type TransformPipelineBuilderOption func(*transformPipeline)

// WithMatrixStacks binds the model-view and projection stacks at construction.
//
// Parameters:
//   - modelView: the model-view stack
//   - projection: the projection stack
//
// Returns:
//   - TransformPipelineBuilderOption: option function to apply
func WithMatrixStacks(modelView, projection Stack) TransformPipelineBuilderOption {
	return func(p *transformPipeline) {
		p.Bind(modelView, projection)
	}
}
