package core

// Index size ceilings, carried over verbatim from the graph's packed field
// widths. A Builder rejects any definition that would overflow one of these
// before it ever reaches a Graph.
const (
	// MaxIndex is the maximum number of variables, and separately of
	// models, a graph may hold; the largest valid index is MaxIndex-1.
	MaxIndex = 0x7ffe

	// MaxEdgesPerModel bounds params, returns and checks per model.
	MaxEdgesPerModel = 0x7f

	// MaxForwardEdges bounds the number of models consuming one variable.
	MaxForwardEdges = 0xffff

	// MaxBackwardEdges bounds the number of models providing one variable.
	MaxBackwardEdges = 0xff

	// MaxInstance is the largest valid instance index within a group.
	MaxInstance = 0xfffe

	// MaxUserMappings bounds the number of distinct user-defined mappings.
	MaxUserMappings = 0x7f
)
