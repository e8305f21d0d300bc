package intelligence

import "slices"

// Clone returns a copy that shares no mutable state with in. Endpoint values
// inside category buckets are copied shallowly since parsed APIs are never
// mutated after parse.
func (in *Intelligence) Clone() *Intelligence {
	if in == nil {
		return nil
	}
	out := *in
	out.SuggestedFeatures = CloneFeatures(in.SuggestedFeatures)
	out.Recommendations = slices.Clone(in.Recommendations)

	if in.EndpointCategories != nil {
		out.EndpointCategories = make([]EndpointCategory, len(in.EndpointCategories))
		for i, c := range in.EndpointCategories {
			c.Endpoints = slices.Clone(c.Endpoints)
			out.EndpointCategories[i] = c
		}
	}
	if in.FocusAreas != nil {
		out.FocusAreas = make([]FocusArea, len(in.FocusAreas))
		for i, f := range in.FocusAreas {
			f.Endpoints = slices.Clone(f.Endpoints)
			out.FocusAreas[i] = f
		}
	}
	return &out
}

func CloneFeatures(features []PluginFeature) []PluginFeature {
	if features == nil {
		return nil
	}
	out := make([]PluginFeature, len(features))
	for i, f := range features {
		f.Endpoints = slices.Clone(f.Endpoints)
		out[i] = f
	}
	return out
}
