package document

// Frame is one entry in an asset's ordered frame list. Index always equals
// the frame's position in that list.
type Frame struct {
	Index      int `json:"index"`
	DurationMS int `json:"duration_ms"`
}

// DefaultFrameDurationMS is the duration assigned to scaffolded frames.
const DefaultFrameDurationMS = 100

func copyFrames(frames []Frame) []Frame {
	out := make([]Frame, len(frames))
	copy(out, frames)
	return out
}
