package document

import (
	"fmt"
	"strings"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// PlaybackDirection controls how a frame tag's range is played.
type PlaybackDirection string

const (
	PlayForward  PlaybackDirection = "forward"
	PlayReverse  PlaybackDirection = "reverse"
	PlayPingPong PlaybackDirection = "pingpong"
)

// ValidPlaybackDirection reports whether d names a known direction.
func ValidPlaybackDirection(d PlaybackDirection) bool {
	switch d {
	case PlayForward, PlayReverse, PlayPingPong:
		return true
	default:
		return false
	}
}

// FrameTag names an inclusive frame range with a playback direction and an
// optional facing label.
type FrameTag struct {
	From      int               `json:"from"`
	To        int               `json:"to"`
	Direction PlaybackDirection `json:"direction"`
	Facing    string            `json:"facing,omitempty"`
}

// LayerTag names a set of layers.
type LayerTag struct {
	LayerIDs []int `json:"layer_ids"`
}

// Tag is a named frame range or layer set. Exactly one payload is set.
type Tag struct {
	Name   string    `json:"name"`
	Frames *FrameTag `json:"frames,omitempty"`
	Layers *LayerTag `json:"layers,omitempty"`
}

// validateTagShape rejects tags with no payload, both payloads, or an
// empty name. Range and reference checks belong to the owning asset.
func validateTagShape(t Tag) error {
	if strings.TrimSpace(t.Name) == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "tag name is required")
	}
	if (t.Frames != nil) == (t.Layers != nil) {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("tag %q must carry exactly one of frames or layers", t.Name))
	}
	if t.Frames != nil && !ValidPlaybackDirection(t.Frames.Direction) {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("tag %q has unknown direction %q", t.Name, t.Frames.Direction))
	}
	return nil
}

func copyTag(t Tag) Tag {
	out := t
	if t.Frames != nil {
		ft := *t.Frames
		out.Frames = &ft
	}
	if t.Layers != nil {
		lt := LayerTag{LayerIDs: make([]int, len(t.Layers.LayerIDs))}
		copy(lt.LayerIDs, t.Layers.LayerIDs)
		out.Layers = &lt
	}
	return out
}

func copyTags(tags []Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = copyTag(t)
	}
	return out
}
