package timeline

import (
	"coursecanvas/scene"
)

// Sample returns id's pose at time t as a keyframe stamped with t,
// interpolating linearly between the surrounding keyframes. Times outside
// the track hold the nearest end's pose. Reports false when id has no
// keyframes.
func (s *Store) Sample(id scene.NodeID, t float64) (Keyframe, bool) {
	return s.sample(id, t, linear)
}

// SampleEased is Sample with ease-in-out cubic timing between keyframes.
func (s *Store) SampleEased(id scene.NodeID, t float64) (Keyframe, bool) {
	return s.sample(id, t, easeInOutCubic)
}

func (s *Store) sample(id scene.NodeID, t float64, ease func(float64) float64) (Keyframe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kfs := s.tracks[id]
	if len(kfs) == 0 {
		return Keyframe{}, false
	}
	if t <= kfs[0].Time {
		return at(kfs[0], t), true
	}
	last := kfs[len(kfs)-1]
	if t >= last.Time {
		return at(last, t), true
	}

	for i := 0; i < len(kfs)-1; i++ {
		prev, next := kfs[i], kfs[i+1]
		if t < prev.Time || t >= next.Time {
			continue
		}
		f := ease((t - prev.Time) / (next.Time - prev.Time))
		return Keyframe{
			Time:     t,
			Position: prev.Position.Lerp(next.Position, f),
			Rotation: lerp(prev.Rotation, next.Rotation, f),
			Scale:    prev.Scale.Lerp(next.Scale, f),
		}, true
	}
	return at(last, t), true
}

func at(kf Keyframe, t float64) Keyframe {
	kf.Time = t
	return kf
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func linear(t float64) float64 { return t }

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
