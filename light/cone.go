package light

import "github.com/lixenwraith/luxengine/vmath"

// MakeConeTrace implements spec.md §4.3.4: given a full 360-degree
// angular trace, slice out the wedge between angle-aperture and
// angle+aperture. Straight runs of pairs wholly inside the wedge are
// kept in order; the pair crossing each boundary ray is clipped to the
// exact intersection, and the result is bracketed with a zero vector
// (the apex) at each end so a renderer can draw it as a fan from the
// origin.
func MakeConeTrace(trace LightTrace, angle, aperture float64) LightTrace {
	if len(trace) == 0 {
		return nil
	}
	minVec := vmath.F2FromAngle(angle - aperture)
	maxVec := vmath.F2FromAngle(angle + aperture)

	var straightRuns []LightTrace
	inStraight := false
	minIndex, maxIndex := 0, 0

	for i := 0; i < len(trace); i += 2 {
		v := trace[i]
		w := trace[i+1]
		v2 := trace[(i+2)%len(trace)]

		minCheck := vmath.F2Cross(v, minVec)
		maxCheck := vmath.F2Cross(v, maxVec)

		if minCheck >= 0 && vmath.F2Cross(v2, minVec) < 0 {
			minIndex = i
		}
		if maxCheck >= 0 && vmath.F2Cross(v2, maxVec) < 0 {
			maxIndex = i
		}

		inside := false
		if aperture > vmath.Pi/2 {
			inside = minCheck < 0 || maxCheck >= 0
		} else {
			inside = minCheck < 0 && maxCheck >= 0
		}

		if inside {
			if !inStraight {
				inStraight = true
				straightRuns = append(straightRuns, LightTrace{})
			}
			last := &straightRuns[len(straightRuns)-1]
			*last = append(*last, v, w)
		} else {
			inStraight = false
		}
	}

	minCross := edge{Start: trace[(minIndex+1)%len(trace)], End: trace[(minIndex+2)%len(trace)]}
	maxCross := edge{Start: trace[(maxIndex+1)%len(trace)], End: trace[(maxIndex+2)%len(trace)]}

	out := LightTrace{{}}
	out = append(out, pointOnAngularGeometry(minVec, minCross))
	for i := len(straightRuns) - 1; i >= 0; i-- {
		out = append(out, straightRuns[i]...)
	}
	out = append(out, pointOnAngularGeometry(maxVec, maxCross))
	out = append(out, vmath.FVec2{})
	return out
}
