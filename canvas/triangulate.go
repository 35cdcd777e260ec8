package canvas

import "math"

// Triangulate splits a simple polygon (convex or concave, either winding)
// into n-2 triangles by ear clipping. Degenerate input yields fewer
// triangles; fewer than 3 points yields none.
func Triangulate(pts []Point) [][3]Point {
	n := len(pts)
	if n < 3 {
		return nil
	}

	orient := 1.0
	if SignedArea(pts) < 0 {
		orient = -1
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([][3]Point, 0, n-2)

	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			prev := idx[(i+len(idx)-1)%len(idx)]
			next := idx[(i+1)%len(idx)]
			a, b, c := pts[prev], pts[idx[i]], pts[next]

			if cross(a, b, c)*orient <= 0 {
				continue // Reflex or collinear
			}
			if containsAny(pts, idx, prev, idx[i], next, orient) {
				continue
			}

			tris = append(tris, [3]Point{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return tris
		}
	}
	if math.Abs(cross(pts[idx[0]], pts[idx[1]], pts[idx[2]])) > 0 {
		tris = append(tris, [3]Point{pts[idx[0]], pts[idx[1]], pts[idx[2]]})
	}
	return tris
}

// cross is twice the signed area of triangle abc.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func containsAny(pts []Point, idx []int, ia, ib, ic int, orient float64) bool {
	a, b, c := pts[ia], pts[ib], pts[ic]
	for _, j := range idx {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := pts[j]
		if p == a || p == b || p == c {
			continue
		}
		if cross(a, b, p)*orient >= 0 && cross(b, c, p)*orient >= 0 && cross(c, a, p)*orient >= 0 {
			return true
		}
	}
	return false
}
