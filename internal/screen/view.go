package screen

import (
	"github.com/soar/stickprofile/internal/axis"
	"github.com/soar/stickprofile/internal/calib"
	"github.com/soar/stickprofile/internal/graph"
	"github.com/soar/stickprofile/internal/store"
)

// LivePoint is the current stick deflection plotted on the curve.
type LivePoint struct {
	Raw    float64        `json:"raw"`
	Shaped float64        `json:"shaped"`
	At     graph.Drawable `json:"at"`
}

// View is everything a render surface needs to draw one frame of the screen.
type View struct {
	Mode      calib.Mode          `json:"mode"`
	Axis      int                 `json:"axis"`
	AxisCount int                 `json:"axisCount"`
	Type      store.ProfileType   `json:"type"`
	Types     []store.ProfileType `json:"types"`
	Field     string              `json:"field"`
	Working   axis.Profile        `json:"working"`
	Message   string              `json:"message,omitempty"`
	Origin    graph.Vec           `json:"origin"`
	Size      graph.Vec           `json:"size"`
	Curve     []graph.Drawable    `json:"curve"`
	Live      *LivePoint          `json:"live,omitempty"`
}

// View renders the current frame. Before EnterScreen it returns a zero View.
func (s *Screen) View(alpha float64, origin, size graph.Vec) View {
	sess := s.session
	if len(sess.Types) == 0 {
		return View{}
	}
	v := View{
		Mode:      sess.Mode,
		Axis:      sess.Axis,
		AxisCount: sess.AxisCount,
		Type:      sess.Type(),
		Types:     append([]store.ProfileType(nil), sess.Types...),
		Field:     sess.Field.String(),
		Working:   sess.Working,
		Message:   sess.Message,
		Origin:    origin,
		Size:      size,
		Curve:     s.RenderGraph(alpha, origin, size),
	}
	if sess.HasAxis() && sess.Axis < len(s.live) {
		raw := s.live[sess.Axis]
		shaped := axis.Evaluate(raw, sess.Working)
		at := graph.ToScreen([]graph.Point{{X: raw, Y: shaped}}, alpha, origin, size)
		v.Live = &LivePoint{Raw: raw, Shaped: shaped, At: at[0]}
	}
	return v
}
