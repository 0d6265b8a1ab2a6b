package screen

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/stickprofile/internal/axis"
	"github.com/soar/stickprofile/internal/calib"
	"github.com/soar/stickprofile/internal/graph"
	"github.com/soar/stickprofile/internal/router"
	"github.com/soar/stickprofile/internal/store"
)

type fakeDevice struct {
	axes   int
	frames [][]float64
}

func (d *fakeDevice) ListAxes() int { return d.axes }

func (d *fakeDevice) PollRaw() []float64 {
	if len(d.frames) == 0 {
		return make([]float64, d.axes)
	}
	f := d.frames[0]
	d.frames = d.frames[1:]
	return f
}

type memPersistence struct {
	blob    []byte
	saves   int
	loadErr error
	saveErr error
}

func (m *memPersistence) Load() ([]byte, error) { return m.blob, m.loadErr }

func (m *memPersistence) Save(b []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.blob = append([]byte(nil), b...)
	return nil
}

var scenarioProfile = axis.Profile{Kind: axis.Linear, Exponent: 1, DeadzoneLow: 0.1, DeadzoneHigh: 1}

func savedBlob(t *testing.T, axes int) []byte {
	t.Helper()
	st := store.New(axes, nil)
	require.NoError(t, st.Set(0, store.Normal, scenarioProfile))
	b, err := st.ExportAll()
	require.NoError(t, err)
	return b
}

func press(k router.Key) router.NavState {
	return router.NavState{}.Press(k)
}

// step runs one frame with k pressed and one idle frame so the next press is
// a fresh edge.
func step(s *Screen, d *fakeDevice, k router.Key) {
	s.HandleFrameInput(d.PollRaw(), press(k))
	s.HandleFrameInput(d.PollRaw(), router.NavState{})
}

func newScreen(t *testing.T, axes int) (*Screen, *fakeDevice, *memPersistence) {
	t.Helper()
	d := &fakeDevice{axes: axes}
	p := &memPersistence{blob: savedBlob(t, axes)}
	s := New(d, p, Options{Router: router.Config{DeadzoneStep: 0.1, ExponentStep: 0.5}})
	s.EnterScreen()
	return s, d, p
}

func TestEnterScreenLoadsProfiles(t *testing.T) {
	s, _, _ := newScreen(t, 2)

	sess := s.Session()
	assert.Equal(t, calib.AxisSelect, sess.Mode)
	assert.Equal(t, 0, sess.Axis)
	assert.Equal(t, store.Normal, sess.Type())
	assert.Equal(t, scenarioProfile, sess.Working)

	v, err := s.Store().Shape(0, store.Normal, 0.55)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-9)
}

func TestEnterScreenSurvivesBadPersistence(t *testing.T) {
	d := &fakeDevice{axes: 1}
	s := New(d, &memPersistence{loadErr: errors.New("disk gone")}, Options{})
	s.EnterScreen()
	assert.Equal(t, store.Default(store.Normal), s.Session().Working)

	s = New(d, &memPersistence{blob: []byte("version: 99\n")}, Options{})
	s.EnterScreen()
	assert.Equal(t, store.Default(store.Normal), s.Session().Working)
}

func TestEditConfirmAndExitSaves(t *testing.T) {
	s, d, p := newScreen(t, 2)

	step(s, d, router.Select)   // -> ProfileTypeSelect
	step(s, d, router.Select)   // -> CurveEdit
	step(s, d, router.AdjustUp) // deadzone low +0.1
	require.Equal(t, calib.CurveEdit, s.Session().Mode)
	require.InDelta(t, 0.2, s.Session().Working.DeadzoneLow, 1e-9)

	step(s, d, router.Select) // Confirm
	assert.Equal(t, calib.GraphView, s.Session().Mode)
	assert.Equal(t, 0, p.saves, "confirm commits to the store only")

	step(s, d, router.Back) // RequestExit
	assert.True(t, s.Done())
	assert.Equal(t, 1, p.saves)

	reloaded := store.New(2, nil)
	require.NoError(t, reloaded.ImportAll(p.blob))
	got, err := reloaded.Get(0, store.Normal)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, got.DeadzoneLow, 1e-9)

	// no further input is processed
	_, ok := s.HandleFrameInput(d.PollRaw(), press(router.Select))
	assert.False(t, ok)
	assert.Equal(t, 1, p.saves)
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	s, d, _ := newScreen(t, 2)

	step(s, d, router.Select)
	step(s, d, router.Select)
	for i := 0; i < 2; i++ {
		step(s, d, router.AdjustUp)
	}
	step(s, d, router.Back) // Cancel

	assert.Equal(t, calib.GraphView, s.Session().Mode)
	got, err := s.Store().Get(0, store.Normal)
	require.NoError(t, err)
	assert.Equal(t, scenarioProfile, got)
}

func TestDeviceLossAndReturn(t *testing.T) {
	s, d, _ := newScreen(t, 2)
	step(s, d, router.Next)
	require.Equal(t, 1, s.Session().Axis)

	d.frames = [][]float64{{}, {}, {}}
	step(s, d, router.Next)
	assert.Equal(t, calib.NoAxis, s.Session().Axis)
	assert.Nil(t, s.View(1, graph.Vec{}, graph.Vec{X: 1, Y: 1}).Live)

	s.HandleFrameInput([]float64{0.3, 0.4}, router.NavState{})
	assert.Equal(t, 0, s.Session().Axis)
	assert.Equal(t, 2, s.Session().AxisCount)
}

func TestLeaveWithoutDevice(t *testing.T) {
	d := &fakeDevice{axes: 0}
	p := &memPersistence{}
	s := New(d, p, Options{})
	s.EnterScreen()

	step(s, d, router.Next)
	assert.Equal(t, calib.NoAxis, s.Session().Axis)

	_, ok := s.HandleFrameInput(d.PollRaw(), press(router.Back))
	assert.False(t, ok, "no router event without a device")
	assert.False(t, s.Done())
	assert.Equal(t, 0, p.saves)

	require.NoError(t, s.Leave())
	assert.True(t, s.Done())
	assert.Equal(t, 1, p.saves)
	assert.NoError(t, s.Leave())
	assert.Equal(t, 1, p.saves)
}

func TestLeaveDiscardsOpenEdit(t *testing.T) {
	s, d, p := newScreen(t, 2)
	step(s, d, router.Select)
	step(s, d, router.Select)
	step(s, d, router.AdjustUp)
	require.Equal(t, calib.CurveEdit, s.Session().Mode)

	require.NoError(t, s.Leave())
	assert.True(t, s.Done())

	reloaded := store.New(2, nil)
	require.NoError(t, reloaded.ImportAll(p.blob))
	got, err := reloaded.Get(0, store.Normal)
	require.NoError(t, err)
	assert.Equal(t, scenarioProfile, got)
}

func TestExitSaveFailureRetries(t *testing.T) {
	s, _, p := newScreen(t, 1)
	p.saveErr = errors.New("read-only")

	assert.Error(t, s.ExitScreen())
	assert.Equal(t, 0, p.saves)

	p.saveErr = nil
	require.NoError(t, s.ExitScreen())
	assert.Equal(t, 1, p.saves)
	assert.NoError(t, s.ExitScreen(), "second exit is a no-op")
	assert.Equal(t, 1, p.saves)
}

func TestViewBeforeEnter(t *testing.T) {
	s := New(&fakeDevice{axes: 2}, &memPersistence{}, Options{})
	assert.Equal(t, View{}, s.View(1, graph.Vec{}, graph.Vec{X: 10, Y: 10}))
}

func TestRenderGraphTracksWorkingCopy(t *testing.T) {
	s, d, _ := newScreen(t, 2)
	origin, size := graph.Vec{X: 0, Y: 0}, graph.Vec{X: 100, Y: 100}

	before := s.RenderGraph(1, origin, size)
	assert.Equal(t, before, s.RenderGraph(1, origin, size))

	step(s, d, router.Select)
	step(s, d, router.Select)
	step(s, d, router.AdjustUp)

	after := s.RenderGraph(1, origin, size)
	assert.Len(t, after, graph.DefaultResolution)
	assert.NotEqual(t, before, after)
}

func TestViewLivePoint(t *testing.T) {
	s, _, _ := newScreen(t, 2)
	s.HandleFrameInput([]float64{0.55, -1}, router.NavState{})

	v := s.View(0.5, graph.Vec{}, graph.Vec{X: 200, Y: 200})
	require.NotNil(t, v.Live)
	assert.Equal(t, 0.55, v.Live.Raw)
	assert.InDelta(t, 0.5, v.Live.Shaped, 1e-9)
	assert.InDelta(t, 155, v.Live.At.X, 1e-9)
	assert.InDelta(t, 50, v.Live.At.Y, 1e-9)
	assert.Equal(t, "deadzone_low", v.Field)
	assert.Equal(t, store.DefaultTypes, v.Types)
	assert.Len(t, v.Curve, graph.DefaultResolution)
}
