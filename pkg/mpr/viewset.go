package mpr

import (
	"log/slog"

	"mprcore/pkg/volume"
)

// ViewSet owns the shared crosshair position and the three plane states
// derived from it. It is the single code path for every crosshair update:
// clicks, slider moves and programmatic navigation all funnel through
// SetCrosshair, so the views can never disagree.
//
// A ViewSet is owned by a single goroutine (the UI event loop); none of
// its methods block and change listeners run inline once state is
// consistent.
type ViewSet struct {
	vol     *volume.Volume
	mapping AxisMapping
	logger  *slog.Logger

	crosshair volume.CrosshairPosition
	planes    [3]PlaneState

	listeners []func(volume.CrosshairPosition)
}

// NewViewSet creates a view set over the given volume. The mapping must
// validate; pass DefaultAxisMapping() unless the host derives one from
// the dataset orientation. A nil logger falls back to slog.Default().
func NewViewSet(vol *volume.Volume, mapping AxisMapping, logger *slog.Logger) (*ViewSet, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	vs := &ViewSet{
		vol:     vol,
		mapping: mapping,
		logger:  logger,
	}
	for p := Axial; p <= Coronal; p++ {
		vs.planes[p] = PlaneState{Plane: p}
	}

	// Start centered so every view shows a mid-volume slice.
	vs.SetCrosshair(volume.CrosshairPosition{
		X: vol.Dimensions[0] / 2,
		Y: vol.Dimensions[1] / 2,
		Z: vol.Dimensions[2] / 2,
	})

	return vs, nil
}

// Crosshair returns the current crosshair position in voxel indices.
func (vs *ViewSet) Crosshair() volume.CrosshairPosition {
	return vs.crosshair
}

// PlaneState returns the state of the requested view.
func (vs *ViewSet) PlaneState(p Plane) PlaneState {
	return vs.planes[p]
}

// SliceIndex returns the slice currently shown by the requested view.
func (vs *ViewSet) SliceIndex(p Plane) int {
	return vs.planes[p].SliceIndex
}

// OnCrosshairChanged registers a listener invoked after every crosshair
// update, once all three plane states are consistent.
func (vs *ViewSet) OnCrosshairChanged(fn func(volume.CrosshairPosition)) {
	vs.listeners = append(vs.listeners, fn)
}

// SetCrosshair clamps the proposed position into the volume bounds,
// stores it, updates all three slice indices atomically and then emits a
// single change notification. Listeners are never called mid-update.
func (vs *ViewSet) SetCrosshair(pos volume.CrosshairPosition) {
	vs.crosshair = vs.vol.Clamp(pos)

	components := [3]int{vs.crosshair.X, vs.crosshair.Y, vs.crosshair.Z}
	for p := Axial; p <= Coronal; p++ {
		vs.planes[p].SliceIndex = components[vs.mapping.Normal[p]]
	}

	for _, fn := range vs.listeners {
		fn(vs.crosshair)
	}
}

// UpdateSliceFromSlider moves one view to the given slice. The index is
// clamped into range, substituted into the single axis the slider
// controls, and routed through SetCrosshair so slider-driven and
// click-driven updates share one code path.
func (vs *ViewSet) UpdateSliceFromSlider(p Plane, index int) {
	if p < Axial || p > Coronal {
		vs.logger.Warn("ignoring slider update for unknown plane", "plane", int(p))
		return
	}

	axis := vs.mapping.Normal[p]
	if max := vs.vol.Dimensions[axis] - 1; index > max {
		index = max
	}
	if index < 0 {
		index = 0
	}

	pos := vs.crosshair
	switch axis {
	case 0:
		pos.X = index
	case 1:
		pos.Y = index
	case 2:
		pos.Z = index
	}
	vs.SetCrosshair(pos)
}

// HandleClick navigates the crosshair to a 2D click on one of the views.
// The screen position is normalized against the canvas size, clamped into
// [0,1) (clicks outside the canvas are clamped, never rejected), mapped
// to the two in-plane voxel axes, and combined with the clicked plane's
// current slice on the third axis.
func (vs *ViewSet) HandleClick(p Plane, screenX, screenY, canvasWidth, canvasHeight float64) {
	if p < Axial || p > Coronal {
		vs.logger.Warn("ignoring click on unknown plane", "plane", int(p))
		return
	}
	if canvasWidth <= 0 || canvasHeight <= 0 {
		vs.logger.Warn("ignoring click with degenerate canvas",
			"width", canvasWidth, "height", canvasHeight)
		return
	}

	u := clampUnit(screenX / canvasWidth)
	v := clampUnit(screenY / canvasHeight)

	hAxis := vs.mapping.Horizontal[p]
	vAxis := vs.mapping.Vertical[p]

	components := [3]int{vs.crosshair.X, vs.crosshair.Y, vs.crosshair.Z}
	components[vs.mapping.Normal[p]] = vs.planes[p].SliceIndex
	components[hAxis] = int(u * float64(vs.vol.Dimensions[hAxis]))
	components[vAxis] = int(v * float64(vs.vol.Dimensions[vAxis]))

	// SetCrosshair clamps again, covering the u==1-epsilon edge.
	vs.SetCrosshair(volume.CrosshairPosition{
		X: components[0],
		Y: components[1],
		Z: components[2],
	})
}

// clampUnit clamps x into [0, 1), keeping normalized click coordinates
// inside the canvas.
func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x
}
