// Package viewer wires the spatial-analysis core together behind the
// API the host application drives: volume loading, crosshair
// navigation, measurement tools and export. The host constructs one
// Viewer per exam and injects its renderer and segmentation
// collaborators; there is no process-wide state.
package viewer

import (
	"fmt"
	"log/slog"

	"mprcore/pkg/geometry"
	"mprcore/pkg/measurement"
	"mprcore/pkg/mpr"
	"mprcore/pkg/store"
	"mprcore/pkg/volume"
)

// Options configures a Viewer at construction.
type Options struct {
	// Mapping is the plane-to-axis convention. The zero value is
	// replaced by mpr.DefaultAxisMapping().
	Mapping mpr.AxisMapping

	// Collaborators are the external renderer/sampler/segmentation
	// capabilities consumed by the measurement tools.
	Collaborators measurement.Collaborators

	// ProbeRadiusMM enables density probe statistics when positive.
	ProbeRadiusMM float64

	// Logger receives the core's structured log output. Nil falls back
	// to slog.Default().
	Logger *slog.Logger
}

// Viewer is the interactive spatial-analysis core: three synchronized
// planar views over one volume plus the measurement tool set. All
// methods are synchronous and run on the caller's (UI) goroutine.
type Viewer struct {
	logger  *slog.Logger
	mapping mpr.AxisMapping
	collab  measurement.Collaborators
	probe   float64

	vol    *volume.Volume
	views  *mpr.ViewSet
	engine *measurement.Engine
	store  *store.Store

	// Listener registrations survive volume reloads.
	crosshairListeners   []func(volume.CrosshairPosition)
	measurementListeners []func(measurement.Measurement)
}

// New creates a viewer with no volume loaded. Navigation and measurement
// calls before LoadVolume are no-ops with a warning.
func New(opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mapping := opts.Mapping
	if mapping == (mpr.AxisMapping{}) {
		mapping = mpr.DefaultAxisMapping()
	}

	return &Viewer{
		logger:  logger,
		mapping: mapping,
		collab:  opts.Collaborators,
		probe:   opts.ProbeRadiusMM,
		store:   store.NewStore(),
	}
}

// LoadVolume replaces the current volume and rebuilds the view and tool
// state around it. Completed measurements are kept; the host clears them
// explicitly when a new exam starts.
func (v *Viewer) LoadVolume(vol *volume.Volume) error {
	if vol == nil {
		return fmt.Errorf("cannot load a nil volume")
	}

	views, err := mpr.NewViewSet(vol, v.mapping, v.logger)
	if err != nil {
		return fmt.Errorf("failed to build view set: %w", err)
	}
	engine, err := measurement.NewEngine(vol, v.store, v.collab, v.logger)
	if err != nil {
		return fmt.Errorf("failed to build measurement engine: %w", err)
	}
	engine.SetProbeRadius(v.probe)

	v.vol = vol
	v.views = views
	v.engine = engine

	for _, fn := range v.crosshairListeners {
		views.OnCrosshairChanged(fn)
	}
	for _, fn := range v.measurementListeners {
		engine.OnMeasurementAdded(fn)
	}

	v.logger.Debug("volume loaded",
		"dimensions", vol.Dimensions, "spacing", vol.Spacing)
	return nil
}

// Volume returns the currently loaded volume, or nil.
func (v *Viewer) Volume() *volume.Volume {
	return v.vol
}

func (v *Viewer) ready(op string) bool {
	if v.views == nil {
		v.logger.Warn("ignoring operation with no volume loaded", "op", op)
		return false
	}
	return true
}

// Crosshair returns the current crosshair position in voxel indices.
func (v *Viewer) Crosshair() volume.CrosshairPosition {
	if v.views == nil {
		return volume.CrosshairPosition{}
	}
	return v.views.Crosshair()
}

// SliceIndex returns the slice currently shown by the requested view.
func (v *Viewer) SliceIndex(p mpr.Plane) int {
	if v.views == nil {
		return 0
	}
	return v.views.SliceIndex(p)
}

// SetCrosshair moves the shared crosshair, clamped into bounds.
func (v *Viewer) SetCrosshair(pos volume.CrosshairPosition) {
	if !v.ready("setCrosshair") {
		return
	}
	v.views.SetCrosshair(pos)
}

// UpdateSliceFromSlider moves one view to the given slice index.
func (v *Viewer) UpdateSliceFromSlider(p mpr.Plane, index int) {
	if !v.ready("updateSliceFromSlider") {
		return
	}
	v.views.UpdateSliceFromSlider(p, index)
}

// HandleClick navigates the crosshair to a click on one of the views.
func (v *Viewer) HandleClick(p mpr.Plane, screenX, screenY, canvasWidth, canvasHeight float64) {
	if !v.ready("handleClick") {
		return
	}
	v.views.HandleClick(p, screenX, screenY, canvasWidth, canvasHeight)
}

// OnCrosshairChanged registers a listener for crosshair updates. The
// registration survives volume reloads.
func (v *Viewer) OnCrosshairChanged(fn func(volume.CrosshairPosition)) {
	v.crosshairListeners = append(v.crosshairListeners, fn)
	if v.views != nil {
		v.views.OnCrosshairChanged(fn)
	}
}

// ActivateTool activates a measurement tool (toggle semantics).
func (v *Viewer) ActivateTool(t measurement.Type) {
	if !v.ready("activateTool") {
		return
	}
	v.engine.ActivateTool(t)
}

// DeactivateTool clears the active tool and pending points.
func (v *Viewer) DeactivateTool() {
	if v.engine != nil {
		v.engine.DeactivateTool()
	}
}

// ActiveTool returns the active measurement tool, or the empty string.
func (v *Viewer) ActiveTool() measurement.Type {
	if v.engine == nil {
		return ""
	}
	return v.engine.ActiveTool()
}

// AddPoint adds a world point to the active tool.
func (v *Viewer) AddPoint(p geometry.Point3D) {
	if !v.ready("addPoint") {
		return
	}
	v.engine.AddPoint(p)
}

// AddPointFromScreen resolves a screen position through the injected
// point picker and adds the result to the active tool.
func (v *Viewer) AddPointFromScreen(screenX, screenY float64) {
	if !v.ready("addPointFromScreen") {
		return
	}
	v.engine.AddPointFromScreen(screenX, screenY)
}

// RemoveLastPoint undoes the most recent pending point.
func (v *Viewer) RemoveLastPoint() {
	if v.engine != nil {
		v.engine.RemoveLastPoint()
	}
}

// FinalizePolygon completes an in-progress area or volume measurement.
func (v *Viewer) FinalizePolygon() {
	if !v.ready("finalizePolygon") {
		return
	}
	v.engine.FinalizePolygon()
}

// Cancel aborts the in-progress measurement.
func (v *Viewer) Cancel() {
	if v.engine != nil {
		v.engine.Cancel()
	}
}

// OnMeasurementAdded registers a listener for completed measurements.
// The registration survives volume reloads.
func (v *Viewer) OnMeasurementAdded(fn func(measurement.Measurement)) {
	v.measurementListeners = append(v.measurementListeners, fn)
	if v.engine != nil {
		v.engine.OnMeasurementAdded(fn)
	}
}

// GetMeasurements returns all completed measurements in creation order.
func (v *Viewer) GetMeasurements() []measurement.Measurement {
	return v.store.List()
}

// GetMeasurement returns the measurement with the given ID, or nil.
func (v *Viewer) GetMeasurement(id int64) *measurement.Measurement {
	return v.store.Get(id)
}

// DeleteMeasurement removes a measurement; false when the ID is unknown.
func (v *Viewer) DeleteMeasurement(id int64) bool {
	return v.store.Delete(id)
}

// ClearMeasurements removes all completed measurements.
func (v *Viewer) ClearMeasurements() {
	v.store.Clear()
}

// ExportAsJSON serializes the measurement list as a versioned JSON
// document.
func (v *Viewer) ExportAsJSON() ([]byte, error) {
	return v.store.ExportJSON()
}

// ImportFromJSON restores a previously exported measurement list.
func (v *Viewer) ImportFromJSON(data []byte) error {
	return v.store.ImportJSON(data)
}

// ExportAsCSV renders the measurement list as CSV.
func (v *Viewer) ExportAsCSV() string {
	return v.store.ExportCSV()
}

// ExportAsHTML renders the measurement list as an HTML table.
func (v *Viewer) ExportAsHTML() string {
	return v.store.ExportHTML()
}
