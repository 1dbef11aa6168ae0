package measurement

import (
	"fmt"
	"log/slog"
	"math"

	"mprcore/pkg/geometry"
	"mprcore/pkg/volume"
)

// Recorder persists completed measurements and assigns their identity.
// Implemented by store.Store.
type Recorder interface {
	Create(m Measurement) Measurement
}

// Collaborators are the external capabilities the engine consumes. All
// fields are optional; a tool that needs a missing collaborator logs a
// warning and leaves state unchanged.
type Collaborators struct {
	// Picker resolves screen positions to world points (renderer).
	Picker PointPicker

	// Sampler looks up volume intensity for density measurements. If it
	// also implements RegionSampler, density probes report neighborhood
	// statistics.
	Sampler IntensitySampler

	// Counter reports ROI voxel counts for volume measurements
	// (segmentation collaborator).
	Counter VoxelCounter
}

// Engine is the measurement tool state machine. At most one tool is
// active at a time; picked points accumulate until the tool's completion
// condition is met, then a Measurement is computed and recorded.
//
// The engine is owned by a single goroutine (the UI event loop). No
// method blocks; listeners run inline after state is consistent. Every
// invalid operation degrades to a no-op so user input can never crash an
// exam in progress.
type Engine struct {
	vol      *volume.Volume
	recorder Recorder
	collab   Collaborators
	logger   *slog.Logger

	// probeRadiusMM is the neighborhood half-width for density probe
	// statistics; 0 disables the statistics.
	probeRadiusMM float64

	activeTool    Type // empty string when idle
	pendingPoints []geometry.Point3D

	listeners []func(Measurement)
}

// NewEngine creates a measurement engine over the given volume. The
// recorder is required; collaborators are optional. A nil logger falls
// back to slog.Default().
func NewEngine(vol *volume.Volume, recorder Recorder, collab Collaborators, logger *slog.Logger) (*Engine, error) {
	if vol == nil {
		return nil, fmt.Errorf("engine requires a volume")
	}
	if recorder == nil {
		return nil, fmt.Errorf("engine requires a measurement recorder")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		vol:      vol,
		recorder: recorder,
		collab:   collab,
		logger:   logger,
	}, nil
}

// SetProbeRadius sets the neighborhood half-width in mm for density
// probe statistics. Zero disables them.
func (e *Engine) SetProbeRadius(radiusMM float64) {
	if radiusMM < 0 {
		radiusMM = 0
	}
	e.probeRadiusMM = radiusMM
}

// ActiveTool returns the currently active tool, or the empty string when
// idle.
func (e *Engine) ActiveTool() Type {
	return e.activeTool
}

// PendingPoints returns a copy of the points collected so far for the
// active tool.
func (e *Engine) PendingPoints() []geometry.Point3D {
	out := make([]geometry.Point3D, len(e.pendingPoints))
	copy(out, e.pendingPoints)
	return out
}

// OnMeasurementAdded registers a listener invoked after each completed
// measurement has been recorded.
func (e *Engine) OnMeasurementAdded(fn func(Measurement)) {
	e.listeners = append(e.listeners, fn)
}

// ActivateTool activates the given tool, clearing any pending points.
// Activating the tool that is already active deactivates it instead
// (toggle semantics).
func (e *Engine) ActivateTool(t Type) {
	if !t.valid() {
		e.logger.Warn("ignoring activation of unknown tool", "tool", string(t))
		return
	}

	if e.activeTool == t {
		e.DeactivateTool()
		return
	}

	e.activeTool = t
	e.pendingPoints = nil
	e.logger.Debug("tool activated", "tool", string(t))
}

// DeactivateTool clears the active tool and all pending points.
func (e *Engine) DeactivateTool() {
	if e.activeTool != "" {
		e.logger.Debug("tool deactivated", "tool", string(e.activeTool))
	}
	e.activeTool = ""
	e.pendingPoints = nil
}

// Cancel aborts the in-progress measurement. Equivalent to
// DeactivateTool.
func (e *Engine) Cancel() {
	e.DeactivateTool()
}

// AddPoint appends a picked world point to the active tool. Without an
// active tool this is a no-op. Distance, angle and density tools
// complete automatically at their required point count; area and volume
// wait for FinalizePolygon.
func (e *Engine) AddPoint(p geometry.Point3D) {
	if e.activeTool == "" {
		e.logger.Debug("ignoring point with no active tool")
		return
	}

	e.pendingPoints = append(e.pendingPoints, p)

	switch e.activeTool {
	case Distance:
		if len(e.pendingPoints) == 2 {
			e.complete()
		}
	case Angle:
		if len(e.pendingPoints) == 3 {
			e.complete()
		}
	case Hounsfield:
		e.complete()
	case Area, Volume:
		// Explicit finalize required.
	}
}

// AddPointFromScreen resolves a screen position through the point picker
// and adds the resulting world point. When the picker is missing or
// reports no intersection, the addition is dropped with a warning and
// tool state is unchanged.
func (e *Engine) AddPointFromScreen(screenX, screenY float64) {
	if e.activeTool == "" {
		e.logger.Debug("ignoring screen point with no active tool")
		return
	}
	if e.collab.Picker == nil {
		e.logger.Warn("no point picker attached, dropping point",
			"screenX", screenX, "screenY", screenY)
		return
	}

	point, ok := e.collab.Picker.Pick(screenX, screenY)
	if !ok {
		e.logger.Warn("renderer reported no intersection, dropping point",
			"screenX", screenX, "screenY", screenY)
		return
	}

	e.AddPoint(point)
}

// RemoveLastPoint pops the most recent pending point, supporting undo.
// No-op when nothing is pending.
func (e *Engine) RemoveLastPoint() {
	if len(e.pendingPoints) == 0 {
		return
	}
	e.pendingPoints = e.pendingPoints[:len(e.pendingPoints)-1]
}

// FinalizePolygon completes an in-progress area or volume measurement.
// Requires an active area or volume tool and at least 3 points;
// otherwise it is a no-op.
func (e *Engine) FinalizePolygon() {
	if e.activeTool != Area && e.activeTool != Volume {
		e.logger.Debug("ignoring finalize outside area/volume tool",
			"tool", string(e.activeTool))
		return
	}
	if len(e.pendingPoints) < 3 {
		e.logger.Debug("ignoring finalize with too few points",
			"points", len(e.pendingPoints))
		return
	}
	e.complete()
}

// complete computes the measurement for the active tool, records it,
// clears the pending points and keeps the tool active for the next
// measurement. On a computation failure (missing collaborator) the
// pending points are kept so the user can retry.
func (e *Engine) complete() {
	m, ok := e.compute()
	if !ok {
		return
	}

	recorded := e.recorder.Create(m)
	e.pendingPoints = nil

	e.logger.Debug("measurement recorded",
		"id", recorded.ID, "type", string(recorded.Type),
		"value", recorded.Value, "unit", recorded.Unit)

	for _, fn := range e.listeners {
		fn(recorded)
	}
}

func (e *Engine) compute() (Measurement, bool) {
	points := make([]geometry.Point3D, len(e.pendingPoints))
	copy(points, e.pendingPoints)

	m := Measurement{Type: e.activeTool, Points: points}

	switch e.activeTool {
	case Distance:
		m.Value = geometry.Distance(points[0], points[1])
		m.Unit = "mm"
		m.Accuracy = fmt.Sprintf("±%.2f mm", e.halfVoxelDiagonal())

	case Angle:
		// The vertex is the second point clicked.
		m.Value = geometry.Angle(points[0], points[1], points[2])
		m.Unit = "degrees"

	case Area:
		m.Value = geometry.PolygonArea(points)
		m.Unit = "mm²"

	case Volume:
		if e.collab.Counter == nil {
			e.logger.Warn("no voxel counter attached, cannot complete volume measurement")
			return Measurement{}, false
		}
		voxels := e.collab.Counter.CountVoxels()
		mm3 := float64(voxels) * e.vol.Spacing[0] * e.vol.Spacing[1] * e.vol.Spacing[2]
		m.Value = mm3 / 1000.0 // mm³ -> cm³
		m.Unit = "cm³"

	case Hounsfield:
		if e.collab.Sampler == nil {
			e.logger.Warn("no intensity sampler attached, cannot complete density measurement")
			return Measurement{}, false
		}
		hu := e.collab.Sampler.SampleAt(points[0])
		m.Value = hu
		m.Unit = "HU"
		m.Tissue = ClassifyTissue(hu)

		if rs, ok := e.collab.Sampler.(RegionSampler); ok && e.probeRadiusMM > 0 {
			m.Stats = NewProbeStats(rs.SampleRegion(points[0], e.probeRadiusMM))
		}
	}

	return m, true
}

// halfVoxelDiagonal is the distance accuracy bound implied by the voxel
// spacing: half the diagonal of one voxel in mm.
func (e *Engine) halfVoxelDiagonal() float64 {
	s := e.vol.Spacing
	return math.Sqrt(s[0]*s[0]+s[1]*s[1]+s[2]*s[2]) / 2.0
}
