package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mprcore/internal/logging"
	"mprcore/internal/viewer"
	"mprcore/pkg/config"
	"mprcore/pkg/geometry"
	"mprcore/pkg/measurement"
	"mprcore/pkg/mpr"
	"mprcore/pkg/volume"
)

// phantomRadius is the radius in voxels of the synthetic bone sphere.
const phantomRadius = 20.0

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "config.yaml", "Path to the viewer configuration file")
	outputDir := flag.String("output", "exports", "Directory to write measurement exports")
	size := flag.Int("size", 64, "Edge length of the synthetic volume in voxels")
	verbose := flag.Bool("verbose", false, "Enable verbose console logging")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *verbose {
		cfg.Logging.Verbose = true
	}

	logger, cleanup, err := logging.New(logging.Options{
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Verbose:    cfg.Logging.Verbose,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer cleanup()

	mapping, err := cfg.AxisMapping()
	if err != nil {
		log.Fatalf("Invalid axis convention: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("MPR VIEWER CORE DEMO")
	fmt.Println("Synchronized planar views and clinical measurements over a synthetic CT phantom")
	fmt.Println("================================")

	// Build the synthetic volume: a bone-density sphere in soft tissue.
	n := *size
	vol, err := volume.NewVolume([3]int{n, n, n}, [3]float64{0.5, 0.5, 1.0}, nil)
	if err != nil {
		log.Fatalf("Failed to create volume: %v", err)
	}
	grid, err := buildPhantom(n)
	if err != nil {
		log.Fatalf("Failed to build phantom: %v", err)
	}

	sampler := &measurement.GridSampler{Volume: vol, Grid: grid}
	picker := &measurement.FallbackPicker{
		Rays:       topDownRays{vol: vol, canvas: 400},
		DistanceMM: cfg.Picker.FallbackDistanceMM,
		Logger:     logger,
	}

	v := viewer.New(viewer.Options{
		Mapping: mapping,
		Collaborators: measurement.Collaborators{
			Picker:  picker,
			Sampler: sampler,
			Counter: boneROI{grid: grid},
		},
		ProbeRadiusMM: cfg.Measurement.ProbeRadiusMM,
		Logger:        logger,
	})

	v.OnCrosshairChanged(func(pos volume.CrosshairPosition) {
		fmt.Printf("  crosshair -> (%d, %d, %d)  axial=%d sagittal=%d coronal=%d\n",
			pos.X, pos.Y, pos.Z,
			v.SliceIndex(mpr.Axial), v.SliceIndex(mpr.Sagittal), v.SliceIndex(mpr.Coronal))
	})
	v.OnMeasurementAdded(func(m measurement.Measurement) {
		line := fmt.Sprintf("  measurement #%d: %s = %.2f %s", m.ID, m.Type, m.Value, m.Unit)
		if m.Tissue != "" {
			line += fmt.Sprintf(" (%s)", m.Tissue)
		}
		fmt.Println(line)
	})

	if err := v.LoadVolume(vol); err != nil {
		log.Fatalf("Failed to load volume: %v", err)
	}

	fmt.Println("\nStep 1: Navigating the views...")
	v.HandleClick(mpr.Axial, 300, 100, 400, 400)
	v.UpdateSliceFromSlider(mpr.Axial, n/2)
	v.HandleClick(mpr.Sagittal, 200, 200, 400, 400)

	fmt.Println("\nStep 2: Taking measurements...")

	// Distance across the sphere
	v.ActivateTool(measurement.Distance)
	v.AddPoint(vol.VoxelToWorld(volume.CrosshairPosition{X: n/2 - 20, Y: n / 2, Z: n / 2}))
	v.AddPoint(vol.VoxelToWorld(volume.CrosshairPosition{X: n/2 + 20, Y: n / 2, Z: n / 2}))

	// Angle at the sphere center
	v.ActivateTool(measurement.Angle)
	v.AddPoint(geometry.NewPoint3D(10, 0, 0))
	v.AddPoint(geometry.NewPoint3D(0, 0, 0))
	v.AddPoint(geometry.NewPoint3D(0, 10, 0))

	// Polygon area on the mid-axial slice
	v.ActivateTool(measurement.Area)
	v.AddPoint(geometry.NewPoint3D(0, 0, 16))
	v.AddPoint(geometry.NewPoint3D(8, 0, 16))
	v.AddPoint(geometry.NewPoint3D(8, 8, 16))
	v.AddPoint(geometry.NewPoint3D(0, 8, 16))
	v.FinalizePolygon()
	v.DeactivateTool()

	// ROI volume of the bone sphere
	v.ActivateTool(measurement.Volume)
	v.AddPoint(geometry.NewPoint3D(0, 0, 16))
	v.AddPoint(geometry.NewPoint3D(8, 0, 16))
	v.AddPoint(geometry.NewPoint3D(4, 8, 16))
	v.FinalizePolygon()
	v.DeactivateTool()

	// Density probe at the sphere center, then through the fallback
	// picker over empty space
	v.ActivateTool(measurement.Hounsfield)
	v.AddPoint(vol.VoxelToWorld(volume.CrosshairPosition{X: n / 2, Y: n / 2, Z: n / 2}))
	v.AddPointFromScreen(10, 10)
	v.DeactivateTool()

	fmt.Println("\nStep 3: Exporting measurements...")
	if err := writeExports(v, *outputDir); err != nil {
		log.Fatalf("Failed to write exports: %v", err)
	}

	fmt.Printf("\nDone. %d measurements exported to %s\n", len(v.GetMeasurements()), *outputDir)
}

// buildPhantom fills a cubic grid with soft-tissue background (40 HU)
// and a centered bone-density sphere (300 HU).
func buildPhantom(n int) (*volume.IntensityGrid, error) {
	data := make([]float64, n*n*n)
	center := float64(n) / 2

	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx := float64(x) - center
				dy := float64(y) - center
				dz := float64(z) - center

				hu := 40.0
				if dx*dx+dy*dy+dz*dz <= phantomRadius*phantomRadius {
					hu = 300.0
				}
				data[z*n*n+y*n+x] = hu
			}
		}
	}

	return volume.NewIntensityGrid(data, [3]int{n, n, n})
}

// boneROI counts bone-density voxels as the region of interest for
// volume measurements.
type boneROI struct {
	grid *volume.IntensityGrid
}

func (r boneROI) CountVoxels() int {
	return r.grid.CountInRange(100, 400)
}

// topDownRays maps screen positions to vertical rays above the volume,
// standing in for the renderer's camera in this headless demo.
type topDownRays struct {
	vol    *volume.Volume
	canvas float64
}

func (t topDownRays) Ray(screenX, screenY float64) (geometry.Point3D, geometry.Point3D) {
	extentX := float64(t.vol.Dimensions[0]) * t.vol.Spacing[0]
	extentY := float64(t.vol.Dimensions[1]) * t.vol.Spacing[1]

	origin := geometry.NewPoint3D(
		screenX/t.canvas*extentX,
		screenY/t.canvas*extentY,
		0,
	)
	return origin, geometry.NewPoint3D(0, 0, 1)
}

func writeExports(v *viewer.Viewer, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	data, err := v.ExportAsJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "measurements.json"), data, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "measurements.csv"), []byte(v.ExportAsCSV()), 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "measurements.html"), []byte(v.ExportAsHTML()), 0644)
}
