package measurement

// Tissue classification thresholds in Hounsfield units. Each range is
// half-open [lower, upper); anything at or above the last threshold is
// metal. The thresholds are checked in order, so the table must stay
// sorted ascending.
var tissueThresholds = []struct {
	upper float64
	name  string
}{
	{-100, "Air"},
	{-50, "Fat"},
	{0, "Fluid"},
	{50, "Soft Tissue"},
	{100, "Dense Tissue"},
	{400, "Bone"},
}

// ClassifyTissue returns the tissue type for a CT intensity in
// Hounsfield units.
func ClassifyTissue(hu float64) string {
	for _, t := range tissueThresholds {
		if hu < t.upper {
			return t.name
		}
	}
	return "Metal"
}
