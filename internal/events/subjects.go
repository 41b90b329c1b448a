package events

const (
	StreamName   = "RIGFIT_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectCatalogCreated(catalogID string) string { return "rigfit.catalog." + catalogID + ".created" }
func SubjectCatalogUpdated(catalogID string) string { return "rigfit.catalog." + catalogID + ".updated" }
func SubjectCatalogDeleted(catalogID string) string { return "rigfit.catalog." + catalogID + ".deleted" }

func SubjectAnalysisCompleted(catalogID string) string {
	return "rigfit.analysis." + catalogID + ".completed"
}
