package api

import "fmt"

// DefaultBaseURL is the published origin of the iCare backend. Override it
// with ICARE_BASE_URL or the config file when pointing at a local server.
const DefaultBaseURL = "http://172.16.217.175:8000"

// Endpoint paths, mirrored from the backend URL configuration. Parameterized
// resources are plain string substitution; there is no query builder beyond
// literal concatenation.
const (
	EndpointChat           = "/chat/unified/"
	EndpointLogin          = "/users/login/"
	EndpointRegister       = "/users/register/"
	EndpointLogout         = "/users/logout/"
	EndpointDelete         = "/users/delete/"
	EndpointProfile        = "/users/profile/"
	EndpointUpdateLocation = "/users/update-location/"

	EndpointPrescriptionOCR    = "/prescriptions/ocr/"
	EndpointPrescriptionList   = "/prescriptions/list/"
	EndpointPrescriptionByDate = "/prescriptions/by-date/"

	EndpointDrugInfo = "/drug/drug-info/"
)

// ListKind selects the dedicated hospital/pharmacy list variant.
type ListKind string

const (
	ListNearby ListKind = "nearby"
	ListOpen   ListKind = "open"
)

func hospitalListPath(kind ListKind) string {
	return fmt.Sprintf("/hospital/%s/", kind)
}

func pharmacyListPath(kind ListKind) string {
	return fmt.Sprintf("/pharmacy/%s/", kind)
}

func prescriptionDetailPath(id int) string {
	return fmt.Sprintf("/prescriptions/detail/%d/", id)
}

func prescriptionDeletePath(id int) string {
	return fmt.Sprintf("/prescriptions/%d/", id)
}
