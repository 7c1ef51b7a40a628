package retrieval

import (
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/intent"
)

// Knowledge base categories used to narrow similarity search.
const (
	CategoryProductsServices = "products_services"
	CategoryInstitutional    = "institutional"
)

// CategoryForIntent derives the retrieval filter from the classified
// intent. An empty string means no filter. Kept as a table so the mapping
// stays testable on its own.
func CategoryForIntent(i intent.Intent) string {
	switch i {
	case intent.IntentQuoteRequest, intent.IntentProductQuestion:
		return CategoryProductsServices
	case intent.IntentJobInquiry, intent.IntentOutOfRegion:
		return CategoryInstitutional
	default:
		return ""
	}
}
