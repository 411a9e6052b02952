// Package swaggerkit mounts the Swagger UI and the doc.json backing it,
// with hooks for modules to annotate the served spec
package swaggerkit

import (
	"net/http"

	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// docsPrefix is where the UI lives; doc.json sits underneath it
const docsPrefix = "/api/docs"

// Mount wires the UI, the spec endpoint, and a redirect from the bare
// prefix. Disabled mounts nothing, so the docs paths 404
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsPrefix, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsPrefix+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsPrefix+"/doc.json", serveDocJSON())
	r.Handle(docsPrefix+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docsPrefix+"/doc.json"),
	))
}
