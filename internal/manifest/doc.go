// Package manifest loads service definitions from YAML files.
//
// A manifest lists the services of an application under a single `services`
// key:
//
//	services:
//	  - name: database
//	    category: infrastructure
//	    lifecycle: singleton
//	    dependencies: [config]
//	    config:
//	      dsn: postgres://localhost/app
//
// Decoding is strict, so a typo in a field name fails loudly instead of
// being dropped. Validation collects every problem in a document before
// returning. Manifests carry no factories: loaded definitions serve
// validation, ordering and display; the embedding program attaches
// factories before handing definitions to the container.
//
// Load reads a single file; LoadDir merges all YAML files of a directory in
// lexical filename order and rejects a service name declared twice across
// files. Absent paths fall back to the empty default manifest, so optional
// configuration locations never break startup.
package manifest
