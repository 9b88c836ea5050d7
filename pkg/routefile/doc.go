// SPDX-License-Identifier: MPL-2.0

// Package routefile reads route definitions from disk and builds a route tree.
//
// YAML, TOML, CUE and JSON documents share one shape:
//
//	method_prefix: handle_
//	routes:
//	  - path: users
//	    controller: users
//	    routes:
//	      - path: false
//	        method: handle_index
//	        http: GET
//	      - include: admin.yaml
//
// Each document is validated against the embedded #RouteFile CUE schema
// before decoding. An item holding nothing but include is replaced by the top
// level routes of the referenced file; an include next to other attributes
// appends those routes after the item's inline children. Include cycles are
// rejected.
package routefile
