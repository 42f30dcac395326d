// Package engine drives a cleaning run. It discovers PDFs under the source
// root, cleans them one at a time, moves the results into the destination
// and records every outcome, then persists the report, summary and audit
// entry. This package is internal; external consumers should use the stable
// facade in pkg/core.
package engine
