// Package control
// Author: momentics <momentics@gmail.com>
//
// Observability surface for pool statistics: a named registry of stats
// sources and a prometheus collector that scrapes it. The buffer and pool
// hot paths never push into this package.
package control
