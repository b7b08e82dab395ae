// Package api
// Author: momentics <momentics@gmail.com>
//
// Public contracts of hioload-buf: the error taxonomy, allocator and
// release-action collaborator interfaces, pool wait policies, and
// statistics DTOs. Concrete region, view, and pool implementations live
// in the buffer and pool packages.
package api
