// Package api
// Author: momentics <momentics@gmail.com>
//
// Interface surface of the pagebuf library: the contract between demand-paged
// buffers and the shared paging pool that holds their evicted bytes.
// Implementations live in the buffer and pool packages; this package stays
// dependency-free.
package api
