// Package repokit is the thin contract between repos and the platform
// store: the statement surface they program against plus the binder and
// bootstrap guard they share.
package repokit

import "numwash/internal/platform/store"

// Queryer is the statement surface repos program against, pooled or
// transactional alike
type Queryer = store.RowQuerier

// TxRunner runs a function inside one transaction
type TxRunner = store.TxRunner
