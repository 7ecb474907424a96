package supplier

import "errors"

var ErrSupplierNotFound = errors.New("supplier not found")
