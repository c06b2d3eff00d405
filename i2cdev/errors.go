// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cdev

import "fmt"

// NotFoundError is returned by Locate and OpenByName when no registered bus
// carries the requested name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find i2c bus %s", e.Name)
}

// ShortReadError is returned by Tx when the device delivers fewer bytes
// than the transfer requested. The partial data is discarded.
type ShortReadError struct {
	Want, Got int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("short read (%d of %d bytes)", e.Got, e.Want)
}
