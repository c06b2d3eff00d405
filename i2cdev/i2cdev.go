// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cdev exposes Linux i2c-dev character devices as I²C buses.
//
// A Bus is opened either from an explicit device node path or from the
// symbolic bus name registered in /sys/class/i2c-dev (e.g. "bcm2708_i2c.1").
// The slave address is selected with the I2C_SLAVE ioctl and transfers are
// plain read(2)/write(2) calls, so the package works on any kernel with
// i2c-dev loaded, without requiring combined-transaction support.
//
// Bus implements i2c.BusCloser from periph.io/x/conn/v3, so any periph
// device driver can run on top of it.
package i2cdev

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// i2cSlave is the Linux I2C_SLAVE ioctl request number from
// <linux/i2c-dev.h>; golang.org/x/sys/unix does not export it.
const i2cSlave = 0x0703

// file is the slice of the open device node the bus needs. The concrete
// implementation wraps *os.File; tests substitute fakes.
type file interface {
	io.ReadWriteCloser
	ioctl(op uint, arg uintptr) error
	Name() string
}

type devFile struct {
	f *os.File
}

func (d *devFile) Read(p []byte) (int, error)  { return d.f.Read(p) }
func (d *devFile) Write(p []byte) (int, error) { return d.f.Write(p) }
func (d *devFile) Close() error                { return d.f.Close() }
func (d *devFile) Name() string                { return d.f.Name() }

func (d *devFile) ioctl(op uint, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), uintptr(op), arg); errno != 0 {
		return errno
	}
	return nil
}

// Bus is an open handle to an i2c-dev character device. It is bound to one
// slave address at a time; the binding is issued lazily on the first
// transfer and re-issued whenever a transfer targets a different address.
type Bus struct {
	f     file
	mu    sync.Mutex
	addr  uint16
	bound bool
}

// Open opens the device node at path.
func Open(path string) (*Bus, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("i2cdev: opening %s: %w", path, err)
	}
	return &Bus{f: &devFile{f: f}}, nil
}

// OpenByName resolves name against the sysfs bus registry and opens the
// matching device node under /dev.
func OpenByName(name string) (*Bus, error) {
	entry, err := Locate(SysfsRegistry(), name)
	if err != nil {
		return nil, err
	}
	return Open("/dev/" + entry)
}

// Tx binds the slave address if needed, writes w if non-empty, then reads
// into r if non-empty. Each direction is its own bus transaction with a
// repeated start left to the caller's pacing; there is no combined
// write-then-read. A read that delivers fewer than len(r) bytes fails with
// ShortReadError.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.bound || b.addr != addr {
		if err := b.f.ioctl(i2cSlave, uintptr(addr)); err != nil {
			return fmt.Errorf("i2cdev: binding slave address %#02x on %s: %w", addr, b.f.Name(), err)
		}
		b.addr = addr
		b.bound = true
	}
	if len(w) != 0 {
		n, err := b.f.Write(w)
		if err != nil {
			return fmt.Errorf("i2cdev: writing to %s: %w", b.f.Name(), err)
		}
		if n != len(w) {
			return fmt.Errorf("i2cdev: short write to %s: wrote %d of %d bytes", b.f.Name(), n, len(w))
		}
	}
	if len(r) != 0 {
		n, err := b.f.Read(r)
		if err != nil {
			return fmt.Errorf("i2cdev: reading from %s: %w", b.f.Name(), err)
		}
		if n < len(r) {
			return &ShortReadError{Want: len(r), Got: n}
		}
	}
	return nil
}

// SetSpeed implements i2c.Bus. The bus frequency is fixed by the adapter
// driver and cannot be changed through i2c-dev.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return fmt.Errorf("i2cdev: speed of %s is not settable", b.f.Name())
}

func (b *Bus) String() string {
	return b.f.Name()
}

// Close releases the device node.
func (b *Bus) Close() error {
	return b.f.Close()
}

var _ i2c.BusCloser = &Bus{}
