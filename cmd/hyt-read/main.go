// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// hyt-read polls a Hygrochip humidity/temperature sensor on a Linux I²C
// bus and prints the decoded readings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	logger "github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/i2c"

	"github.com/heiderich/hygrochip-linux/hyt271"
	"github.com/heiderich/hygrochip-linux/i2cdev"
)

const usageText = `Usage: hyt-read [ -b I2C bus name | -d device file ] [ -a I2C slave address ]
                [ -i seconds ] [ -T ] [ -H ]
Options:
	-b X	Open the I2C bus named X (e.g. bcm2708_i2c.1)
	-d X	Open the I2C device named X (e.g. /dev/i2c-0)
	-a X	Target I2C slave address X (default 0x28)
	-i X	Read data every X seconds
	-T	Print only temperature
	-H	Print only humidity
	-v	Log bus resolution and raw frames
	-h	Show this message

`

var lg = logger.NewPackageLogger("hyt-read", logger.ErrorLevel)

// errUsage marks failures that should be followed by the usage text. The
// specific message has already been written to stderr when it is returned.
var errUsage = errors.New("usage error")

// config is the validated command line.
type config struct {
	busName  string
	devPath  string
	addr     uint16
	interval int
	printT   bool
	printH   bool
	verbose  bool
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("hyt-read", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var c config
	var addr string
	fs.StringVar(&c.busName, "b", "", "")
	fs.StringVar(&c.devPath, "d", "", "")
	fs.StringVar(&addr, "a", "0x28", "")
	fs.IntVar(&c.interval, "i", 0, "")
	fs.BoolVar(&c.printT, "T", false, "")
	fs.BoolVar(&c.printH, "H", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, flag.ErrHelp
		}
		fmt.Fprintln(stderr, err)
		return nil, errUsage
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "unexpected argument %q\n", fs.Arg(0))
		return nil, errUsage
	}
	if c.busName != "" && c.devPath != "" {
		fmt.Fprintln(stderr, "Cannot use both -d and -b options")
		return nil, errUsage
	}
	if c.busName == "" && c.devPath == "" {
		fmt.Fprintln(stderr, "Either the -d or -b option must be present")
		return nil, errUsage
	}

	n, err := parseSlaveAddress(addr)
	if err != nil {
		return nil, err
	}
	c.addr = n

	// If neither -T nor -H was given, show both.
	if !c.printT && !c.printH {
		c.printT = true
		c.printH = true
	}
	return &c, nil
}

// parseSlaveAddress accepts a decimal or prefixed hex/octal address and
// enforces the valid 7 bit range.
func parseSlaveAddress(s string) (uint16, error) {
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad slave address %q", s)
	}
	if n < 0x03 || n > 0x77 {
		return 0, fmt.Errorf("slave address %#x outside legal range [0x03, 0x77]", n)
	}
	return uint16(n), nil
}

func openBus(c *config) (*i2cdev.Bus, error) {
	if c.busName != "" {
		lg.Debugf("resolving i2c bus named %q", c.busName)
		return i2cdev.OpenByName(c.busName)
	}
	return i2cdev.Open(c.devPath)
}

func run(c *config, stdout io.Writer) error {
	bus, err := openBus(c)
	if err != nil {
		return err
	}
	defer bus.Close()
	lg.Debugf("using %s, slave address %#02x", bus, c.addr)

	dev, err := hyt271.NewI2C(bus, i2c.Addr(c.addr))
	if err != nil {
		return err
	}

	// The body always runs at least once; a non-positive interval means a
	// single shot.
	for {
		f, err := dev.Measure()
		if err != nil {
			return err
		}
		lg.Debugf("raw frame: % x", f[:])
		printReading(stdout, c, f.Decode())
		if c.interval <= 0 {
			return nil
		}
		time.Sleep(time.Duration(c.interval) * time.Second)
	}
}

// printReading writes one line: humidity first, then temperature, space
// separated, %f with its default six fractional digits.
func printReading(w io.Writer, c *config, r hyt271.Reading) {
	sep := ""
	if c.printH {
		fmt.Fprintf(w, "%f", r.Humidity)
		sep = " "
	}
	if c.printT {
		fmt.Fprintf(w, "%s%f", sep, r.Temperature)
	}
	fmt.Fprintln(w)
}

func main() {
	code := mainImpl()
	logger.FinalizeLogger()
	os.Exit(code)
}

func mainImpl() int {
	c, err := parseArgs(os.Args[1:], os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprint(os.Stdout, usageText)
		return 1
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stdout, usageText)
		return 1
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if c.verbose {
		_ = logger.ChangePackageLogLevel("hyt-read", logger.DebugLevel)
	}

	if err := run(c, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
