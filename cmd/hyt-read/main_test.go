// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/heiderich/hygrochip-linux/hyt271"
)

func TestParseArgsBusAndDeviceExclusive(t *testing.T) {
	// The conflict must be rejected during parsing, before any device is
	// touched.
	var stderr strings.Builder
	_, err := parseArgs([]string{"-b", "bcm2708_i2c.1", "-d", "/dev/i2c-0"}, &stderr)
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected a usage error, got %v", err)
	}
	if !strings.Contains(stderr.String(), "both -d and -b") {
		t.Errorf("unexpected message: %q", stderr.String())
	}

	stderr.Reset()
	_, err = parseArgs([]string{"-a", "0x28"}, &stderr)
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected a usage error when neither -b nor -d is given, got %v", err)
	}
}

func TestParseArgsPositional(t *testing.T) {
	_, err := parseArgs([]string{"-d", "/dev/i2c-0", "extra"}, io.Discard)
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected a usage error for a positional argument, got %v", err)
	}
}

func TestParseArgsDefaults(t *testing.T) {
	c, err := parseArgs([]string{"-d", "/dev/i2c-0"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if c.addr != 0x28 {
		t.Errorf("default address = %#x, want 0x28", c.addr)
	}
	if c.interval != 0 {
		t.Errorf("default interval = %d, want 0", c.interval)
	}
	if !c.printT || !c.printH {
		t.Error("with neither -T nor -H, both values must be printed")
	}

	c, err = parseArgs([]string{"-d", "/dev/i2c-0", "-T", "-i", "5"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if c.printH || !c.printT {
		t.Error("-T must select only the temperature")
	}
	if c.interval != 5 {
		t.Errorf("interval = %d, want 5", c.interval)
	}
}

func TestParseSlaveAddress(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want uint16
		ok   bool
	}{
		{"0x28", 0x28, true},
		{"40", 40, true},
		{"0x03", 0x03, true},
		{"0x77", 0x77, true},
		{"0x02", 0, false},
		{"0x78", 0, false},
		{"-1", 0, false},
		{"zz", 0, false},
		{"", 0, false},
	} {
		got, err := parseSlaveAddress(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("parseSlaveAddress(%q) error = %v, want ok=%t", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("parseSlaveAddress(%q) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
}

func TestPrintReading(t *testing.T) {
	r := hyt271.Reading{Humidity: 0, Temperature: -40}

	var out strings.Builder
	printReading(&out, &config{printH: true, printT: true}, r)
	if out.String() != "0.000000 -40.000000\n" {
		t.Errorf("both values: %q", out.String())
	}

	out.Reset()
	printReading(&out, &config{printH: true}, r)
	if out.String() != "0.000000\n" {
		t.Errorf("humidity only: %q", out.String())
	}

	out.Reset()
	printReading(&out, &config{printT: true}, r)
	if out.String() != "-40.000000\n" {
		t.Errorf("temperature only: %q", out.String())
	}
}
