// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hyt271 controls an IST HYT-221/HYT-271/HYT-939 Hygrochip sensor
// over I²C. The sensor measures relative humidity (0 to 100%) and
// temperature (-40 to 125°C), both as 14 bit counts in a single 4 byte
// frame. The hyt271.Dev type implements the physic.SenseEnv interface; the
// physic.Env results carry a humidity and temperature value, the pressure
// is always 0.
//
// The sensor exposes no ready signal. A measurement is a write of the
// request byte, a fixed 60 ms conversion wait, then a 4 byte read.
//
// Datasheet: https://www.ist-ag.com/sites/default/files/downloads/hyt271.pdf
package hyt271
