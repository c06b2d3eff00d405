// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hyt271

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// DefaultAddress is the factory programmed I²C address of the sensor
// family. Sensors can be reprogrammed to any other 7 bit address.
const DefaultAddress i2c.Addr = 0x28

const (
	// cmdMeasure starts a measurement cycle.
	cmdMeasure byte = 0x00

	// settleTime is the conversion time between the measurement request
	// and the data read. The sensor has no ready bit or interrupt line;
	// the fixed delay is the only synchronization.
	settleTime = 60 * time.Millisecond

	// The humidity count maps its full 14 bit range onto 0..100%. The
	// temperature scale divides by 0xfffc, the mask applied to the low
	// byte, not the nominal 14 bit full scale 0x3ffc; full scale still
	// decodes to exactly 125°C.
	humidityDivisor    = float64(0x3fff)
	temperatureDivisor = float64(0xfffc)

	minSampleInterval = 100 * time.Millisecond
)

// Frame is one raw measurement response. Bytes 0 and 1 carry the humidity
// count, bytes 2 and 3 the temperature count, big-endian. The top two bits
// of byte 0 and the bottom two bits of byte 3 are status bits; Decode masks
// them off without interpreting them.
type Frame [4]byte

// Reading is a decoded measurement.
type Reading struct {
	// Humidity is the relative humidity in percent, 0 to 100.
	Humidity float64
	// Temperature is in degrees Celsius, -40 to 125.
	Temperature float64
}

// Decode converts the frame into physical units. It is a pure function and
// total: no clamping is applied, so a frame with out-of-spec counts simply
// decodes to out-of-range values.
func (f Frame) Decode() Reading {
	h := uint16(f[0]&0x3f)<<8 | uint16(f[1])
	t := uint16(f[2])<<8 | uint16(f[3]&0xfc)
	return Reading{
		Humidity:    float64(h) * 100 / humidityDivisor,
		Temperature: float64(t)*165/temperatureDivisor - 40,
	}
}

// Dev represents a Hygrochip sensor on an I²C bus.
type Dev struct {
	d        *i2c.Dev
	mu       sync.Mutex
	shutdown chan struct{}
}

// NewI2C returns a driver for the sensor at addr on bus. Use
// DefaultAddress unless the sensor has been reprogrammed.
func NewI2C(b i2c.Bus, addr i2c.Addr) (*Dev, error) {
	return &Dev{d: &i2c.Dev{Bus: b, Addr: uint16(addr)}}, nil
}

// Measure runs one measurement cycle and returns the raw frame. A read
// that delivers fewer than 4 bytes fails; the frame is never padded.
func (d *Dev) Measure() (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var f Frame
	if err := d.d.Tx([]byte{cmdMeasure}, nil); err != nil {
		return f, fmt.Errorf("hyt271: error requesting measurement: %w", err)
	}
	time.Sleep(settleTime)
	if err := d.d.Tx(nil, f[:]); err != nil {
		return f, fmt.Errorf("hyt271: error reading measurement: %w", err)
	}
	return f, nil
}

// Sense implements physic.SenseEnv. It runs one measurement cycle, so it
// blocks for at least the 60 ms conversion time.
func (d *Dev) Sense(e *physic.Env) error {
	f, err := d.Measure()
	if err != nil {
		return err
	}
	r := f.Decode()
	e.Temperature = physic.ZeroCelsius + physic.Temperature(r.Temperature*float64(physic.Kelvin))
	e.Pressure = 0
	e.Humidity = physic.RelativeHumidity(r.Humidity * float64(physic.PercentRH))
	return nil
}

// SenseContinuous returns a channel that receives a measurement every
// interval. To end the reads, call Halt().
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		return nil, errors.New("hyt271: SenseContinuous already running")
	}
	if interval < minSampleInterval {
		return nil, fmt.Errorf("hyt271: interval must be at least %s", minSampleInterval)
	}

	d.shutdown = make(chan struct{})
	ch := make(chan physic.Env, 16)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-d.shutdown:
				d.mu.Lock()
				d.shutdown = nil
				d.mu.Unlock()
				return
			case <-ticker.C:
				var e physic.Env
				if err := d.Sense(&e); err == nil {
					ch <- e
				}
			}
		}
	}()
	return ch, nil
}

// Halt stops a running SenseContinuous. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		close(d.shutdown)
	}
	return nil
}

// Precision implements physic.SenseEnv. Both values are 14 bit counts over
// the full measurement range.
func (d *Dev) Precision(e *physic.Env) {
	tempStep := 165.0 / 16383.0 * float64(physic.Kelvin)
	e.Temperature = physic.Temperature(tempStep)
	e.Pressure = 0
	humStep := 100.0 / 16383.0 * float64(physic.PercentRH)
	e.Humidity = physic.RelativeHumidity(humStep)
}

func (d *Dev) String() string {
	return fmt.Sprintf("hyt271: %s", d.d)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
