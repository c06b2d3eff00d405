// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cdev_test

import (
	"log"

	"periph.io/x/conn/v3/physic"

	"github.com/heiderich/hygrochip-linux/hyt271"
	"github.com/heiderich/hygrochip-linux/i2cdev"
)

// Example opens a bus by its registered name and runs a periph driver on
// top of it.
func Example() {
	bus, err := i2cdev.OpenByName("bcm2708_i2c.1")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := hyt271.NewI2C(bus, hyt271.DefaultAddress)
	if err != nil {
		log.Fatal(err)
	}

	env := &physic.Env{}
	if err := dev.Sense(env); err != nil {
		log.Fatal(err)
	}
	log.Printf("Temperature: %s   Humidity: %s\n", env.Temperature, env.Humidity)
}
