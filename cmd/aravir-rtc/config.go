package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/astoeckel/aravir-rtc/rtc"
)

// Config defines program configuration.
type Config struct {
	SRAMSize int           // User SRAM size in bytes (0 = DS3231, 236 = DS3232).
	BusAddr  int           // Seven bit bus address the emulated chip listens on.
	Poll     time.Duration // Interval between host reads of the time registers.
	SetTime  bool          // Write the host clock into the chip at startup?
	Duration time.Duration // Total runtime; 0 runs until interrupted.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the
// program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.SRAMSize = rtc.SRAMSizeDS3232
	c.BusAddr = 0x68
	c.Poll = time.Second

	flag.Usage = func() {
		fmt.Printf("%s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.SRAMSize, "sram", c.SRAMSize, "User SRAM size in bytes; 0 emulates a DS3231, 236 a DS3232.")
	flag.IntVar(&c.BusAddr, "addr", c.BusAddr, "Bus address the emulated chip listens on.")
	flag.DurationVar(&c.Poll, "poll", c.Poll, "Interval between time register reads.")
	flag.BoolVar(&c.SetTime, "set-time", c.SetTime, "Set the emulated chip from the host clock at startup.")
	flag.DurationVar(&c.Duration, "duration", c.Duration, "Stop after this long; 0 runs until interrupted.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	return &c
}
