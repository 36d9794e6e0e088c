package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	display "github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/conn"
)

func main() {
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("device", 0, "SPI device")
	speedFlag := flag.Int64("speed", int64(display.DefaultSPIConfig.Speed/physic.Hertz), "SPI speed in Hz")
	modeFlag := flag.Int("mode", 0, "SPI mode (0-3)")
	dcPinFlag := flag.String("dc", "", "Data/Command GPIO pin; if set, a no-op command is sent to the display")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("host init failed")
	}

	speed := physic.Frequency(*speedFlag) * physic.Hertz
	mode := conn.SPIMode(*modeFlag)
	c, err := conn.OpenSPI(*busFlag, *deviceFlag, speed, mode)
	if err != nil {
		log.Fatal().Err(err).Msg("open failed")
	}
	fmt.Println("connected using", c)
	fmt.Println("max speed:", c.MaxSpeed())
	if limit := c.MaxTxSize(); limit > 0 {
		fmt.Println("max transfer size:", limit)
	}
	if err = c.Close(); err != nil {
		log.Fatal().Err(err).Msg("close failed")
	}

	if *dcPinFlag == "" {
		return
	}

	dc, err := conn.Pin(*dcPinFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("dc pin")
	}
	d, err := display.OpenSPI(&display.SPIConfig{
		Bus:    *busFlag,
		Device: *deviceFlag,
		Mode:   mode,
		Speed:  speed,
		DC:     dc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open display failed")
	}
	defer d.Close()

	// 0xE3 is a no-op on all supported controllers
	if err = d.Command(0xE3); err != nil {
		log.Error().Err(err).Msg("no-op failed")
		return
	}
	log.Info().Stringer("conn", d).Msg("no-op sent")
}
