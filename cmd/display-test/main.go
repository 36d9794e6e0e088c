package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	display "github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/conn"
	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
)

func main() {
	widthFlag := flag.Int("width", 0, "Display width")
	heightFlag := flag.Int("height", 0, "Display height")
	profileFlag := flag.String("profile", "i2c", "SSD1306 initialization profile (i2c, spi or panel)")
	externalVCCFlag := flag.Bool("external-vcc", false, "Display is powered by an external VCC")
	swapCOMSplitFlag := flag.Bool("swap-com-split", false, "Swap the SSD1327 odd/even COM split")
	i2cDeviceFlag := flag.Int("i2c-dev", display.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(display.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	spiSpeedFlag := flag.Int64("spi-speed", int64(display.DefaultSPIConfig.Speed/physic.Hertz), "SPI speed in Hz")
	resetPinFlag := flag.String("reset", display.DefaultResetPin, "Reset GPIO pin")
	dcPinFlag := flag.String("dc", display.DefaultDCPin, "Data/Command GPIO pin (DC)")
	csPinFlag := flag.String("cs", "", "Chip select GPIO pin, if not driven by the SPI controller")
	contrastFlag := flag.Int("contrast", -1, "Contrast level (0-255)")
	ditherFlag := flag.Bool("dither", true, "Dither the banner image")
	scrollFlag := flag.Bool("scroll", false, "Scroll the display horizontally")
	debugFlag := flag.Bool("debug", false, "Log all commands")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		display.Logger = display.Logger.Level(zerolog.DebugLevel)
	}

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <i2c|spi|nop> <ssd1306|ssd1327>\n", os.Args[0])
		os.Exit(1)
	}

	var profile display.Profile
	switch *profileFlag {
	case "i2c":
		profile = display.ProfileI2C
	case "spi":
		profile = display.ProfileSPI
	case "panel":
		profile = display.ProfilePanel
	default:
		log.Fatal().Str("profile", *profileFlag).Msg("invalid profile")
	}

	busType := flag.Arg(0)
	if busType != "nop" {
		if _, err := host.Init(); err != nil {
			log.Fatal().Err(err).Msg("host init failed")
		}
	}

	c, err := openConn(busType, *i2cDeviceFlag, uint8(*i2cAddrFlag), &display.SPIConfig{
		Bus:    *spiBusFlag,
		Device: *spiDeviceFlag,
		Mode:   conn.SPIMode0,
		Speed:  physic.Frequency(*spiSpeedFlag) * physic.Hertz,
	}, *resetPinFlag, *dcPinFlag, *csPinFlag)
	if err != nil {
		log.Fatal().Err(err).Str("bus", busType).Msg("open failed")
	}
	log.Info().Stringer("conn", c).Msg("using connection")

	config := &display.Config{
		Width:        *widthFlag,
		Height:       *heightFlag,
		Profile:      profile,
		SwapCOMSplit: *swapCOMSplitFlag,
	}
	var output *display.Device
	switch driver := strings.ToLower(flag.Arg(1)); driver {
	case "ssd1306":
		output, err = display.SSD1306(c, config)
	case "ssd1327":
		output, err = display.SSD1327(c, config)
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		_ = c.Close()
		log.Fatal().Err(err).Msg("driver failed")
	}
	log.Info().Stringer("driver", output).Int("bpp", output.BitsPerPixel()).Msg("using driver")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, output, *externalVCCFlag, *contrastFlag, *ditherFlag, *scrollFlag); err != nil {
		log.Error().Err(err).Msg("display test failed")
	}
	if err = output.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("display shut down")
}

func openConn(busType string, i2cDevice int, i2cAddr uint8, spiConfig *display.SPIConfig, resetPin, dcPin, csPin string) (display.Conn, error) {
	reset, err := conn.Pin(resetPin)
	if err != nil {
		return nil, err
	}

	switch busType {
	case "i2c":
		return display.OpenI2C(&display.I2CConfig{
			Device: i2cDevice,
			Addr:   i2cAddr,
			Reset:  reset,
		})
	case "spi":
		if spiConfig.DC, err = conn.Pin(dcPin); err != nil {
			return nil, err
		}
		if spiConfig.CS, err = conn.Pin(csPin); err != nil {
			return nil, err
		}
		spiConfig.Reset = reset
		return display.OpenSPI(spiConfig)
	case "nop":
		return &display.NopConn{}, nil
	default:
		return nil, fmt.Errorf("unsupported bus type %q", busType)
	}
}

func run(ctx context.Context, output *display.Device, externalVCC bool, contrast int, dither, scroll bool) (err error) {
	if err = output.Startup(externalVCC); err != nil {
		return
	}
	if contrast >= 0 {
		if err = output.SetContrast(contrast); err != nil {
			return
		}
	}

	banner, err := bannerImage(output.Bounds().Size(), "BeatGlow")
	if err != nil {
		return
	}
	pixel.Rasterize(output.Image(), banner, dither)
	if err = output.Display(); err != nil {
		return
	}
	if !sleep(ctx, 2*time.Second) {
		return
	}

	if scroll {
		if err = output.ScrollHorizontally(true, 0, output.Height()/8-1, display.Scroll5Frames); err != nil {
			return
		}
		if err = output.StartScroll(); err != nil {
			return
		}
		defer func() {
			if serr := output.StopScroll(); serr != nil && err == nil {
				err = serr
			}
		}()
	}

	var (
		offset int
		ticker = time.NewTicker(50 * time.Millisecond)
		r      = output.Bounds()
		center = image.Pt(r.Dx()/2, r.Dy()/2)
		radius = min(r.Dx(), r.Dy())/2 - 2
		gray   = output.BitsPerPixel() > 1
	)
	defer ticker.Stop()

	log.Info().Msg("hit control-c to stop...")
	for {
		output.Clear()

		// gradient or pattern inside the border
		for y := 1; y < r.Max.Y-1; y++ {
			for x := 1; x < r.Max.X-1; x++ {
				if gray {
					output.SetGray(x, y, uint8(x+y+offset)&0x3)
				} else {
					output.SetPixel(x, y, (x+y+offset)%16 == 0)
				}
			}
		}
		draw.Rectangle(output, r, pixel.On)
		draw.Circle(output, center, radius, pixel.On)
		draw.Arc(output, center, radius-3, offset%360, offset%360+45, pixel.On)

		label := fmt.Sprintf("%03d", offset%1000)
		size := draw.TextSize(nil, label)
		box := image.Rectangle{Min: center.Sub(size.Div(2)), Max: center.Add(size.Div(2))}.Inset(-2)
		draw.RoundedBox(output, box, 3, pixel.Off)
		draw.Text(output, center.Sub(size.Div(2)), nil, label, pixel.On)

		if err = output.Display(); err != nil {
			return
		}

		offset++
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// bannerImage renders text centered in an image of the given size.
func bannerImage(size image.Point, text string) (image.Image, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(size.Y) / 3,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	w, h := float64(size.X), float64(size.Y)
	dc := gg.NewContext(size.X, size.Y)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, color.Gray{Y: 0x40})
	grad.AddColorStop(1, color.White)
	dc.SetFillStyle(grad)
	dc.DrawRoundedRectangle(1, 1, w-2, h-2, h/8)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, w/2, h/2, 0.5, 0.5)
	return dc.Image(), nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
