// Command ssd1306ctl drives a SSD1306 OLED display over I²C.
//
// One-shot actions leave the last content on the display:
//
//	ssd1306ctl -clear
//	ssd1306ctl -frame frame.bin
//	ssd1306ctl -image logo.png
//	ssd1306ctl -text "hello|world"
//
// With -serve the configured source is pushed on the configured cron
// schedule until SIGINT/SIGTERM; the display is cleared on exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/flavioheleno/ssd1306"
	"github.com/flavioheleno/ssd1306/internal/config"
	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	configPath = flag.String("config", "/etc/ssd1306ctl/config.yaml", "Path to config file")
	clearFlag  = flag.Bool("clear", false, "Clear the screen")
	cursorFlag = flag.Bool("cursor", false, "Reset the cursor to the top-left pixel")
	framePath  = flag.String("frame", "", "Write a raw byte stream file through the write protocol")
	imagePath  = flag.String("image", "", "Draw an image file (png, gif, jpeg)")
	text       = flag.String("text", "", "Draw text; lines are separated by |")
	contrast   = flag.Int("contrast", -1, "Set contrast (0-255)")
	invert     = flag.Bool("invert", false, "Invert the display")
	serve      = flag.Bool("serve", false, "Push the configured source on the refresh schedule")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := mainImpl(); err != nil {
		glog.Error(err)
		fmt.Fprintf(os.Stderr, "ssd1306ctl: %s\n", err)
		glog.Flush()
		os.Exit(1)
	}
}

func mainImpl() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", *configPath, err)
	}
	speed, err := cfg.Speed()
	if err != nil {
		return err
	}
	glog.Infof("effective config: bus=%q address=%#02x speed=%s strict=%t refresh=%q source=%s",
		cfg.Bus, cfg.Address, speed, cfg.Strict, cfg.Refresh, cfg.Source.Kind)

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph.io: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return fmt.Errorf("failed to open I²C bus: %w", err)
	}
	defer bus.Close()
	if err := bus.SetSpeed(speed); err != nil {
		glog.Warningf("bus speed %s not applied: %v", speed, err)
	}

	opts := ssd1306.DefaultOpts
	opts.Addr = cfg.Address
	if cfg.Strict {
		opts.Policy = ssd1306.Strict
	}
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return err
	}

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return run(ctx, dev, cfg)
	}
	return oneShot(dev)
}

func oneShot(dev *ssd1306.Dev) error {
	if *contrast >= 0 {
		if *contrast > 255 {
			return fmt.Errorf("contrast %d out of range", *contrast)
		}
		if err := dev.SetContrast(byte(*contrast)); err != nil {
			return err
		}
	}
	if *invert {
		if err := dev.Invert(true); err != nil {
			return err
		}
	}
	if *clearFlag {
		if err := dev.ClearScreen(); err != nil {
			return err
		}
	}
	if *cursorFlag {
		if err := dev.SetCursorAtStart(); err != nil {
			return err
		}
	}

	var u update
	switch {
	case *framePath != "":
		raw, err := os.ReadFile(*framePath)
		if err != nil {
			return err
		}
		u.raw = raw
	case *imagePath != "":
		img, err := decodeImage(*imagePath)
		if err != nil {
			return err
		}
		u.img = img
	case *text != "":
		u.img = textImage(strings.Split(*text, "|"))
	default:
		return nil
	}
	return u.apply(dev)
}
