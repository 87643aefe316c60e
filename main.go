package main

import (
	"fmt"
	"log"
	"time"

	"git.lost.host/meutraa/chase/internal/anim"
	"git.lost.host/meutraa/chase/internal/button"
	"git.lost.host/meutraa/chase/internal/config"
	"git.lost.host/meutraa/chase/internal/game"
	"git.lost.host/meutraa/chase/internal/hardware"
	"git.lost.host/meutraa/chase/internal/store"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	config.Parse()

	// Ensure our Default implementations are used as interfaces
	var hw hardware.Hardware = &hardware.DefaultHardware{}
	var st store.Store = &store.DefaultStore{}

	if err := hw.Init(); nil != err {
		return fmt.Errorf("unable to set up the board: %w", err)
	}
	defer func() {
		if err := hw.Deinit(); nil != err {
			log.Println("unable to restore the terminal", err)
		}
	}()

	if err := st.Init(); nil != err {
		return fmt.Errorf("unable to open the eeprom store: %w", err)
	}
	defer st.Deinit()

	var btn button.Debouncer = &button.DefaultDebouncer{Pin: hw}
	var eng anim.Engine = anim.NewDefaultEngine(hw, hw)

	controller := game.NewController(hw, btn, eng, st)
	controller.Init()

	// The frame driver: run the controller once per iteration and hold it
	// to the watchdog deadline after every call.
	for !hw.Closed() {
		frameStart := time.Now()
		controller.Tick()
		if busy := time.Since(frameStart); busy > *config.Watchdog {
			return fmt.Errorf("watchdog: frame took %v", busy)
		}
		time.Sleep(*config.FramePeriod - time.Since(frameStart))
	}
	return nil
}
