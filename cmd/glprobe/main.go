// cmd/glprobe/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// glprobe opens an OpenGL context, reports the device's capabilities,
// and renders a test frame with the renderer. With -profile, the frame is
// rendered against a recorded device instead and the trace can be saved
// for gltrace.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device"
	"github.com/mmp/glstate/pkg/device/gl21"
	"github.com/mmp/glstate/pkg/device/gl33"
	"github.com/mmp/glstate/pkg/log"
	"github.com/mmp/glstate/pkg/platform"
	"github.com/mmp/glstate/pkg/renderer"
	"github.com/mmp/glstate/pkg/trace"
	"github.com/mmp/glstate/pkg/util"
)

var (
	tier        = flag.String("tier", renderer.TierLegacy, "context to create: gl21 or gl33")
	configFile  = flag.String("config", "", "renderer configuration file (JSON or TOML)")
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	outPNG      = flag.String("o", "", "write the rendered frame to this PNG file")
	size        = flag.Int("size", 256, "width and height of the rendered frame")
	profileName = flag.String("profile", "", "render against a recorded device with this profile instead of a window")
	traceFile   = flag.String("trace", "", "with -profile, save the recorded calls to this file")
	reportOnly  = flag.Bool("report", false, "only print the capability report")
	cpuprofile  = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile  = flag.String("memprofile", "", "write memory profile to this file")
	exectrace   = flag.String("exectrace", "", "write an execution trace to this file")
)

func init() {
	// OpenGL and GLFW require that all calls be made from the main
	// thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile, *exectrace)
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "glprobe: %v\n", err)
		os.Exit(1)
	}

	cfg := renderer.DefaultConfig()
	if *configFile != "" {
		if cfg, err = renderer.LoadConfig(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	cfg.LogLevel = *logLevel

	if *profileName != "" {
		err = probeProfile(cfg, lg)
	} else {
		err = probeWindow(cfg, lg)
	}
	if perr := profiler.Cleanup(); perr != nil {
		lg.Errorf("%v", perr)
	}
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "glprobe: %v\n", err)
		os.Exit(1)
	}
}

// probeWindow creates a hidden window with a context for the requested
// tier and runs the probe on the real device.
func probeWindow(cfg renderer.Config, lg *log.Logger) error {
	pc := platform.Config{WindowSize: [2]int{*size, *size}}
	switch *tier {
	case renderer.TierLegacy:
		pc.ContextVersion = [2]int{2, 1}
	case renderer.TierModern:
		pc.ContextVersion = [2]int{3, 3}
	default:
		return fmt.Errorf("%s: unknown tier", *tier)
	}
	cfg.Tier = *tier

	win, err := platform.New(pc, lg)
	if err != nil {
		return err
	}
	defer win.Dispose()

	var dev device.Device
	if *tier == renderer.TierLegacy {
		dev, err = gl21.New(lg)
	} else {
		dev, err = gl33.New(lg)
	}
	if err != nil {
		return err
	}

	fb := win.FramebufferSize()
	lg.Info("Window created", "window", win.WindowSize(), "framebuffer", fb)
	if err := probe(dev, cfg, fb[0], fb[1], lg); err != nil {
		return err
	}
	win.PostRender()
	return nil
}

// probeProfile runs the probe against a recorder.
func probeProfile(cfg renderer.Config, lg *log.Logger) error {
	p, err := caps.LookupProfile(*profileName)
	if err != nil {
		return err
	}
	rec := trace.NewRecorder(p, lg)
	if err := probe(rec, cfg, *size, *size, lg); err != nil {
		return err
	}

	fmt.Printf("%d calls recorded\n", len(rec.Calls()))
	if *traceFile == "" {
		return nil
	}
	f, err := os.Create(*traceFile)
	if err != nil {
		return err
	}
	if err := rec.Trace().Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func probe(dev device.Device, cfg renderer.Config, width, height int, lg *log.Logger) error {
	r, err := renderer.New(dev, cfg, lg)
	if err != nil {
		return err
	}
	defer r.Cleanup()

	if err := r.Caps().WriteReport(os.Stdout); err != nil {
		return err
	}
	if *reportOnly {
		return nil
	}

	img, err := drawFrame(r, newScene(r.Legacy()), width, height)
	if err != nil {
		return err
	}
	_, total := r.Statistics()
	fmt.Println(total.String())

	if *outPNG != "" {
		return writePNG(*outPNG, img)
	}
	return nil
}
