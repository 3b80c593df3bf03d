package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"framedisplay/config"
	"framedisplay/graph"
	"framedisplay/video/imshow"
	"framedisplay/video/sink"
	"framedisplay/video/source"
)

var (
	configPath  = flag.String("config", "", "YAML configuration file, reloaded on change.")
	windowName  = flag.String("window", "", "Window title. Overrides the configuration.")
	metricsAddr = flag.String("metrics", "", "Address to serve Prometheus metrics on, e.g. :9090. Overrides the configuration.")
	logLevel    = flag.String("log-level", "", "Log level. Overrides the configuration.")
)

func init() {
	// HighGUI has to run on the main thread on macOS. main runs the display
	// node itself, so pin it there.
	runtime.LockOSThread()
}

func setLogLevel(level string) {
	l, err := log.ParseLevel(level)
	if err != nil {
		log.Errorf("Ignoring log level: %v", err)
		return
	}
	log.SetLevel(l)
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Infof("Serving metrics on %v", addr)
	log.Error(http.ListenAndServe(addr, handlers.LoggingHandler(log.StandardLogger().Writer(), mux)))
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Default()
	if *configPath != "" {
		// Only the log level is applied live. The source, metrics address
		// and window settings are read once below; config.Load warns when
		// a reload changes them.
		onChange := func(c *config.Config) {
			if *logLevel == "" {
				setLogLevel(c.LogLevel)
			}
		}
		if err := config.Load(ctx, *configPath, onChange); err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = config.Get()
	}

	uri := cfg.Source
	if flag.NArg() > 0 {
		uri = flag.Arg(0)
	}
	if uri == "" {
		fmt.Println("How to run:\n\tframedisplay [flags] [video file, stream URL or camera index]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	setLogLevel(level)

	win := cfg.Window
	if *windowName != "" {
		win.Name = *windowName
	}
	addr := cfg.MetricsAddr
	if *metricsAddr != "" {
		addr = *metricsAddr
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := imshow.NewMetrics(reg)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}
	if addr != "" {
		go serveMetrics(addr, reg)
	}

	src, err := source.NewVideoCapture(uri)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}

	open := sink.WindowOpener(sink.WindowOptions{
		KeepRatio:  win.KeepRatio,
		Fullscreen: win.Fullscreen,
	})
	display := imshow.New(imshow.Options{
		WindowName:    win.Name,
		WaitKeyMillis: win.WaitKeyMillis,
		ResizeToFrame: win.ResizeToFrame,
		Open:          open,
		Metrics:       metrics,
	})
	run := &graph.Runner{
		Name:   "imshow",
		Node:   display,
		Inputs: []string{imshow.TagVideo, imshow.TagVideoPrestream},
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Println("Caught signal", sig)
		cancel()
	}()

	err = run.Run(ctx, src.Steps(ctx))
	// Blocks until the capture device is released.
	src.Close()
	if err != nil {
		log.Errorf("Display stopped: %v", err)
		os.Exit(1)
	}
}
